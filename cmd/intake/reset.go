package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caseworks/intake/internal/config"
	"github.com/caseworks/intake/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the saved application draft",
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var st store.Store
	if cfg.Store == config.StoreNATS {
		st, err = store.NewNATSStore(cmd.Context(), cfg.DataDir)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
	} else {
		st = store.NewFileStore(cfg.DataDir)
	}
	defer st.Close()

	if err := st.Clear(); err != nil {
		return fmt.Errorf("clearing draft: %w", err)
	}
	fmt.Println("Draft cleared.")
	return nil
}
