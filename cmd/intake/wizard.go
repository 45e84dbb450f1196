package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caseworks/intake/internal/config"
	"github.com/caseworks/intake/internal/tui"
)

var wizardFlags struct {
	locale  string
	dataDir string
	store   string
}

func init() {
	rootCmd.Flags().StringVarP(&wizardFlags.locale, "locale", "l", "", "UI language (en or ar)")
	rootCmd.Flags().StringVar(&wizardFlags.dataDir, "data-dir", "", "Draft storage directory")
	rootCmd.Flags().StringVar(&wizardFlags.store, "store", "", "Draft storage backend (file or nats)")
}

func runWizard(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags win over config and environment
	if wizardFlags.locale != "" {
		cfg.Locale = wizardFlags.locale
	}
	if wizardFlags.dataDir != "" {
		cfg.DataDir = wizardFlags.dataDir
	}
	if wizardFlags.store != "" {
		cfg.Store = wizardFlags.store
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	return tui.Run(cmd.Context(), cfg)
}
