package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/caseworks/intake/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment for common problems",
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ok := true

	report := func(good bool, label, detail string) {
		mark := "✓"
		if !good {
			mark = "✗"
			ok = false
		}
		fmt.Printf("%s %-22s %s\n", mark, label, detail)
	}

	profile := colorprofile.Detect(os.Stdout, os.Environ())
	report(profile != colorprofile.NoTTY, "terminal", profile.String())

	if config.Exists() {
		report(true, "config", "found")
	} else {
		fmt.Printf("- %-22s %s\n", "config", "not found, using defaults (run 'intake setup')")
	}

	cfg, err := config.Load()
	if err != nil {
		report(false, "config", err.Error())
		return fmt.Errorf("environment check failed")
	}
	if err := cfg.Validate(); err != nil {
		report(false, "config", err.Error())
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		report(false, "data dir", fmt.Sprintf("%s: %v", cfg.DataDir, err))
	} else {
		probe := filepath.Join(cfg.DataDir, ".doctor")
		if err := os.WriteFile(probe, nil, 0644); err != nil {
			report(false, "data dir", fmt.Sprintf("%s not writable: %v", cfg.DataDir, err))
		} else {
			os.Remove(probe)
			report(true, "data dir", cfg.DataDir)
		}
	}

	if cfg.RecipientEmail == "" {
		report(false, "recipient email", "unset, submission will fail (set recipient_email)")
	} else {
		report(true, "recipient email", cfg.RecipientEmail)
	}

	switch cfg.EmailTransport {
	case config.EmailSES:
		report(true, "email transport", "ses ("+cfg.AWSRegion+")")
	default:
		if cfg.EmailEndpoint == "" {
			report(false, "email transport", "endpoint transport selected but email_endpoint is unset")
		} else {
			report(true, "email transport", cfg.EmailEndpoint)
		}
	}

	if cfg.AssistAPIKey == "" {
		fmt.Printf("- %-22s %s\n", "assist", "disabled (set assist_api_key to enable)")
	} else {
		report(true, "assist", cfg.AssistModel)
	}

	if editor := os.Getenv("EDITOR"); editor == "" {
		fmt.Printf("- %-22s %s\n", "editor", "$EDITOR unset, external editing disabled")
	} else {
		report(true, "editor", editor)
	}

	if !ok {
		return fmt.Errorf("environment check failed")
	}
	fmt.Println("\nAll checks passed.")
	return nil
}
