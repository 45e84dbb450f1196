package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/caseworks/intake/internal/config"
)

var setupFlags struct {
	project bool
	force   bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create intake configuration file",
	Long: `Create an intake configuration file with sensible defaults.

By default, creates a global config at ~/.config/intake/intake.yml.
Use --project to create a project-local config in the current directory.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := &config.Config{
		SenderEmail:    "no-reply@intake.local",
		EmailTransport: config.EmailEndpoint,
		AWSRegion:      "us-east-1",
		AssistModel:    "gemini-2.0-flash",
		Locale:         "en",
		DataDir:        ".intake",
		Store:          config.StoreFile,
		LogLevel:       "info",
		RequestTimeout: 30 * time.Second,
		RequestRetries: 3,
	}

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Created config at %s\n", targetPath)
	fmt.Println("\nSet recipient_email (or INTAKE_RECIPIENT_EMAIL) before submitting applications.")
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
