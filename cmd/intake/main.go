package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/caseworks/intake/internal/logger"
	"github.com/caseworks/intake/internal/tui/theme"
)

const (
	logoText1 = "█ █▄ █ ▀█▀ ▄▀█ █▄▀ █▀▀"
	logoText2 = "█ █ ▀█  █  █▀█ █ █ ██▄"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "intake",
	Short: "Terminal wizard for social support application intake",
	RunE:  runWizard,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	// Set Long description with logo
	rootCmd.Long = renderLogo() + `

intake is a three-step terminal wizard for filing social support
applications. It validates each step before letting you advance, keeps
a draft on disk (or in embedded NATS JetStream) so you can resume where
you left off, emails a summary of the finished application, and can
draft the written sections for you with an AI assistant.`

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(resetCmd)
}
