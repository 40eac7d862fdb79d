package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fieldnotes-cli",
	Short: "Fieldnotes CLI tool",
	Long: `Fieldnotes CLI is the maintenance tool for a Fieldnotes deployment.

Available commands:
  seed       Load species and profiles from a YAML file
  version    Print the CLI version

Use "fieldnotes-cli [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
