// Package main provides the entry point for the osmfang CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/osmfang/cmd/osmfang/commands"
	"github.com/Sumatoshi-tech/osmfang/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "osmfang",
		Short: "Osmfang - OSM edit-history activity statistics",
		Long: `Osmfang derives per-editor and per-day activity statistics from an
OSM full-history file, including a rolling 365-day window of distinct
active days per editor.

Commands:
  run       Aggregate a history file into activity reports`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add commands.
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "osmfang %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
