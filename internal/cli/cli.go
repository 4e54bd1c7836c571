// Package cli provides the command-line interface for Dareloop.
package cli

import (
	"context"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/dareloop/dareloop/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "dareloop",
	Short: "One dare at a time",
	Long: `One dare at a time

A terminal client for Dareloop challenge runs: work through a chain of
real-world dares against the clock, attach proof, and post the finished
run to the public feed.

Run without arguments to launch the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(usernameCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context) error {
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)
}
