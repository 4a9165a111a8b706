// Package cli provides the Cobra command structure for gomdtask.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtask/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	noConfig   bool
	color      string
}

// NewRootCommand creates the root gomdtask command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "gomdtask",
		Short: "Move Markdown list items and their children up or down",
		Long: `gomdtask reorders items in Markdown task lists.

Point it at a line inside a list and it swaps that item, together with every
line nested under it, with the neighbouring sibling. Items at the top level of
a list can cross into the adjacent heading section. Every rewrite is checked
so that no task is lost or duplicated, and a backup of the previous state is
kept for undo.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if globals.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&globals.noConfig, "no-config", false,
		"ignore system, user and project config files")
	rootCmd.PersistentFlags().StringVar(&globals.color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(newMoveCommand(globals, "up"))
	rootCmd.AddCommand(newMoveCommand(globals, "down"))
	rootCmd.AddCommand(newOutlineCommand(globals))
	rootCmd.AddCommand(newUndoCommand(globals))
	rootCmd.AddCommand(newConfigCommand(globals))
	rootCmd.AddCommand(newVersionCommand(info))

	newHelpFormatter(globals.color, os.Stdout).apply(rootCmd)

	return rootCmd
}
