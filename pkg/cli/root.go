// Package cli provides the Cobra-based command tree for rowlog.
package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// Version is the tool version, overridable at link time
var Version = "1.0.0"

// NewRootCmd creates the root cobra command for rowlog
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rowlog",
		Short: "Append-mode CSV row logger",
		Long: `rowlog - append-mode CSV row logger

rowlog serializes typed rows as comma-separated text, appending to a file,
printing to the console, or both, with a configurable header policy. Finished
logs can be exported to XLSX or archived to object storage.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().String("config", "rowlog.yaml", "path to configuration file")

	rootCmd.AddCommand(
		newAppendCmd(),
		newExportCmd(),
		newArchiveCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command with the given output writers.
// This is the main entry point from main.go.
func Execute(stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}
