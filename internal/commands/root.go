package commands

import (
	"github.com/spf13/cobra"

	"github.com/subtrack-dev/subtrack/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "subtrack",
		Short:   "Bank statement ingestion and recurring-charge detection",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newDetectCommand())
	rootCmd.AddCommand(newVendorsCommand())

	return rootCmd
}
