package cmd

import (
	"testsmith/internal/version"

	"github.com/spf13/cobra"
)

// newVersionCmd creates and returns the version command.
func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show version information for the testsmith application.

This command displays the current version of the testsmith CLI tool,
including the version number, commit hash, and build details.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return version.Get().Write(cmd.OutOrStdout(), short)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Show only version number")
	return cmd
}

func init() { //nolint:gochecknoinits // Standard Cobra CLI pattern for command registration
	rootCmd.AddCommand(newVersionCmd())
}
