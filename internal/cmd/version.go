package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nawah-io/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show nawah CLI version information.

Displays the CLI version, commit, build date and Go version.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
			return nil
		},
	}
}
