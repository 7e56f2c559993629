package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nawah-io/cli/internal/config"
	oerrors "github.com/nawah-io/cli/internal/errors"
	"github.com/nawah-io/cli/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the nawah CLI configuration.

Writes the built-in defaults to the resolved config path:
  --config flag > NAWAH_CONFIG env > $XDG_CONFIG_HOME/nawah/config.yaml

The configuration includes:
  - Default API level for new apps
  - Template, framework, stubs and requirements URLs
  - Installer and Git commands

Examples:
  # Initialize configuration
  nawah config init

  # Overwrite existing configuration
  nawah config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitError(runConfigInit(cmd, force))
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	path, err := config.ExpandPath(GetConfigPath())
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}

	if _, err := os.Stat(path); err == nil && !force {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding default configuration: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Configuration initialized at "+output.StyleNoun.Render(path)))
	fmt.Fprintln(cmd.OutOrStdout(), "Validate with: nawah config vet")

	return nil
}
