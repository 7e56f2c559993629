package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nawah-io/cli/internal/config"
	oerrors "github.com/nawah-io/cli/internal/errors"
	"github.com/nawah-io/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the nawah CLI configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML with only known keys of the right types
  3. URLs are http(s), the API level is well formed and commands are not empty

The config path is resolved using precedence:
  --config flag > NAWAH_CONFIG env > $XDG_CONFIG_HOME/nawah/config.yaml

Examples:
  # Validate default configuration
  nawah config vet

  # Validate custom config path
  nawah config vet --config /path/to/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitError(runConfigVet(cmd))
		},
	}
}

func runConfigVet(cmd *cobra.Command) error {
	path, err := config.ExpandPath(GetConfigPath())
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}

	output.Debug("validating config", "path", path, "source", configPath.Source)

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if !exists {
		return oerrors.NewNotFoundError("configuration file not found", path,
			"Run 'nawah config init' to create default configuration")
	}

	v, err := config.NewValidator()
	if err != nil {
		return err
	}
	if err := v.ValidateFile(path); err != nil {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  err.Error(),
			Location: path,
			Cause:    fmt.Errorf("%w: %w", oerrors.ErrValidation, err),
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Configuration is valid: "+path))
	return nil
}
