// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nawah-io/cli/internal/config"
	"github.com/nawah-io/cli/internal/output"
	"github.com/nawah-io/cli/internal/version"
)

var (
	// Global flags
	configFlag     string
	verboseFlag    bool
	timestampsFlag bool

	// Resolved configuration (loaded during PersistentPreRunE)
	loadedConfig *config.Config
	configPath   config.ResolvedValue
	configErr    error
)

// NewRootCmd creates the root command for the nawah CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nawah",
		Short: "Nawah app CLI",
		Long: `nawah creates Nawah app workspaces.

A workspace is provisioned in steps. When a step fails, progress is saved
inside the workspace and running the same command again continues from
the failed step.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: NAWAH_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewCreateCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
func initializeGlobals(cmd *cobra.Command) error {
	configPath = config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: configFlag,
	})

	loadedConfig, configErr = config.NewLoader().Load(configPath.Value)
	if configErr != nil {
		// Commands that need config report the error themselves.
		output.Debug("config load error", "error", configErr)
	}

	logCfg := output.LogConfig{
		Verbose: verboseFlag,
	}

	// flag (if explicitly set) > config > default
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if loadedConfig != nil && loadedConfig.Log.Timestamps != nil {
		logCfg.Timestamps = loadedConfig.Log.Timestamps
	}

	output.SetupLogging(logCfg)

	info := version.Get()
	output.Debug("nawah started", "version", info.Version, "commit", info.GitCommit)
	config.LogResolvedValues(configPath)

	return nil
}

// GetConfig returns the loaded configuration, falling back to defaults when
// none was loaded.
func GetConfig() *config.Config {
	if loadedConfig != nil {
		return loadedConfig
	}
	return config.DefaultConfig()
}

// GetConfigPath returns the resolved config path value.
func GetConfigPath() string {
	if configPath.Value != "" {
		return configPath.Value
	}
	return configFlag
}
