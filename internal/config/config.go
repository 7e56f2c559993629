// Package config provides configuration loading and management.
package config

import "strings"

// Built-in defaults.
const (
	DefaultAPILevel        = "1.0"
	DefaultTemplateURL     = "https://github.com/nawah-io/nawah_app_template/archive/APIv{api_level}.tar.gz"
	DefaultFrameworkURL    = "https://github.com/nawah-io/nawah_framework_wheels/raw/master/{api_level}/nawah.whl"
	DefaultStubsURL        = "https://github.com/nawah-io/nawah_framework_wheels/raw/master/{api_level}/stubs.tar.gz"
	DefaultRequirementsURL = "https://github.com/nawah-io/nawah_framework_wheels/raw/master/{api_level}/requirements.txt"
	DefaultInstaller       = "python3 -m pip install --user -r"
	DefaultGitCommand      = "git init"
)

// RemoteConfig holds the artifact URLs. Each may contain {api_level}.
type RemoteConfig struct {
	// TemplateURL is the app template tarball.
	// Env: NAWAH_REMOTE_TEMPLATE_URL
	TemplateURL string `mapstructure:"template_url" yaml:"template_url"`

	// FrameworkURL is the framework wheel.
	// Env: NAWAH_REMOTE_FRAMEWORK_URL
	FrameworkURL string `mapstructure:"framework_url" yaml:"framework_url"`

	// StubsURL is the framework stubs tarball.
	// Env: NAWAH_REMOTE_STUBS_URL
	StubsURL string `mapstructure:"stubs_url" yaml:"stubs_url"`

	// RequirementsURL is the dependency manifest.
	// Env: NAWAH_REMOTE_REQUIREMENTS_URL
	RequirementsURL string `mapstructure:"requirements_url" yaml:"requirements_url"`
}

// InstallerConfig configures dependency installation.
type InstallerConfig struct {
	// Command is split on whitespace; the manifest path is appended.
	// Env: NAWAH_INSTALLER_COMMAND
	Command string `mapstructure:"command" yaml:"command"`
}

// GitConfig configures repository initialisation.
type GitConfig struct {
	// Command is run inside the new workspace.
	// Env: NAWAH_GIT_COMMAND
	Command string `mapstructure:"command" yaml:"command"`

	// AllowFailure turns a failing Git command into a warning.
	// Env: NAWAH_GIT_ALLOW_FAILURE
	AllowFailure bool `mapstructure:"allow_failure" yaml:"allow_failure"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the nawah CLI configuration.
// Loaded from $XDG_CONFIG_HOME/nawah/config.yaml.
type Config struct {
	// APILevel is the default framework API level for new apps.
	// Env: NAWAH_API_LEVEL, Flag: --api-level
	APILevel string `mapstructure:"api_level" yaml:"api_level,omitempty"`

	Remote    RemoteConfig    `mapstructure:"remote" yaml:"remote"`
	Installer InstallerConfig `mapstructure:"installer" yaml:"installer"`
	Git       GitConfig       `mapstructure:"git" yaml:"git"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `nawah config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		APILevel: DefaultAPILevel,
		Remote: RemoteConfig{
			TemplateURL:     DefaultTemplateURL,
			FrameworkURL:    DefaultFrameworkURL,
			StubsURL:        DefaultStubsURL,
			RequirementsURL: DefaultRequirementsURL,
		},
		Installer: InstallerConfig{Command: DefaultInstaller},
		Git:       GitConfig{Command: DefaultGitCommand},
	}
}

// InstallerArgv returns the installer command as an argument vector.
func (c *Config) InstallerArgv() []string {
	return strings.Fields(c.Installer.Command)
}

// GitArgv returns the Git command as an argument vector.
func (c *Config) GitArgv() []string {
	return strings.Fields(c.Git.Command)
}
