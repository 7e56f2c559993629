package config

import (
	"os"

	"github.com/nawah-io/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a configuration value together with its origin.
type ResolvedValue struct {
	// Key is the configuration key, e.g. "api_level".
	Key string
	// Value is the winning value.
	Value string
	// Source indicates where Value came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// resolve picks the first non-empty value in flag > env > config > default
// order and records every lower-precedence value it shadows.
func resolve(key, flagValue, envVar, configValue, defaultValue string) ResolvedValue {
	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, flagValue},
		{SourceEnv, os.Getenv(envVar)},
		{SourceConfig, configValue},
		{SourceDefault, defaultValue},
	}

	result := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}
	return result
}

// ResolveAPILevelOptions contains options for API level resolution.
type ResolveAPILevelOptions struct {
	// FlagValue is the --api-level flag value (empty if not set).
	FlagValue string
	// ConfigValue is the api_level value from the config file (empty if not set).
	ConfigValue string
}

// ResolveAPILevel resolves the API level using precedence:
// (1) --api-level flag, (2) NAWAH_API_LEVEL env, (3) config api_level,
// (4) built-in default.
func ResolveAPILevel(opts ResolveAPILevelOptions) ResolvedValue {
	return resolve("api_level", opts.FlagValue, "NAWAH_API_LEVEL", opts.ConfigValue, DefaultAPILevel)
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) NAWAH_CONFIG env, (3) $XDG_CONFIG_HOME/nawah/config.yaml.
func ResolveConfigPath(opts ResolveConfigPathOptions) ResolvedValue {
	return resolve("config", opts.FlagValue, "NAWAH_CONFIG", "", DefaultPaths().ConfigFile)
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values ...ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
