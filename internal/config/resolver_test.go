package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveAPILevel_FlagPrecedence(t *testing.T) {
	t.Setenv("NAWAH_API_LEVEL", "2.0")

	result := ResolveAPILevel(ResolveAPILevelOptions{
		FlagValue:   "3.0",
		ConfigValue: "1.5",
	})

	assert.Equal(t, "3.0", result.Value)
	assert.Equal(t, SourceFlag, result.Source)
	assert.Equal(t, "2.0", result.Shadowed[SourceEnv])
	assert.Equal(t, "1.5", result.Shadowed[SourceConfig])
	assert.Equal(t, DefaultAPILevel, result.Shadowed[SourceDefault])
}

func TestResolveAPILevel_EnvPrecedence(t *testing.T) {
	t.Setenv("NAWAH_API_LEVEL", "2.0")

	result := ResolveAPILevel(ResolveAPILevelOptions{
		ConfigValue: "1.5",
	})

	assert.Equal(t, "2.0", result.Value)
	assert.Equal(t, SourceEnv, result.Source)
	assert.Equal(t, "1.5", result.Shadowed[SourceConfig])
	assert.NotContains(t, result.Shadowed, SourceFlag)
}

func TestResolveAPILevel_ConfigFallback(t *testing.T) {
	t.Setenv("NAWAH_API_LEVEL", "")

	result := ResolveAPILevel(ResolveAPILevelOptions{
		ConfigValue: "1.5",
	})

	assert.Equal(t, "1.5", result.Value)
	assert.Equal(t, SourceConfig, result.Source)
	assert.Equal(t, map[ConfigSource]string{SourceDefault: DefaultAPILevel}, result.Shadowed)
}

func TestResolveAPILevel_Default(t *testing.T) {
	t.Setenv("NAWAH_API_LEVEL", "")

	result := ResolveAPILevel(ResolveAPILevelOptions{})

	assert.Equal(t, DefaultAPILevel, result.Value)
	assert.Equal(t, SourceDefault, result.Source)
	assert.Empty(t, result.Shadowed)
	assert.Equal(t, "api_level", result.Key)
}

func TestResolveConfigPath_FlagPrecedence(t *testing.T) {
	t.Setenv("NAWAH_CONFIG", "/env/path/config.yaml")

	result := ResolveConfigPath(ResolveConfigPathOptions{
		FlagValue: "/flag/path/config.yaml",
	})

	assert.Equal(t, "/flag/path/config.yaml", result.Value)
	assert.Equal(t, SourceFlag, result.Source)
	assert.Equal(t, "/env/path/config.yaml", result.Shadowed[SourceEnv])
	assert.Equal(t, DefaultPaths().ConfigFile, result.Shadowed[SourceDefault])
}

func TestResolveConfigPath_EnvPrecedence(t *testing.T) {
	t.Setenv("NAWAH_CONFIG", "/env/path/config.yaml")

	result := ResolveConfigPath(ResolveConfigPathOptions{})

	assert.Equal(t, "/env/path/config.yaml", result.Value)
	assert.Equal(t, SourceEnv, result.Source)
}

func TestResolveConfigPath_Default(t *testing.T) {
	t.Setenv("NAWAH_CONFIG", "")

	result := ResolveConfigPath(ResolveConfigPathOptions{})

	assert.Equal(t, DefaultPaths().ConfigFile, result.Value)
	assert.Equal(t, SourceDefault, result.Source)
}
