package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)

	assert.Equal(t, "1.0", cfg.APILevel)
	assert.Contains(t, cfg.Remote.TemplateURL, "nawah_app_template/archive/APIv{api_level}.tar.gz")
	assert.Contains(t, cfg.Remote.FrameworkURL, "{api_level}/nawah.whl")
	assert.Contains(t, cfg.Remote.StubsURL, "{api_level}/stubs.tar.gz")
	assert.Contains(t, cfg.Remote.RequirementsURL, "{api_level}/requirements.txt")

	// Git failures are fatal unless configured otherwise
	assert.False(t, cfg.Git.AllowFailure)

	// Timestamps default is decided by the logger
	assert.Nil(t, cfg.Log.Timestamps)
}

func TestConfig_Argv(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []string{"python3", "-m", "pip", "install", "--user", "-r"}, cfg.InstallerArgv())
	assert.Equal(t, []string{"git", "init"}, cfg.GitArgv())

	cfg.Installer.Command = "  uv   pip install -r "
	assert.Equal(t, []string{"uv", "pip", "install", "-r"}, cfg.InstallerArgv())

	cfg.Git.Command = ""
	assert.Empty(t, cfg.GitArgv())
}
