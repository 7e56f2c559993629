package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nawah-io/cli/internal/config"
	oerrors "github.com/nawah-io/cli/internal/errors"
)

func TestNewConfigInitCmd(t *testing.T) {
	cmd := NewConfigInitCmd()

	assert.Equal(t, "init", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.Flags().Lookup("force"))
}

func TestConfigInit_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nawah", "config.yaml")

	out, err := executeRoot(t, nil, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cfg, err := config.NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAPILevel, cfg.APILevel)
	assert.Equal(t, config.DefaultTemplateURL, cfg.Remote.TemplateURL)
	assert.Equal(t, config.DefaultInstaller, cfg.Installer.Command)
}

func TestConfigInit_ExistingConfig(t *testing.T) {
	path := writeConfig(t, "api_level: \"2.0\"\n")

	_, err := executeRoot(t, nil, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
	assert.Contains(t, err.Error(), "already exists")

	_, err = executeRoot(t, nil, "config", "init", "--config", path, "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "api_level: \"1.0\"")
}

func TestConfigInit_UsesEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env-config.yaml")
	t.Setenv("NAWAH_CONFIG", path)

	_, err := executeRoot(t, nil, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestConfigInit_OutputPassesVet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	_, err := executeRoot(t, nil, "config", "init", "--config", path)
	require.NoError(t, err)

	out, err := executeRoot(t, nil, "config", "vet", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
}

func TestConfigVet_MissingConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := executeRoot(t, nil, "config", "vet", "--config", path)
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
	assert.Contains(t, err.Error(), "not found")
}

func TestConfigVet_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "registry: ghcr.io\n"},
		{"bad url", "remote:\n  stubs_url: ftp://example.com/stubs.tar.gz\n"},
		{"bad api level", "api_level: latest\n"},
		{"empty installer", "installer:\n  command: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)

			_, err := executeRoot(t, nil, "config", "vet", "--config", path)
			require.Error(t, err)
			assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
		})
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := executeRoot(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "nawah version")
	assert.Contains(t, out, "Go:")
}
