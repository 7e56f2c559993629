package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppDirName is the directory holding nawah's files under the XDG base dirs.
const AppDirName = "nawah"

// Paths contains standard filesystem paths for nawah.
type Paths struct {
	// ConfigFile is the path to the config file ($XDG_CONFIG_HOME/nawah/config.yaml).
	ConfigFile string

	// ConfigDir is the directory holding the config file.
	ConfigDir string

	// CacheDir holds temporary downloads ($XDG_CACHE_HOME/nawah).
	CacheDir string
}

// DefaultPaths returns the default paths for nawah.
func DefaultPaths() *Paths {
	configDir := filepath.Join(xdg.ConfigHome, AppDirName)
	return &Paths{
		ConfigFile: filepath.Join(configDir, "config.yaml"),
		ConfigDir:  configDir,
		CacheDir:   filepath.Join(xdg.CacheHome, AppDirName),
	}
}

// GetConfigFile returns the config file path.
// If NAWAH_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("NAWAH_CONFIG"); envPath != "" {
		return envPath, nil
	}
	return DefaultPaths().ConfigFile, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}
