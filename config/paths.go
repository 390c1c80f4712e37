package config

import (
	"os"
	"path/filepath"
	"strings"
)

// configDir holds settings.toml; the data directory (sessions, inventory,
// service history, config.toml) lives wherever settings.toml points.
func configDir() string {
	return filepath.Join(homeDir(), ".config", "asistente")
}

func settingsPath() string {
	return filepath.Join(configDir(), "settings.toml")
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home
	}
	return "."
}

// ExpandPath expands a leading ~ and any environment variables in path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	if path == "~" {
		path = homeDir()
	} else if strings.HasPrefix(path, "~/") {
		path = filepath.Join(homeDir(), path[2:])
	}
	return filepath.Clean(os.ExpandEnv(path))
}

// EnsureDataDirPermissions tightens the data directory to user-only access.
// It holds API keys and customer records.
func EnsureDataDirPermissions(dataDir string) error {
	info, err := os.Stat(dataDir)
	if os.IsNotExist(err) {
		return os.MkdirAll(dataDir, 0700)
	}
	if err != nil {
		return err
	}
	if info.Mode().Perm() != 0700 {
		return os.Chmod(dataDir, 0700)
	}
	return nil
}
