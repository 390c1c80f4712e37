package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// loadOrSeed decodes the TOML file at path into out. When the file does not
// exist yet it is seeded from template instead (0600, parent 0700) and out
// keeps its defaults. Config files carry API keys, hence the tight modes.
func loadOrSeed(path, template string, out any) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(template), 0600); err != nil {
			return fmt.Errorf("seed %s: %w", path, err)
		}
		return nil
	}
	if _, err := toml.DecodeFile(path, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// LoadSystemConfig reads settings.toml, creating it on first run.
func LoadSystemConfig() (*SystemConfig, error) {
	cfg := DefaultSystemConfig()
	if err := loadOrSeed(settingsPath(), GenerateSystemConfigTemplate(), cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadUserConfig reads config.toml from the data directory, creating it on
// first run.
func LoadUserConfig(dataDir string) (*UserConfig, error) {
	cfg := DefaultUserConfig()
	path := filepath.Join(dataDir, "config.toml")
	if err := loadOrSeed(path, GenerateUserConfigTemplate(), cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
