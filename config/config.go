package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

type MapsConfig struct {
	APIKey string `toml:"api_key"`
}

type UserConfig struct {
	Gemini              GeminiConfig `toml:"gemini"`
	Maps                MapsConfig   `toml:"maps"`
	DefaultSystemPrompt string       `toml:"default_system_prompt,omitempty"`
}

type Config struct {
	DataDirectory       string
	GeminiAPIKey        string
	Model               string
	MapsAPIKey          string
	DefaultSystemPrompt string
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("ASISTENTE_GEMINI_API_KEY"); key != "" {
		c.GeminiAPIKey = key
	}
	if model := os.Getenv("ASISTENTE_MODEL"); model != "" {
		c.Model = model
	}
	if key := os.Getenv("ASISTENTE_MAPS_API_KEY"); key != "" {
		c.MapsAPIKey = key
	}
	if dataDir := os.Getenv("ASISTENTE_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
}

func CheckDebug() bool {
	debug := os.Getenv("ASISTENTE_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// Create debug log with secure permissions (0600 - may contain sensitive debug info)
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (ASISTENTE_DEBUG=%s) ===", os.Getenv("ASISTENTE_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory: "~/.local/share/asistente",
		Model:         DefaultModel,
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	cfg.DataDirectory = systemCfg.DataDirectory

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.GeminiAPIKey = userCfg.Gemini.APIKey
	if userCfg.Gemini.Model != "" {
		cfg.Model = userCfg.Gemini.Model
	}
	cfg.MapsAPIKey = userCfg.Maps.APIKey
	cfg.DefaultSystemPrompt = userCfg.DefaultSystemPrompt

	// Env vars win so API keys can stay out of config files entirely.
	cfg.applyEnvOverrides()

	dataDir = cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Ensure data directory has correct permissions (fix if needed)
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	return cfg, nil
}
