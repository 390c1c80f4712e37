package config

// DefaultModel is used when neither config nor environment names one.
const DefaultModel = "gemini-2.5-flash"

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/asistente",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Gemini: GeminiConfig{
			Model: DefaultModel,
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# Asistente System Configuration
# Location: ~/.config/asistente/settings.toml
# This file uses TOML format: https://toml.io

# Directory where sessions, inventory and service history are stored
data_directory = "~/.local/share/asistente"
`
}

func GenerateUserConfigTemplate() string {
	return `# Asistente User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[gemini]
# Gemini API key (or set ASISTENTE_GEMINI_API_KEY)
api_key = ""

# Model used for the intake dialogue
model = "gemini-2.5-flash"

[maps]
# Google Maps Platform API key with Geocoding and Directions enabled
# (or set ASISTENTE_MAPS_API_KEY). Leave empty to run the map offline.
api_key = ""

# Additional system prompt appended to the built-in instructions (optional)
default_system_prompt = ""
`
}
