package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DBEnvVar overrides db_path from the config file
const DBEnvVar = "HANZICARDS_DB"

// Config represents the application configuration
type Config struct {
	DBPath      string  `toml:"db_path"`
	ExportDir   string  `toml:"export_dir"`
	OpenAIModel string  `toml:"openai_model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float32 `toml:"temperature"`
}

// Default returns the configuration written on first use
func Default() *Config {
	return &Config{
		DBPath:      "data",
		ExportDir:   ".",
		OpenAIModel: "gpt-4o-mini",
		MaxTokens:   750,
		Temperature: 0.7,
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "hanzicards", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults if needed.
// Keys missing from an existing file keep their default values.
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := SaveConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes config to the config file
func SaveConfig(config *Config) error {
	configPath := GetConfigFilePath()

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	// Encode the config to TOML
	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return file.Close()
}

// ResolveDBPath picks the database path: an explicit flag first, then the
// HANZICARDS_DB environment variable, then db_path from the config file
func ResolveDBPath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv(DBEnvVar); env != "" {
		return env, nil
	}

	config, err := LoadConfig()
	if err != nil {
		return "", err
	}
	return config.DBPath, nil
}

// SetDBPath stores path as the default database location
func SetDBPath(path string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	config.DBPath = path
	return SaveConfig(config)
}
