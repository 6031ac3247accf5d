// Package config loads the server configuration from YAML. Flags override
// individual fields in main.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Cards  CardsConfig  `yaml:"cards"`
	Decks  DecksConfig  `yaml:"decks"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// CardsConfig lists the card set files loaded at startup.
type CardsConfig struct {
	SetFiles []string `yaml:"setFiles"`
}

// DecksConfig points at the preconstructed decklist file.
type DecksConfig struct {
	File string `yaml:"file"`
}

// LogConfig selects the logger profile.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
