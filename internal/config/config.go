// Package config provides configuration loading and management for lingx.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete lingx configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Events   EventsConfig   `yaml:"events"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	// Addr is the listen address (default: :8080)
	Addr string `yaml:"addr"`
	// Mode is the gin mode: debug, release or test (default: release)
	Mode string `yaml:"mode"`
}

// DatabaseConfig configures the SQLite storage.
type DatabaseConfig struct {
	// Path is the SQLite database file (default: lingx.db)
	Path string `yaml:"path"`
}

// EventsConfig configures event publishing.
type EventsConfig struct {
	// NATSURL is the NATS server URL (empty = in-process publisher)
	NATSURL string `yaml:"nats_url"`
	// Subject is the subject prefix for published events
	Subject string `yaml:"subject"`
	// Buffer is the in-process publisher queue size
	Buffer int `yaml:"buffer"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn or error
	Level string `yaml:"level"`
	// File is an optional log file; logs rotate when it grows past MaxSizeMB
	File string `yaml:"file"`
	// MaxSizeMB is the rotation threshold in megabytes
	MaxSizeMB int `yaml:"max_size_mb"`
	// MaxBackups is the number of rotated files to keep
	MaxBackups int `yaml:"max_backups"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr: ":8080",
			Mode: "release",
		},
		Database: DatabaseConfig{
			Path: "lingx.db",
		},
		Events: EventsConfig{
			NATSURL: "",
			Subject: "lingx.events",
			Buffer:  256,
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       "",
			MaxSizeMB:  50,
			MaxBackups: 3,
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	switch c.HTTP.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("http.mode must be debug, release or test")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Events.Subject == "" {
		return fmt.Errorf("events.subject is required")
	}
	if c.Events.Buffer <= 0 {
		return fmt.Errorf("events.buffer must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file, applying defaults
// for anything the file leaves out.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}
