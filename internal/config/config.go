// Package config loads the cellsync configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the cellsync configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	API     APIConfig     `yaml:"api"`
	Watch   WatchConfig   `yaml:"watch"`
	Journal JournalConfig `yaml:"journal"`
}

// ServerConfig configures the bridge server the frontend connects to
type ServerConfig struct {
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	Debug bool   `yaml:"debug"` // Enable verbose handler logging
}

// APIConfig configures the HTTP API surface
type APIConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit,omitempty"`
}

// RateLimitConfig throttles API and websocket handshake requests
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second,omitempty"` // Default: 10
	Burst             int     `yaml:"burst,omitempty"`               // Default: 20
}

// WatchConfig configures the notebook directory watcher
type WatchConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Dir        string `yaml:"dir,omitempty"`         // Directory to watch (default: ".")
	AutoRepair bool   `yaml:"auto_repair,omitempty"` // Rewrite notebooks with broken links
}

// JournalConfig configures the link event journal
type JournalConfig struct {
	Path string `yaml:"path,omitempty"` // SQLite file path, empty disables the journal
}

// GetRateLimitRPS returns the request rate limit (default: 10)
func (c APIConfig) GetRateLimitRPS() float64 {
	if c.RateLimit.RequestsPerSecond <= 0 {
		return 10
	}
	return c.RateLimit.RequestsPerSecond
}

// GetRateLimitBurst returns the rate limit burst size (default: 20)
func (c APIConfig) GetRateLimitBurst() int {
	if c.RateLimit.Burst <= 0 {
		return 20
	}
	return c.RateLimit.Burst
}

// GetWatchDir returns the watch directory (default: current directory)
func (c WatchConfig) GetWatchDir() string {
	if c.Dir == "" {
		return "."
	}
	return c.Dir
}

// Addr returns the host:port address the server listens on
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:  "localhost",
			Port:  8192,
			Debug: false,
		},
		Watch: WatchConfig{
			Enabled: false,
			Dir:     ".",
		},
	}
}

// Load reads a config file, falling back to defaults when the path is empty
// or the file does not exist
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// LoadFromDir looks for cellsync.yaml in the given directory.
// If none is found, returns the default configuration
func LoadFromDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, "cellsync.yaml"))
}
