// Package config loads and persists application configuration and the
// client-local preferences the pages consume as ambient settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Catalog fetch configuration
	Catalog CatalogConfig `toml:"catalog"`

	// API server configuration
	Server ServerConfig `toml:"server"`

	// Persisted UI preferences
	Prefs PrefsConfig `toml:"prefs"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// CatalogConfig controls where card catalogs come from and how often they
// are refreshed.
type CatalogConfig struct {
	BaseURL      string `toml:"base_url"`      // Remote catalog API base URL
	Edition      string `toml:"edition"`       // Game edition to fetch from the remote API
	LocalFile    string `toml:"local_file"`    // Optional local catalog JSON (watched for changes)
	RefreshTTL   string `toml:"refresh_ttl"`   // Catalog cache TTL (e.g., "24h")
	WatchChanges bool   `toml:"watch_changes"` // Rebuild index on local file change
}

// ServerConfig contains API server settings.
type ServerConfig struct {
	Port        int    `toml:"port"`         // Listen port
	CORSOrigins string `toml:"cors_origins"` // Comma-separated allowed origins
}

// PrefsConfig holds plain key/value UI preferences persisted between
// sessions (page size, visible rows, last-used tournament).
type PrefsConfig struct {
	PageSize       int    `toml:"page_size"`
	VisibleRows    int    `toml:"visible_rows"`
	LastTournament string `toml:"last_tournament"`
}

// AppConfig contains general application settings.
type AppConfig struct {
	DataDir   string `toml:"data_dir"`   // Override for the database directory
	DebugMode bool   `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:      "",
			Edition:      "swu",
			LocalFile:    "",
			RefreshTTL:   "24h",
			WatchChanges: true,
		},
		Server: ServerConfig{
			Port:        8080,
			CORSOrigins: "*",
		},
		Prefs: PrefsConfig{
			PageSize:    25,
			VisibleRows: 50,
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".league-hq")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns default config if the
// file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Catalog.RefreshTTL); err != nil {
		return fmt.Errorf("invalid catalog refresh TTL %q: %w", c.Catalog.RefreshTTL, err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Prefs.PageSize < 0 {
		return fmt.Errorf("page size cannot be negative: %d", c.Prefs.PageSize)
	}
	if c.Prefs.VisibleRows < 0 {
		return fmt.Errorf("visible rows cannot be negative: %d", c.Prefs.VisibleRows)
	}
	return nil
}

// GetCatalogRefreshTTL returns the catalog refresh TTL as a duration.
func (c *Config) GetCatalogRefreshTTL() (time.Duration, error) {
	return time.ParseDuration(c.Catalog.RefreshTTL)
}
