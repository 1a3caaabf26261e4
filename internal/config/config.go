package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Config is the persistent configuration shared by the terminal front ends
// and sitectl.
type Config struct {
	// Storage selects where the journal slots live.
	Storage StorageConfig `json:"storage"`

	// API is the base URL of the proxy functions.
	API APIConfig `json:"api"`

	// UI Preferences
	UI UIConfig `json:"ui"`
}

// StorageConfig selects the slot backend.
type StorageConfig struct {
	Backend string `json:"backend"` // "sqlite", "badger" or "memory"
	Path    string `json:"path,omitempty"`
}

// APIConfig locates the proxy endpoints.
type APIConfig struct {
	BaseURL   string `json:"base_url"`
	TimeoutMs int    `json:"timeout_ms"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	StartPath       string `json:"start_path"`
	DrawerBreakCols int    `json:"drawer_break_cols"` // drawer auto-closes above this width
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "sqlite",
			Path:    filepath.Join(DataDir(), "site.db"),
		},
		API: APIConfig{
			BaseURL:   "http://localhost:8888/.netlify/functions",
			TimeoutMs: 20000,
		},
		UI: UIConfig{
			StartPath:       "/",
			DrawerBreakCols: 72,
		},
	}
}

// DataDir returns ~/.site.
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".site")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.json")
}

// Load reads config from disk, or returns defaults. Environment overrides
// are applied either way.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom is Load with an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.AutoPopulateFromEnv()
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		cfg = DefaultConfig()
	}
	cfg.AutoPopulateFromEnv()
	return cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes config to path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// AutoPopulateFromEnv applies SITE_* environment overrides.
func (c *Config) AutoPopulateFromEnv() {
	if v := os.Getenv("SITE_API_BASE"); v != "" {
		c.API.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("SITE_STORAGE"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("SITE_DB"); v != "" {
		c.Storage.Path = v
	}
}
