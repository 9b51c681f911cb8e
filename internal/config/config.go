package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"farmaterm/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version    int             `toml:"version"`
	BaseURL    string          `toml:"base_url"`
	Token      string          `toml:"token"` // bearer token for the backend API
	UserID     int             `toml:"user_id"`
	Search     SearchSettings  `toml:"search"`
	Scanner    ScannerSettings `toml:"scanner"`
	Alerts     AlertSettings   `toml:"alerts"`
	UISettings UISettings      `toml:"ui"`
}

// SearchSettings tunes the product search widget
type SearchSettings struct {
	MinQueryLength int `toml:"min_query_length"` // below this no request is made
	PageSize       int `toml:"page_size"`
	StaleTTLMillis int `toml:"stale_ttl_ms"` // identical queries within this window reuse cached results
}

// ScannerSettings tunes the barcode-scanner heuristic
type ScannerSettings struct {
	ThresholdMillis int `toml:"threshold_ms"` // inter-keystroke delta below this suggests a scanner
}

// AlertSettings tunes the background alerts poller
type AlertSettings struct {
	PollIntervalSeconds int `toml:"poll_interval_s"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Currency        string `toml:"currency"`
	ShowStockBadges bool   `toml:"show_stock_badges"`
	AutosaveOnExit  bool   `toml:"autosave_on_exit"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	// Create farmaterm config directory
	farmatermDir := filepath.Join(configDir, "farmaterm")
	os.MkdirAll(farmatermDir, 0755)

	return &configService{
		filePath: filepath.Join(farmatermDir, "farmaterm.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		// Return default config if file doesn't exist
		cfg := DefaultConfig()

		if cs.bus != nil {
			cs.bus.Publish(eventbus.ConfigLoadedEvent{BaseURL: cfg.BaseURL})
		}

		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{BaseURL: cfg.BaseURL})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyDefaults fills in zero-valued tuning fields so a partial config file
// still yields a usable configuration
func (c *Config) applyDefaults() {
	if c.Search.MinQueryLength == 0 {
		c.Search.MinQueryLength = 2
	}
	if c.Search.PageSize == 0 {
		c.Search.PageSize = 20
	}
	if c.Search.StaleTTLMillis == 0 {
		c.Search.StaleTTLMillis = 1000
	}
	if c.Scanner.ThresholdMillis == 0 {
		c.Scanner.ThresholdMillis = 50
	}
	if c.Alerts.PollIntervalSeconds == 0 {
		c.Alerts.PollIntervalSeconds = 60
	}
	if c.UISettings.Currency == "" {
		c.UISettings.Currency = "MXN"
	}
	if c.UserID == 0 {
		c.UserID = 1
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{
		Version: 1,
		BaseURL: "http://localhost:8000",
		UISettings: UISettings{
			ShowStockBadges: true,
			AutosaveOnExit:  true,
		},
	}
	cfg.applyDefaults()
	return cfg
}
