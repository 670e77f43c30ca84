package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SourceType identifies the catalog backend
type SourceType string

const (
	SourceTypeITunes SourceType = "itunes"
)

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Player  PlayerConfig  `mapstructure:"player"`
	UI      UIConfig      `mapstructure:"ui"`
	History HistoryConfig `mapstructure:"history"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig holds catalog endpoint configuration
type CatalogConfig struct {
	Type     SourceType    `mapstructure:"type"`
	URL      string        `mapstructure:"url"`       // Base URL, /search and /lookup are appended
	PageSize int           `mapstructure:"page_size"` // Results per page request
	Country  string        `mapstructure:"country"`   // Two-letter store, empty for the API default
	Media    string        `mapstructure:"media"`     // "all", "music", "movie", ...
	Timeout  time.Duration `mapstructure:"timeout"`
}

// PlayerConfig holds the external opener used for previews and store pages
type PlayerConfig struct {
	Command string   `mapstructure:"command"` // empty = auto-detect, then system default
	Args    []string `mapstructure:"args"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	GridColumns int           `mapstructure:"grid_columns"`
	Debounce    time.Duration `mapstructure:"debounce"`
}

// HistoryConfig holds recent-search configuration
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // empty = memory only
	Limit   int    `mapstructure:"limit"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Type:     SourceTypeITunes,
			URL:      "https://itunes.apple.com",
			PageSize: 25,
			Media:    "all",
			Timeout:  30 * time.Second,
		},
		Player: PlayerConfig{
			Args: []string{},
		},
		UI: UIConfig{
			GridColumns: 3,
			Debounce:    300 * time.Millisecond,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(defaultDataPath(), "history.db"),
			Limit:   50,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "tunes.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the directory for the log file and history db
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "tunes")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "tunes")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tunes")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tunes")
	}
}

// LoadConfigFrom loads configuration using v, searching the given directories
// for config.yaml. Missing files are not an error.
func LoadConfigFrom(v *viper.Viper, paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Environment variable overrides (TUNES_CATALOG_COUNTRY, ...)
	v.SetEnvPrefix("TUNES")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

var envKeyReplacer = strings.NewReplacer(".", "_")

// configKeys lists every key so AutomaticEnv can see it during Unmarshal
var configKeys = []string{
	"catalog.type", "catalog.url", "catalog.page_size", "catalog.country", "catalog.media", "catalog.timeout",
	"player.command", "player.args",
	"ui.grid_columns", "ui.debounce",
	"history.enabled", "history.path", "history.limit",
	"logging.file", "logging.level",
}

func bindEnvKeys(v *viper.Viper) {
	for _, key := range configKeys {
		_ = v.BindEnv(key)
	}
}

// normalize clamps values that would break pagination or layout
func (c *Config) normalize() {
	if c.Catalog.PageSize <= 0 {
		c.Catalog.PageSize = 25
	}
	if c.Catalog.PageSize > 200 {
		c.Catalog.PageSize = 200 // API maximum
	}
	if c.UI.GridColumns <= 0 {
		c.UI.GridColumns = 1
	}
	if c.UI.Debounce < 0 {
		c.UI.Debounce = 0
	}
	if c.Catalog.Media == "all" {
		c.Catalog.Media = ""
	}
}

// SaveConfigTo writes cfg as config.yaml inside configPath
func SaveConfigTo(cfg *Config, configPath string) error {
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("catalog.type", string(cfg.Catalog.Type))
	v.Set("catalog.url", cfg.Catalog.URL)
	v.Set("catalog.page_size", cfg.Catalog.PageSize)
	v.Set("catalog.country", cfg.Catalog.Country)
	v.Set("catalog.media", cfg.Catalog.Media)
	v.Set("catalog.timeout", cfg.Catalog.Timeout.String())

	v.Set("player.command", cfg.Player.Command)
	v.Set("player.args", cfg.Player.Args)

	v.Set("ui.grid_columns", cfg.UI.GridColumns)
	v.Set("ui.debounce", cfg.UI.Debounce.String())

	v.Set("history.enabled", cfg.History.Enabled)
	v.Set("history.path", cfg.History.Path)
	v.Set("history.limit", cfg.History.Limit)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ConfigPath returns the directory searched first for config.yaml
func ConfigPath() string {
	return defaultConfigPath()
}
