package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/TimelordUK/colgrep/internal/fields"
	"github.com/TimelordUK/colgrep/internal/logging"
	"github.com/TimelordUK/colgrep/internal/search"
)

// Config holds all application configuration
type Config struct {
	Columns ColumnsConfig `toml:"columns"`
	Search  SearchConfig  `toml:"search"`
	Display DisplayConfig `toml:"display"`
	Theme   ThemeConfig   `toml:"theme"`
	Log     LogConfig     `toml:"log"`
}

// ColumnsConfig is the column specification applied to every displayed line
type ColumnsConfig struct {
	Spec          string `toml:"spec"`
	Mode          string `toml:"mode"` // include | exclude
	KeepLastField bool   `toml:"keep_last_field"`
}

// SearchConfig controls how search patterns are compiled
type SearchConfig struct {
	IgnoreCase bool   `toml:"ignore_case"`
	Literal    bool   `toml:"literal"`
	Engine     string `toml:"engine"` // re2 | regexp2
	TimeoutMs  int    `toml:"timeout_ms"`
}

// DisplayConfig holds display options
type DisplayConfig struct {
	ShowLineNumbers bool `toml:"show_line_numbers"`
}

// ThemeConfig defines colors, as lipgloss color strings
type ThemeConfig struct {
	LineNumbers   string `toml:"line_numbers"`
	StatusBar     string `toml:"status_bar"`
	StatusBarText string `toml:"status_bar_text"`
	SearchMatch   string `toml:"search_match"`
	Warning       string `toml:"warning"`
}

// LogConfig controls the log file
type LogConfig struct {
	Level string `toml:"level"`
	Dir   string `toml:"dir"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Columns: ColumnsConfig{
			Mode: fields.ModeInclude.String(),
		},
		Search: SearchConfig{
			Engine:    string(search.EngineRE2),
			TimeoutMs: int(search.DefaultMatchTimeout / time.Millisecond),
		},
		Display: DisplayConfig{
			ShowLineNumbers: true,
		},
		Theme: ThemeConfig{
			LineNumbers:   "240", // Dark gray
			StatusBar:     "236", // Darker gray background
			StatusBarText: "252", // Light gray text
			SearchMatch:   "226", // Yellow
			Warning:       "214", // Orange
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks enumerated and numeric fields
func (c *Config) Validate() error {
	if _, err := fields.ParseMode(c.Columns.Mode); err != nil {
		return err
	}
	if _, err := search.ParseEngine(c.Search.Engine); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ColumnSpec converts the columns section into a selector spec. An invalid
// mode falls back to include.
func (c *Config) ColumnSpec() fields.Spec {
	mode, _ := fields.ParseMode(c.Columns.Mode)
	return fields.Spec{
		Columns:  c.Columns.Spec,
		Mode:     mode,
		KeepLast: c.Columns.KeepLastField,
	}
}

// SearchOptions converts the search section into matcher options
func (c *Config) SearchOptions() search.Options {
	engine, _ := search.ParseEngine(c.Search.Engine)
	return search.Options{
		IgnoreCase: c.Search.IgnoreCase,
		Literal:    c.Search.Literal,
		Engine:     engine,
		Timeout:    time.Duration(c.Search.TimeoutMs) * time.Millisecond,
	}
}

// LogDir returns the configured log directory or the default under the
// user cache directory.
func (c *Config) LogDir() string {
	if c.Log.Dir != "" {
		return c.Log.Dir
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "colgrep")
	}
	return filepath.Join(os.TempDir(), "colgrep")
}

// Load loads config from the default path, falling back to defaults
func Load() (*Config, error) {
	return LoadFrom(getConfigPath())
}

// LoadFrom loads config from path. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves config to the default path
func Save(cfg *Config) error {
	return SaveTo(getConfigPath(), cfg)
}

// SaveTo writes cfg to path, creating parent directories
func SaveTo(path string, cfg *Config) error {
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "colgrep", "config.toml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "colgrep", "config.toml")
}

// GetConfigPath exports the config path for user reference
func GetConfigPath() string {
	return getConfigPath()
}
