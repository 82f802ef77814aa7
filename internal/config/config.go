// Package config loads, validates and persists the picker configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/durwheel/durwheel/internal/timespan"
)

// Default configuration values
const (
	DefaultTheme         = "catppuccin"
	DefaultAPIPort       = 8724
	DefaultWatchDebounce = 500 // milliseconds
	DefaultDBName        = "history.db"
	DefaultLogName       = "durwheel.log"
)

// Config holds all application configuration
type Config struct {
	// Picker settings
	Mode           string `yaml:"mode"`
	HourInterval   int    `yaml:"hour_interval"`
	MinuteInterval int    `yaml:"minute_interval"`
	SecondInterval int    `yaml:"second_interval"`
	Rounding       string `yaml:"rounding"`
	MinimumSeconds *int   `yaml:"minimum_seconds,omitempty"`
	MaximumSeconds *int   `yaml:"maximum_seconds,omitempty"`

	// UI settings
	Theme                string `yaml:"theme"`
	SoundEnabled         bool   `yaml:"sound_enabled"`
	NotificationsEnabled bool   `yaml:"notifications_enabled"`

	// Storage
	DataDir      string `yaml:"data_dir"`
	DatabasePath string `yaml:"database_path"`

	// Logging
	LogPath  string `yaml:"log_path"`
	LogLevel string `yaml:"log_level"`

	// API settings
	APIEnabled         bool     `yaml:"api_enabled"`
	APIPort            int      `yaml:"api_port"`
	APIKey             string   `yaml:"api_key"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`

	// File watching
	WatchEnabled  bool `yaml:"watch_enabled"`
	WatchDebounce int  `yaml:"watch_debounce"` // milliseconds

	// Path the config was loaded from; empty when built from defaults.
	path string
}

// New creates a new Config with default values
func New() *Config {
	dataDir := defaultDataDir()

	return &Config{
		Mode:           timespan.ModeHourMinuteSecond.String(),
		HourInterval:   1,
		MinuteInterval: 1,
		SecondInterval: 1,
		Rounding:       timespan.RoundDown.String(),
		Theme:          DefaultTheme,
		DataDir:        dataDir,
		DatabasePath:   filepath.Join(dataDir, DefaultDBName),
		LogPath:        filepath.Join(dataDir, DefaultLogName),
		LogLevel:       "info",
		APIEnabled:     false,
		APIPort:        DefaultAPIPort,
		WatchEnabled:   true,
		WatchDebounce:  DefaultWatchDebounce,
	}
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	return filepath.Join(defaultDataDir(), "config.yaml")
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "durwheel")
}

// Load reads a config file, overlaying it on the defaults. A missing
// file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := New()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.Normalize()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Normalize()
	return cfg, nil
}

// Save writes the config back to the file it was loaded from
func (c *Config) Save() error {
	if c.path == "" {
		c.path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Path returns the config file location
func (c *Config) Path() string {
	if c.path == "" {
		return DefaultPath()
	}
	return c.path
}

// EnsureDataDir creates the data directory if needed
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0o755)
}

// Normalize resets illegal picker settings to their defaults. The
// quantizer trusts its intervals, so every interval that does not
// evenly divide its unit, or falls outside [1, unit/2], goes back
// to 1 here.
func (c *Config) Normalize() {
	if _, err := timespan.ParseMode(c.Mode); err != nil {
		c.Mode = timespan.ModeHourMinuteSecond.String()
	}
	if _, err := timespan.ParseRounding(c.Rounding); err != nil {
		c.Rounding = timespan.RoundDown.String()
	}

	c.HourInterval = normalizeInterval(c.HourInterval, 24)
	c.MinuteInterval = normalizeInterval(c.MinuteInterval, 60)
	c.SecondInterval = normalizeInterval(c.SecondInterval, 60)

	if c.APIPort <= 0 || c.APIPort > 65535 {
		c.APIPort = DefaultAPIPort
	}
	if c.WatchDebounce <= 0 {
		c.WatchDebounce = DefaultWatchDebounce
	}
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(c.DataDir, DefaultDBName)
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(c.DataDir, DefaultLogName)
	}
}

// normalizeInterval returns interval when it evenly divides unitCount
// and lies within [1, unitCount/2], and 1 otherwise.
func normalizeInterval(interval, unitCount int) int {
	if !timespan.ValidInterval(interval, unitCount) {
		return 1
	}
	return interval
}

// Options converts the picker settings into quantizer options
func (c *Config) Options() timespan.Options {
	mode, _ := timespan.ParseMode(c.Mode)
	rounding, _ := timespan.ParseRounding(c.Rounding)

	return timespan.Options{
		Mode:           mode,
		HourInterval:   c.HourInterval,
		MinuteInterval: c.MinuteInterval,
		SecondInterval: c.SecondInterval,
		Minimum:        c.MinimumSeconds,
		Maximum:        c.MaximumSeconds,
		Rounding:       rounding,
	}
}
