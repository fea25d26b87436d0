package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/pkg/id"
	"github.com/rustyeddy/tradejournal/report"
	"gopkg.in/yaml.v3"
)

// Config is the complete journal configuration.
type Config struct {
	Storage  StorageConfig  `json:"storage" yaml:"storage"`
	Calendar CalendarConfig `json:"calendar" yaml:"calendar"`
	IDs      IDConfig       `json:"ids" yaml:"ids"`
	Display  DisplayConfig  `json:"display" yaml:"display"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// StorageConfig says where the journal snapshot lives.
type StorageConfig struct {
	Type string `json:"type" yaml:"type"` // "file", "sqlite" or "memory"
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	Key  string `json:"key" yaml:"key"`
}

// CalendarConfig fixes how days and weeks are cut.
type CalendarConfig struct {
	Timezone string `json:"timezone" yaml:"timezone"` // "Local" or an IANA name
	Weeks    string `json:"weeks" yaml:"weeks"`       // "locale" or "iso"
}

type IDConfig struct {
	Format string `json:"format" yaml:"format"` // "ulid" or "uuid"
}

// DisplayConfig controls CLI output.
type DisplayConfig struct {
	Currency string `json:"currency" yaml:"currency"`
	Markdown bool   `json:"markdown" yaml:"markdown"`
	Width    int    `json:"width" yaml:"width"`
	Style    string `json:"style" yaml:"style"` // glamour style, "auto" follows the terminal
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "console" or "json"
}

// Environment variables that override file settings.
const (
	EnvStorage  = "TRADEJOURNAL_STORAGE"
	EnvPath     = "TRADEJOURNAL_PATH"
	EnvTimezone = "TRADEJOURNAL_TZ"
	EnvLogLevel = "TRADEJOURNAL_LOG_LEVEL"
)

// LoadFromFile loads configuration from a file (YAML or JSON), applies
// environment overrides and validates the result.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides settings from the environment. lookup is
// os.LookupEnv outside tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvStorage); ok && v != "" {
		c.Storage.Type = v
	}
	if v, ok := lookup(EnvPath); ok && v != "" {
		c.Storage.Path = v
	}
	if v, ok := lookup(EnvTimezone); ok && v != "" {
		c.Calendar.Timezone = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "file", "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path required for %s storage", c.Storage.Type)
		}
	case "memory":
	default:
		return fmt.Errorf("storage.type must be 'file', 'sqlite' or 'memory'")
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage.key is required")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("calendar.timezone: %w", err)
	}
	if _, err := journal.ParseWeekNumbering(c.Calendar.Weeks); err != nil {
		return fmt.Errorf("calendar.weeks must be 'locale' or 'iso'")
	}
	if _, err := id.ForFormat(c.IDs.Format); err != nil {
		return fmt.Errorf("ids.format must be 'ulid' or 'uuid'")
	}
	if len(c.Display.Currency) != 3 {
		return fmt.Errorf("display.currency must be a 3 letter ISO code")
	}
	if c.Display.Width < 0 {
		return fmt.Errorf("display.width must not be negative")
	}
	if err := report.CheckStyle(c.Display.Style); err != nil {
		return fmt.Errorf("display.style: %w", err)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	return nil
}

// Location resolves calendar.timezone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Calendar.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	return time.LoadLocation(c.Calendar.Timezone)
}

// JournalCalendar builds the journal calendar described by the config.
func (c *Config) JournalCalendar() (journal.Calendar, error) {
	loc, err := c.Location()
	if err != nil {
		return journal.Calendar{}, err
	}
	weeks, err := journal.ParseWeekNumbering(c.Calendar.Weeks)
	if err != nil {
		return journal.Calendar{}, err
	}
	return journal.NewCalendar(loc, weeks), nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Type: "file",
			Path: "./journal",
			Key:  journal.DefaultKey,
		},
		Calendar: CalendarConfig{
			Timezone: "Local",
			Weeks:    "locale",
		},
		IDs: IDConfig{
			Format: "ulid",
		},
		Display: DisplayConfig{
			Currency: "USD",
			Markdown: true,
			Width:    80,
			Style:    report.AutoStyle,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}
