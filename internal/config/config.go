// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/gantt/internal/chart"
	"github.com/javiermolinar/gantt/internal/dateutil"
)

// Config holds the application configuration.
type Config struct {
	Chart   ChartConfig   `toml:"chart"`
	Render  RenderConfig  `toml:"render"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
}

// ChartConfig holds timeline settings.
type ChartConfig struct {
	Period       string `toml:"period"`        // "day" or "hour"
	Start        string `toml:"start"`         // "week", "today", or YYYY-MM-DD
	RowHeight    int    `toml:"row_height"`    // px, used when a row has no height
	CellWidth    int    `toml:"cell_width"`    // px per time cell
	ClassPrefix  string `toml:"class_prefix"`  // e.g. "gstc"
	LeaveFade    string `toml:"leave_fade"`    // e.g. "150ms"
	RowWrapper   string `toml:"row_wrapper"`   // "none"
	BlockWrapper string `toml:"block_wrapper"` // "none" or "weekend"
}

// RenderConfig maps px values onto terminal cells.
type RenderConfig struct {
	PxPerColumn int `toml:"px_per_column"`
	PxPerLine   int `toml:"px_per_line"`
	LabelWidth  int `toml:"label_width"` // columns reserved for row labels
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Chart: ChartConfig{
			Period:       string(chart.PeriodDay),
			Start:        "week",
			RowHeight:    chart.DefaultRowHeight,
			CellWidth:    60,
			ClassPrefix:  "gstc",
			LeaveFade:    "150ms",
			RowWrapper:   "none",
			BlockWrapper: "weekend",
		},
		Render: RenderConfig{
			PxPerColumn: 10,
			PxPerLine:   20,
			LabelWidth:  16,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gantt.db"
	}
	return filepath.Join(home, ".local", "share", "gantt", "gantt.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "gantt", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("GANTT_PERIOD"); v != "" {
		cfg.Chart.Period = v
	}
	if v := os.Getenv("GANTT_START"); v != "" {
		cfg.Chart.Start = v
	}
	if v := os.Getenv("GANTT_CELL_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GANTT_CELL_WIDTH: %w", err)
		}
		cfg.Chart.CellWidth = n
	}
	if v := os.Getenv("GANTT_ROW_HEIGHT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GANTT_ROW_HEIGHT: %w", err)
		}
		cfg.Chart.RowHeight = n
	}
	if v := os.Getenv("GANTT_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("GANTT_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := chart.ParsePeriod(c.Chart.Period); err != nil {
		return err
	}
	if _, err := c.StartDate(time.Now()); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if c.Chart.RowHeight <= 0 {
		return errors.New("row_height must be positive")
	}
	if c.Chart.CellWidth <= 0 {
		return errors.New("cell_width must be positive")
	}
	if d, err := time.ParseDuration(c.Chart.LeaveFade); err != nil || d < 0 {
		return fmt.Errorf("leave_fade must be a non-negative duration, got %q", c.Chart.LeaveFade)
	}
	if c.Render.PxPerColumn <= 0 || c.Render.PxPerLine <= 0 {
		return errors.New("px_per_column and px_per_line must be positive")
	}
	if c.Render.LabelWidth < 0 {
		return errors.New("label_width must not be negative")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// PeriodValue returns the parsed chart period, defaulting to days.
func (c *Config) PeriodValue() chart.Period {
	p, err := chart.ParsePeriod(c.Chart.Period)
	if err != nil {
		return chart.PeriodDay
	}
	return p
}

// LeaveFadeDuration returns the parsed leave fade duration.
func (c *Config) LeaveFadeDuration() time.Duration {
	d, err := time.ParseDuration(c.Chart.LeaveFade)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// StartDate resolves the configured start of the time window relative to now.
func (c *Config) StartDate(now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(c.Chart.Start)) {
	case "", "week":
		monday, _ := dateutil.WeekRange(now)
		return monday, nil
	case "today":
		return dateutil.TruncateToDay(now), nil
	}
	return dateutil.ParseDate(c.Chart.Start)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
