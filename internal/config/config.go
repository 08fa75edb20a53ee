// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/daybalance/internal/balance"
	"github.com/javiermolinar/daybalance/internal/dateutil"
	"github.com/javiermolinar/daybalance/internal/event"
	"github.com/javiermolinar/daybalance/internal/sleep"
	"github.com/javiermolinar/daybalance/internal/timewindow"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds the application configuration.
type Config struct {
	Balance    BalanceConfig                     `toml:"balance"`
	Sleep      map[string]timewindow.SleepWindow `toml:"sleep"`
	Activities ActivitiesConfig                  `toml:"activities"`
	Display    DisplayConfig                     `toml:"display"`
	Events     EventsConfig                      `toml:"events"`
	Log        LogConfig                         `toml:"log"`
}

// BalanceConfig holds the balance goal and how percentages are computed.
type BalanceConfig struct {
	Goal             int    `toml:"goal"`              // work share of waking time, 0-100
	Basis            string `toml:"basis"`             // "waking" or "fullDay"
	IgnoreUnallotted bool   `toml:"ignore_unallotted"` // divide by scheduled time only
}

// ActivitiesConfig holds the preferred activity flags per category.
type ActivitiesConfig struct {
	Work    map[string]bool `toml:"work"`
	Life    map[string]bool `toml:"life"`
	Catalog string          `toml:"catalog"` // optional YAML catalog replacing the built-in one
}

// DisplayConfig holds output settings.
type DisplayConfig struct {
	RowHeightPx float64 `toml:"row_height_px"`
	OneBar      bool    `toml:"one_bar"` // single sidebar: caps recommendations
}

// EventsConfig lists the event sources.
type EventsConfig struct {
	Files           []string `toml:"files"`            // YAML event files
	Calendars       []string `toml:"calendars"`        // iCalendar files
	DefaultCategory string   `toml:"default_category"` // for calendar events without a category
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	sleepWindows := make(map[string]timewindow.SleepWindow, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		sleepWindows[dateutil.WeekdayName(d)] = timewindow.SleepWindow{Start: "23:00", End: "07:00"}
	}
	return &Config{
		Balance: BalanceConfig{
			Goal:  balance.DefaultGoal,
			Basis: string(balance.BasisWaking),
		},
		Sleep: sleepWindows,
		Activities: ActivitiesConfig{
			Work: map[string]bool{},
			Life: map[string]bool{},
		},
		Display: DisplayConfig{
			RowHeightPx: sleep.DefaultRowHeightPx,
		},
		Events: EventsConfig{
			Files:           []string{defaultEventsPath()},
			DefaultCategory: string(event.CategoryLife),
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatText,
		},
	}
}

// defaultEventsPath returns the default YAML event file path.
func defaultEventsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "events.yaml"
	}
	return filepath.Join(home, ".local", "share", "daybalance", "events.yaml")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "daybalance", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	for i, p := range cfg.Events.Files {
		cfg.Events.Files[i] = expandPath(p)
	}
	for i, p := range cfg.Events.Calendars {
		cfg.Events.Calendars[i] = expandPath(p)
	}
	cfg.Activities.Catalog = expandPath(cfg.Activities.Catalog)

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

// envOverrides lists the recognised environment variables. It is seeded
// with the file values before parsing: unset variables leave a field alone
// and a set one replaces it, so an explicit zero or false still overrides
// the file.
type envOverrides struct {
	Goal             int      `env:"DAYBALANCE_BALANCE_GOAL"`
	Basis            string   `env:"DAYBALANCE_PERCENTAGE_BASIS"`
	IgnoreUnallotted bool     `env:"DAYBALANCE_IGNORE_UNALLOTTED"`
	SleepStart       string   `env:"DAYBALANCE_SLEEP_START"` // applied to every weekday
	SleepEnd         string   `env:"DAYBALANCE_SLEEP_END"`
	EventFiles       []string `env:"DAYBALANCE_EVENT_FILES" envSeparator:","`
	Calendars        []string `env:"DAYBALANCE_CALENDARS" envSeparator:","`
	Catalog          string   `env:"DAYBALANCE_CATALOG"`
	OneBar           bool     `env:"DAYBALANCE_ONE_BAR"`
	LogLevel         string   `env:"DAYBALANCE_LOG_LEVEL"`
	LogFormat        string   `env:"DAYBALANCE_LOG_FORMAT"`
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	o := envOverrides{
		Goal:             cfg.Balance.Goal,
		Basis:            cfg.Balance.Basis,
		IgnoreUnallotted: cfg.Balance.IgnoreUnallotted,
		EventFiles:       cfg.Events.Files,
		Calendars:        cfg.Events.Calendars,
		Catalog:          cfg.Activities.Catalog,
		OneBar:           cfg.Display.OneBar,
		LogLevel:         cfg.Log.Level,
		LogFormat:        cfg.Log.Format,
	}
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	cfg.Balance.Goal = o.Goal
	cfg.Balance.Basis = o.Basis
	cfg.Balance.IgnoreUnallotted = o.IgnoreUnallotted
	cfg.Events.Files = trimList(o.EventFiles)
	cfg.Events.Calendars = trimList(o.Calendars)
	cfg.Activities.Catalog = o.Catalog
	cfg.Display.OneBar = o.OneBar
	cfg.Log.Level = o.LogLevel
	cfg.Log.Format = o.LogFormat

	if o.SleepStart != "" || o.SleepEnd != "" {
		if o.SleepStart == "" || o.SleepEnd == "" {
			return errors.New("DAYBALANCE_SLEEP_START and DAYBALANCE_SLEEP_END must be set together")
		}
		if cfg.Sleep == nil {
			cfg.Sleep = make(map[string]timewindow.SleepWindow, 7)
		}
		for d := time.Sunday; d <= time.Saturday; d++ {
			cfg.Sleep[dateutil.WeekdayName(d)] = timewindow.SleepWindow{Start: o.SleepStart, End: o.SleepEnd}
		}
	}
	return nil
}

// trimList drops blanks around and between comma-separated entries.
func trimList(list []string) []string {
	if list == nil {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, p := range list {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
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
	if _, err := c.Settings(); err != nil {
		return err
	}
	if _, err := event.ParseCategory(c.Events.DefaultCategory); err != nil {
		return fmt.Errorf("default_category: %w", err)
	}
	if c.Display.RowHeightPx <= 0 {
		return fmt.Errorf("row_height_px must be positive, got %v", c.Display.RowHeightPx)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Log.Format != LogFormatText && c.Log.Format != LogFormatJSON {
		return fmt.Errorf("log format must be %q or %q, got %q", LogFormatText, LogFormatJSON, c.Log.Format)
	}
	return nil
}

// Settings converts the configuration into validated engine settings.
// Weekdays absent from the sleep table stay absent; the engines treat them
// as a missing schedule.
func (c *Config) Settings() (balance.Settings, error) {
	basis, err := balance.ParseBasis(c.Balance.Basis)
	if err != nil {
		return balance.Settings{}, err
	}

	schedule := make(timewindow.DaySchedule, len(c.Sleep))
	for name, w := range c.Sleep {
		day, err := dateutil.ParseWeekday(name)
		if err != nil {
			return balance.Settings{}, fmt.Errorf("sleep.%s: %w", name, err)
		}
		schedule[day] = w
	}

	s := balance.Settings{
		BalanceGoal:             c.Balance.Goal,
		PercentageBasis:         basis,
		IgnoreUnallotted:        c.Balance.IgnoreUnallotted,
		WorkPreferredActivities: cloneFlags(c.Activities.Work),
		LifePreferredActivities: cloneFlags(c.Activities.Life),
		Sleep:                   schedule,
	}
	if err := s.Validate(); err != nil {
		return balance.Settings{}, err
	}
	return s, nil
}

func cloneFlags(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// DefaultCategory returns the category assigned to uncategorised calendar events.
func (c *Config) DefaultCategory() event.Category {
	cat, err := event.ParseCategory(c.Events.DefaultCategory)
	if err != nil {
		return event.CategoryLife
	}
	return cat
}

// SleepDays returns the configured weekday names in calendar order.
func (c *Config) SleepDays() []string {
	days := make([]string, 0, len(c.Sleep))
	for name := range c.Sleep {
		days = append(days, name)
	}
	slices.SortFunc(days, func(a, b string) int {
		da, _ := dateutil.ParseWeekday(a)
		db, _ := dateutil.ParseWeekday(b)
		return int(da) - int(db)
	})
	return days
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
