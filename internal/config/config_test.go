package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/daybalance/internal/balance"
	"github.com/javiermolinar/daybalance/internal/dateutil"
	"github.com/javiermolinar/daybalance/internal/event"
	"github.com/javiermolinar/daybalance/internal/timewindow"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Balance.Goal != 50 {
		t.Errorf("expected goal 50, got %d", cfg.Balance.Goal)
	}
	if cfg.Balance.Basis != "waking" {
		t.Errorf("expected basis waking, got %s", cfg.Balance.Basis)
	}
	if cfg.Balance.IgnoreUnallotted {
		t.Error("expected ignore_unallotted false")
	}
	if len(cfg.Sleep) != 7 {
		t.Errorf("expected 7 sleep windows, got %d", len(cfg.Sleep))
	}
	if w := cfg.Sleep["monday"]; w.Start != "23:00" || w.End != "07:00" {
		t.Errorf("expected monday 23:00-07:00, got %+v", w)
	}
	if cfg.Display.RowHeightPx != 40 {
		t.Errorf("expected row height 40, got %v", cfg.Display.RowHeightPx)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Balance.Goal != 50 {
		t.Errorf("expected default goal, got %d", cfg.Balance.Goal)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[balance]
goal = 40
basis = "fullDay"
ignore_unallotted = true

[sleep.monday]
start = "00:30"
end = "08:30"

[activities.work]
deepWork = true
planning = false

[activities.life]
exercise = true

[display]
one_bar = true

[events]
files = ["/tmp/events.yaml"]
calendars = ["/tmp/work.ics"]
default_category = "work"

[log]
level = "debug"
format = "json"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Balance.Goal != 40 {
		t.Errorf("expected goal 40, got %d", cfg.Balance.Goal)
	}
	if w := cfg.Sleep["monday"]; w.Start != "00:30" || w.End != "08:30" {
		t.Errorf("expected monday 00:30-08:30, got %+v", w)
	}
	if !cfg.Activities.Work["deepWork"] || cfg.Activities.Work["planning"] {
		t.Errorf("unexpected work activities: %v", cfg.Activities.Work)
	}
	if !cfg.Display.OneBar {
		t.Error("expected one_bar true")
	}
	if len(cfg.Events.Calendars) != 1 || cfg.Events.Calendars[0] != "/tmp/work.ics" {
		t.Errorf("unexpected calendars: %v", cfg.Events.Calendars)
	}
	if cfg.DefaultCategory() != event.CategoryWork {
		t.Errorf("expected default category work, got %s", cfg.DefaultCategory())
	}
	if cfg.Log.Format != LogFormatJSON {
		t.Errorf("expected json log format, got %s", cfg.Log.Format)
	}

	s, err := cfg.Settings()
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	if s.PercentageBasis != balance.BasisFullDay {
		t.Errorf("expected fullDay basis, got %s", s.PercentageBasis)
	}
	if s.EffectiveBasis() != balance.BasisAllocated {
		t.Errorf("expected allocated effective basis, got %s", s.EffectiveBasis())
	}
	if w, err := s.Sleep.For(time.Monday); err != nil || w.Start != "00:30" {
		t.Errorf("expected monday window in settings, got %+v (%v)", w, err)
	}
	if !s.LifePreferredActivities["exercise"] {
		t.Error("expected exercise preferred")
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[balance]
goal = 70
ignore_unallotted = true

[display]
one_bar = true

[events]
calendars = ["/tmp/file.ics"]

[log]
level = "warn"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("DAYBALANCE_ONE_BAR", "false")
	t.Setenv("DAYBALANCE_BALANCE_GOAL", "0")
	t.Setenv("DAYBALANCE_IGNORE_UNALLOTTED", "false")
	t.Setenv("DAYBALANCE_SLEEP_START", "22:00")
	t.Setenv("DAYBALANCE_SLEEP_END", "06:00")
	t.Setenv("DAYBALANCE_EVENT_FILES", "/tmp/a.yaml, /tmp/b.yaml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// An explicit zero or false still overrides the file.
	if cfg.Balance.Goal != 0 {
		t.Errorf("expected goal 0 from env, got %d", cfg.Balance.Goal)
	}
	if cfg.Balance.IgnoreUnallotted {
		t.Error("expected ignore_unallotted false from env")
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		w := cfg.Sleep[dateutil.WeekdayName(d)]
		if w.Start != "22:00" || w.End != "06:00" {
			t.Errorf("%s: expected 22:00-06:00 from env, got %+v", d, w)
		}
	}
	if len(cfg.Events.Files) != 2 || cfg.Events.Files[1] != "/tmp/b.yaml" {
		t.Errorf("unexpected event files: %v", cfg.Events.Files)
	}
	if cfg.Display.OneBar {
		t.Error("expected one_bar false from env")
	}
	if len(cfg.Events.Calendars) != 1 || cfg.Events.Calendars[0] != "/tmp/file.ics" {
		t.Errorf("calendars without env override should come from the file, got %v", cfg.Events.Calendars)
	}
	// File value should be kept when no env override
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level warn from file, got %s", cfg.Log.Level)
	}
}

func TestLoadFrom_EnvErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "goal not a number", key: "DAYBALANCE_BALANCE_GOAL", val: "half"},
		{name: "bad bool", key: "DAYBALANCE_IGNORE_UNALLOTTED", val: "maybe"},
		{name: "sleep start alone", key: "DAYBALANCE_SLEEP_START", val: "22:00"},
		{name: "one bar not a bool", key: "DAYBALANCE_ONE_BAR", val: "sometimes"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			if _, err := LoadFrom("/nonexistent/path/config.toml"); err == nil {
				t.Errorf("expected error for %s=%s", tc.key, tc.val)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "goal above 100", mutate: func(c *Config) { c.Balance.Goal = 101 }, wantErr: balance.ErrInvalidGoal},
		{name: "negative goal", mutate: func(c *Config) { c.Balance.Goal = -1 }, wantErr: balance.ErrInvalidGoal},
		{name: "allocated is not configurable", mutate: func(c *Config) { c.Balance.Basis = "allocated" }, wantErr: balance.ErrInvalidBasis},
		{name: "bad clock", mutate: func(c *Config) { c.Sleep["friday"] = timewindow.SleepWindow{Start: "25:00", End: "07:00"} }, wantErr: timewindow.ErrInvalidClock},
		{name: "bad weekday", mutate: func(c *Config) { c.Sleep["funday"] = timewindow.SleepWindow{Start: "23:00", End: "07:00"} }, wantErr: dateutil.ErrInvalidWeekday},
		{name: "bad default category", mutate: func(c *Config) { c.Events.DefaultCategory = "chores" }, wantErr: event.ErrInvalidCategory},
		{name: "zero row height", mutate: func(c *Config) { c.Display.RowHeightPx = 0 }},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestSettings_MissingWeekdayStaysMissing(t *testing.T) {
	cfg := Default()
	delete(cfg.Sleep, "sunday")

	s, err := cfg.Settings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = s.Sleep.For(time.Sunday)
	if !errors.Is(err, timewindow.ErrMissingSchedule) {
		t.Errorf("expected ErrMissingSchedule, got %v", err)
	}
}

func TestSettings_DoesNotAliasConfig(t *testing.T) {
	cfg := Default()
	cfg.Activities.Work["deepWork"] = true

	s, err := cfg.Settings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.WorkPreferredActivities["deepWork"] = false
	if !cfg.Activities.Work["deepWork"] {
		t.Error("Settings() shares the preference map with the config")
	}
}

func TestSleepDays(t *testing.T) {
	cfg := Default()
	got := cfg.SleepDays()
	want := []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
	if len(got) != len(want) {
		t.Fatalf("SleepDays() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SleepDays()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/events.yaml", filepath.Join(home, "events.yaml")},
		{"/absolute/path.yaml", "/absolute/path.yaml"},
		{"relative/path.yaml", "relative/path.yaml"},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Balance.Goal = 35
	cfg.Sleep["saturday"] = timewindow.SleepWindow{Start: "01:00", End: "10:00"}
	cfg.Activities.Life["rest"] = true

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Balance.Goal != 35 {
		t.Errorf("expected goal 35, got %d", loaded.Balance.Goal)
	}
	if w := loaded.Sleep["saturday"]; w.Start != "01:00" || w.End != "10:00" {
		t.Errorf("expected saturday 01:00-10:00, got %+v", w)
	}
	if !loaded.Activities.Life["rest"] {
		t.Error("expected rest preferred after reload")
	}
}
