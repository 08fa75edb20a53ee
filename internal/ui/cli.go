// Package ui implements the daybalance command line.
package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybalance/internal/config"
	"github.com/javiermolinar/daybalance/internal/dateutil"
	"github.com/javiermolinar/daybalance/internal/event"
	"github.com/javiermolinar/daybalance/internal/eventfile"
	"github.com/javiermolinar/daybalance/internal/ics"
	"github.com/javiermolinar/daybalance/internal/logging"
	"github.com/javiermolinar/daybalance/internal/recommend"
	"github.com/javiermolinar/daybalance/internal/summary"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config   *config.Config
	log      *logrus.Entry
	root     *cobra.Command
	out      io.Writer
	errOut   io.Writer
	now      func() time.Time
	source   event.Source // overrides the configured sources when set
	cfgPath  string
	dateFlag string
	debug    bool
	noColor  bool
}

// NewApp creates a new CLI application. A nil cfg is loaded from --config
// before each command runs.
func NewApp(cfg *config.Config) *App {
	a := &App{
		config: cfg,
		log:    logging.Discard(),
		out:    color.Output,
		errOut: os.Stderr,
		now:    time.Now,
	}

	a.root = &cobra.Command{
		Use:   "daybalance",
		Short: "Balance work and life time across your day",
		Long: `Daybalance lays out your calendar for a day, shades the hours you
sleep, and tells you how your waking time splits between work and life.

When one side falls behind your balance goal it suggests activities
from the categories you prefer.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDay(cmd, 0)
		},
	}

	a.root.PersistentFlags().StringVar(&a.cfgPath, "config", config.DefaultConfigPath(), "Path to the config file")
	a.root.PersistentFlags().StringVar(&a.dateFlag, "date", "", "Viewed date: YYYY-MM-DD, today, yesterday, tomorrow or a weekday")
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.dayCmd())
	a.root.AddCommand(a.layoutCmd())
	a.root.AddCommand(a.statsCmd())
	a.root.AddCommand(a.recommendCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

// setup loads the config and logger once flags are parsed.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if a.noColor {
		DisableColor()
	}
	if a.config == nil {
		cfg, err := config.LoadFrom(a.cfgPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		a.config = cfg
	}

	logCfg := a.config.Log
	if a.debug {
		logCfg.Level = "debug"
	}
	log, err := logging.New(logCfg, a.errOut)
	if err != nil {
		return err
	}
	a.log = log.WithField("command", cmd.Name())
	return nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(a.out, "daybalance %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// viewDate returns midnight of the date selected by --date.
func (a *App) viewDate() (time.Time, error) {
	d, err := dateutil.ParseViewDate(a.dateFlag, a.now())
	if err != nil {
		return time.Time{}, err
	}
	return dateutil.TruncateToDay(d), nil
}

// eventSource merges every configured event file and calendar.
func (a *App) eventSource() event.Source {
	if a.source != nil {
		return a.source
	}
	var sources event.MultiSource
	for _, path := range a.config.Events.Files {
		sources = append(sources, eventfile.New(path, time.Local))
	}
	for _, path := range a.config.Events.Calendars {
		src := ics.New(path, ics.Options{DefaultCategory: a.config.DefaultCategory(), Location: time.Local})
		src.Log = a.log
		sources = append(sources, src)
	}
	return sources
}

// store returns the writable event file: the first one configured.
func (a *App) store() (*eventfile.Store, error) {
	if len(a.config.Events.Files) == 0 {
		return nil, fmt.Errorf("no event file configured (events.files)")
	}
	return eventfile.New(a.config.Events.Files[0], time.Local), nil
}

func (a *App) catalog() (recommend.Catalog, error) {
	if a.config.Activities.Catalog == "" {
		return recommend.DefaultCatalog(), nil
	}
	c, err := recommend.LoadCatalogFile(a.config.Activities.Catalog)
	if err != nil {
		return recommend.Catalog{}, fmt.Errorf("loading catalog: %w", err)
	}
	return c, nil
}

// selector returns a seeded selector when seed is non-zero.
func (a *App) selector(seed uint64) *recommend.Selector {
	var sel *recommend.Selector
	if seed != 0 {
		sel = recommend.NewSeededSelector(seed)
	} else {
		sel = recommend.NewSelector(nil)
	}
	sel.Log = a.log
	return sel
}

// daySummary loads and summarizes the viewed date.
func (a *App) daySummary(cmd *cobra.Command, seed uint64, oneBar bool) (*summary.DaySummary, error) {
	date, err := a.viewDate()
	if err != nil {
		return nil, err
	}
	settings, err := a.config.Settings()
	if err != nil {
		return nil, err
	}
	cat, err := a.catalog()
	if err != nil {
		return nil, err
	}

	return summary.BuildDaySummary(cmd.Context(), a.eventSource(), settings, date, summary.DayOptions{
		Catalog:      cat,
		Selector:     a.selector(seed),
		Shading:      a.shadingOptions(),
		OneBarLayout: oneBar || a.config.Display.OneBar,
		Log:          a.log,
	})
}
