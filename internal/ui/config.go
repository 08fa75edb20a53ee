package ui

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybalance/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or create the configuration",
		Long: `Show the effective configuration (file, defaults and DAYBALANCE_*
environment overrides), write a default config file, or print its path.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			printConfig(a.out, a.config)
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := os.Stat(a.cfgPath); err == nil && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", a.cfgPath)
			}
			if err := config.Default().SaveTo(a.cfgPath); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			_, _ = fmt.Fprintf(a.out, "Created %s\n", a.cfgPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			RunE: func(_ *cobra.Command, _ []string) error {
				printConfig(a.out, a.config)
				return nil
			},
		},
		initCmd,
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Run: func(_ *cobra.Command, _ []string) {
				_, _ = fmt.Fprintln(a.out, a.cfgPath)
			},
		},
	)
	return cmd
}

func printConfig(w io.Writer, cfg *config.Config) {
	p := func(format string, args ...any) { _, _ = fmt.Fprintf(w, format, args...) }

	p("Current configuration:\n")
	p("──────────────────────\n")
	p("[balance]\n")
	p("  goal              = %d\n", cfg.Balance.Goal)
	p("  basis             = %s\n", cfg.Balance.Basis)
	p("  ignore_unallotted = %t\n", cfg.Balance.IgnoreUnallotted)
	p("\n[sleep]\n")
	for _, day := range cfg.SleepDays() {
		win := cfg.Sleep[day]
		p("  %-17s = %s-%s\n", day, win.Start, win.End)
	}
	p("\n[activities]\n")
	p("  work              = %s\n", preferredList(cfg.Activities.Work))
	p("  life              = %s\n", preferredList(cfg.Activities.Life))
	if cfg.Activities.Catalog != "" {
		p("  catalog           = %s\n", cfg.Activities.Catalog)
	}
	p("\n[display]\n")
	p("  row_height_px     = %.0f\n", cfg.Display.RowHeightPx)
	p("  one_bar           = %t\n", cfg.Display.OneBar)
	p("\n[events]\n")
	p("  files             = %s\n", strings.Join(cfg.Events.Files, ", "))
	p("  calendars         = %s\n", strings.Join(cfg.Events.Calendars, ", "))
	p("  default_category  = %s\n", cfg.Events.DefaultCategory)
	p("\n[log]\n")
	p("  level             = %s\n", cfg.Log.Level)
	p("  format            = %s\n", cfg.Log.Format)
}

// preferredList returns the enabled keys, sorted.
func preferredList(flags map[string]bool) string {
	var keys []string
	for k, on := range flags {
		if on {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return "(none)"
	}
	slices.Sort(keys)
	return strings.Join(keys, ", ")
}
