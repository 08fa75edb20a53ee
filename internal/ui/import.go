package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybalance/internal/dateutil"
	"github.com/javiermolinar/daybalance/internal/ics"
)

func (a *App) importCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "import <calendar.ics>",
		Short: "Copy calendar events into the event file",
		Long: `Import the events of an iCalendar file into the first configured
event file, expanding recurring events from the start of the viewed
week. Events already imported are skipped. Imported events can then be
moved with 'daybalance move'.

Example:
  daybalance import ~/Downloads/work.ics --days 14`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return fmt.Errorf("--days must be positive, got %d", days)
			}
			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("calendar does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking calendar: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("calendar path is a directory: %s", sourcePath)
			}

			store, err := a.store()
			if err != nil {
				return err
			}
			date, err := a.viewDate()
			if err != nil {
				return err
			}
			from, _ := dateutil.WeekRange(date)
			to := from.AddDate(0, 0, days)

			src := ics.New(sourcePath, ics.Options{DefaultCategory: a.config.DefaultCategory(), Location: time.Local})
			src.Log = a.log
			events, err := src.ListEvents(cmd.Context(), from, to)
			if err != nil {
				return err
			}

			count, err := store.Add(cmd.Context(), events...)
			if err != nil {
				return fmt.Errorf("importing events: %w", err)
			}

			_, _ = fmt.Fprintf(a.out, "Imported %d of %d events from %s into %s\n", count, len(events), sourcePath, store.Path())
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days to import, starting on the viewed week's Monday")
	return cmd
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
