package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybalance/internal/event"
	"github.com/javiermolinar/daybalance/internal/sleep"
	"github.com/javiermolinar/daybalance/internal/summary"
	"github.com/javiermolinar/daybalance/internal/timewindow"
)

func (a *App) dayCmd() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show the viewed day's events, balance and suggestions",
		Long: `Display the events of the viewed day in layout order, the sleep
window, the work/life split and activity suggestions for whichever side
is falling behind your goal.

Example:
  daybalance day --date tomorrow`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDay(cmd, seed)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for reproducible suggestions (0 = random)")
	return cmd
}

func (a *App) runDay(cmd *cobra.Command, seed uint64) error {
	sum, err := a.daySummary(cmd, seed, false)
	if err != nil {
		return err
	}

	w := a.out
	_, _ = fmt.Fprintf(w, "=== %s ===\n\n", formatHeader(sum.Date.Format("Monday, January 2, 2006")))

	if len(sum.Events) == 0 {
		_, _ = fmt.Fprintln(w, "No events scheduled for this day.")
	} else {
		printEvents(w, sum)
	}

	_, _ = fmt.Fprintln(w)
	printSleep(w, a.sleepLabel(sum), sum.Shading)
	printStatsLine(w, sum.Stats)

	if len(sum.WorkRecommendations)+len(sum.LifeRecommendations) > 0 {
		_, _ = fmt.Fprintln(w)
		printIdeas(w, event.CategoryWork, sum.WorkRecommendations)
		printIdeas(w, event.CategoryLife, sum.LifeRecommendations)
	}
	return nil
}

// printEvents prints all-day events, then timed events in layout order.
func printEvents(w io.Writer, sum *summary.DaySummary) {
	byID := make(map[string]event.Event, len(sum.Events))
	for _, e := range sum.Events {
		byID[e.ID] = e
	}
	titleWidth := max(termWidth()-50, 20)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range sum.Layout.AllDay {
		tbl.AddRow(formatMuted("all day"), "", formatCategory(e.Category, "["+e.Category.Title()+"]"), truncate(e.Title, titleWidth), "", "")
	}
	for _, b := range sum.Layout.Boxes {
		e := byID[b.EventID]
		col := ""
		if b.ColumnCount > 1 {
			col = formatMuted(fmt.Sprintf("%d/%d", b.Column+1, b.ColumnCount))
		}
		title := truncate(e.Title, titleWidth)
		if e.Completed {
			title = formatMuted("✓ " + title)
		}
		tbl.AddRow(clockRange(e, sum.Date), col,
			formatCategory(e.Category, "["+e.Category.Title()+"]"),
			title,
			FormatDuration(e.DurationMinutes()),
			formatMuted(fmt.Sprintf("%.1f%%", sum.Stats.EventPercentage(e))))
	}
	_, _ = fmt.Fprintln(w, tbl)
}

// sleepLabel describes the configured window for the viewed weekday.
func (a *App) sleepLabel(sum *summary.DaySummary) string {
	settings, err := a.config.Settings()
	if err != nil {
		return ""
	}
	win, err := settings.Sleep.For(sum.Date.Weekday())
	if err != nil {
		return ""
	}
	return win.Start + "-" + win.End
}

func printSleep(w io.Writer, label string, sh sleep.Shading) {
	if sh.Err != nil || label == "" {
		_, _ = fmt.Fprintf(w, "Sleep: %s\n", formatWarn("no sleep window for this day"))
		return
	}
	_, _ = fmt.Fprintf(w, "Sleep: %s\n", formatSleep(fmt.Sprintf("%s (%s)", label, FormatDuration(sh.SleepMinutes))))
}

func (a *App) shadingOptions() sleep.Options {
	return sleep.Options{RowHeightPx: a.config.Display.RowHeightPx}
}

func (a *App) layoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the grid geometry of the viewed day",
		Long: `Print where each timed event sits on the 48-row day grid: its rows,
its column among overlapping events, and its pixel offset and height.
The sleep bands are printed with the same row height.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sum, err := a.daySummary(cmd, 0, false)
			if err != nil {
				return err
			}
			printLayout(a.out, sum, a.config.Display.RowHeightPx)
			return nil
		},
	}
}

func printLayout(w io.Writer, sum *summary.DaySummary, rowHeight float64) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(formatHeader("Event"), formatHeader("Rows"), formatHeader("Column"), formatHeader("Top"), formatHeader("Height"))
	for _, b := range sum.Layout.Boxes {
		tbl.AddRow(b.EventID,
			fmt.Sprintf("%d-%d", b.RowStart, b.RowEnd()),
			fmt.Sprintf("%d/%d", b.Column, b.ColumnCount),
			fmt.Sprintf("%.0fpx", b.TopPx(rowHeight)),
			fmt.Sprintf("%.0fpx", b.HeightPx(rowHeight)))
	}
	for _, e := range sum.Layout.AllDay {
		tbl.AddRow(e.ID, formatMuted("all day"), "", "", "")
	}
	_, _ = fmt.Fprintln(w, tbl)

	heights := make([]string, len(sum.Shading.BandHeights))
	for i, h := range sum.Shading.BandHeights {
		heights[i] = fmt.Sprintf("%.0f", h)
	}
	_, _ = fmt.Fprintf(w, "\nSleep bands (px): %s\n", strings.Join(heights, " / "))
	for _, band := range sum.Shading.Bands {
		_, _ = fmt.Fprintf(w, "  %s-%s  top %.0fpx  height %.0fpx\n",
			timewindow.FormatClock(band.StartMinute), timewindow.FormatClock(band.EndMinute),
			band.OffsetPx, band.HeightPx)
	}
	_, _ = fmt.Fprintf(w, "Columns: %d  Rows: %d\n", sum.Layout.MaxColumns(), timewindow.RowsPerDay)
}
