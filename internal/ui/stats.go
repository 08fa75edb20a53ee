package ui

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func (a *App) statsCmd() *cobra.Command {
	var perEvent bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show time accounting for the viewed day",
		Long: `Show scheduled work and life minutes and their percentages under
every basis: waking hours, the full day, and allocated time only.
The basis used for display is marked.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sum, err := a.daySummary(cmd, 0, false)
			if err != nil {
				return err
			}
			st := sum.Stats
			w := a.out

			_, _ = fmt.Fprintf(w, "=== %s ===\n\n", formatHeader(sum.Date.Format("Monday, January 2, 2006")))
			_, _ = fmt.Fprintf(w, "Events: %d (%d work, %d life)\n", st.EventCount, st.WorkCount, st.LifeCount)
			sleepStr := FormatDuration(st.SleepMinutes)
			if st.SleepDefaulted {
				sleepStr = formatWarn("none configured")
			}
			_, _ = fmt.Fprintf(w, "Sleep:  %s\n\n", sleepStr)

			printStatsTable(w, st)
			printStatsLine(w, st)

			if perEvent && len(sum.Layout.Boxes) > 0 {
				tbl := uitable.New()
				tbl.Separator = "  "
				for _, e := range sum.Events {
					if e.IsAllDay {
						continue
					}
					tbl.AddRow(formatCategory(e.Category, "["+e.Category.Title()+"]"), e.Title,
						FormatDuration(e.DurationMinutes()),
						fmt.Sprintf("%.1f%%", st.EventPercentage(e)))
				}
				tbl.RightAlign(3)
				_, _ = fmt.Fprintln(w)
				_, _ = fmt.Fprintln(w, tbl)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&perEvent, "events", "e", false, "Also show each event's share")
	return cmd
}
