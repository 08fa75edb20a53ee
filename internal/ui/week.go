package ui

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybalance/internal/balance"
	"github.com/javiermolinar/daybalance/internal/event"
	"github.com/javiermolinar/daybalance/internal/summary"
)

func (a *App) weekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show the work/life balance of each day of the week",
		Long: `Display Monday through Sunday of the ISO week containing the viewed
date, with each day's work and life time and the week's totals.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := a.viewDate()
			if err != nil {
				return err
			}
			settings, err := a.config.Settings()
			if err != nil {
				return err
			}

			week, err := summary.BuildWeekSummary(cmd.Context(), a.eventSource(), date, settings)
			if err != nil {
				return fmt.Errorf("building week summary: %w", err)
			}

			w := a.out
			header := fmt.Sprintf("WEEK: %s - %s", week.Start.Format("Mon Jan 2"), week.End.Format("Mon Jan 2, 2006"))
			_, _ = fmt.Fprintf(w, "\n  %s\n", formatHeader(header))
			_, _ = fmt.Fprintln(w, strings.Repeat("─", 74))

			if week.EventCount == 0 {
				_, _ = fmt.Fprintln(w, "No events scheduled for this week.")
				return nil
			}

			width := barWidth() / 2
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(formatHeader("Day"), formatHeader("Events"),
				formatHeader("Work"), formatHeader("Life"), formatHeader("Balance"))
			for _, d := range week.Days {
				st := d.Stats
				tbl.AddRow(d.Date.Format("Mon Jan 2"),
					fmt.Sprintf("%d", st.EventCount),
					formatCategory(event.CategoryWork, fmt.Sprintf("%s %d%%", FormatDuration(st.WorkMinutes), st.WorkPct())),
					formatCategory(event.CategoryLife, fmt.Sprintf("%s %d%%", FormatDuration(st.LifeMinutes), st.LifePct())),
					BalanceBar(st.WorkPct(), st.LifePct(), width))
			}
			tbl.RightAlign(1)
			_, _ = fmt.Fprintln(w, tbl)

			_, _ = fmt.Fprintln(w, strings.Repeat("─", 74))
			_, _ = fmt.Fprintf(w, "  %s  |  %s  |  Sleep: %s\n",
				formatCategory(event.CategoryWork, fmt.Sprintf("Work: %s (%d%%)", FormatDuration(week.WorkMinutes), week.WorkPct())),
				formatCategory(event.CategoryLife, fmt.Sprintf("Life: %s (%d%%)", FormatDuration(week.LifeMinutes), week.LifePct())),
				formatSleep(FormatDuration(week.SleepMinutes)))
			goal := settings.Goal(event.CategoryWork)
			_, _ = fmt.Fprintf(w, "  %s\n", formatMuted(fmt.Sprintf("Goal: %d%% work %s", goal, balance.DisplayText(week.Basis))))
			_, _ = fmt.Fprintln(w)
			return nil
		},
	}
}
