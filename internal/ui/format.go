package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gosuri/uitable"

	"github.com/javiermolinar/daybalance/internal/balance"
	"github.com/javiermolinar/daybalance/internal/event"
	"github.com/javiermolinar/daybalance/internal/stats"
	"github.com/javiermolinar/daybalance/internal/timewindow"
)

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%s%dm", sign, mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%s%dh", sign, hours)
	}
	return fmt.Sprintf("%s%dh%dm", sign, hours, mins)
}

// BalanceBar draws work and life shares side by side, unallotted time as
// the remainder. Negative or oversized shares are clamped to the bar.
func BalanceBar(workPct, lifePct, width int) string {
	work := clampInt(workPct*width/100, 0, width)
	life := clampInt(lifePct*width/100, 0, width-work)
	rest := width - work - life

	return "[" + colorWork.Sprint(strings.Repeat("█", work)) +
		colorLife.Sprint(strings.Repeat("▓", life)) +
		strings.Repeat("░", rest) + "]"
}

// barWidth sizes the balance bar to the terminal.
func barWidth() int {
	return clampInt(termWidth()-40, 10, 40)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// truncate shortens s to width runes with an ellipsis.
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// clockRange formats an event's span clipped to the viewed day.
func clockRange(e event.Event, viewedDate time.Time) string {
	start, end := timewindow.ClipToDay(e.Start, e.End, viewedDate)
	return timewindow.FormatClock(start) + "-" + timewindow.FormatClock(end)
}

// printStatsLine prints the work/life/unallotted summary under the effective basis.
func printStatsLine(w io.Writer, st stats.Stats) {
	workStr := formatCategory(event.CategoryWork, fmt.Sprintf("Work: %s (%d%%)", FormatDuration(st.WorkMinutes), st.WorkPct()))
	lifeStr := formatCategory(event.CategoryLife, fmt.Sprintf("Life: %s (%d%%)", FormatDuration(st.LifeMinutes), st.LifePct()))
	restStr := formatMuted(fmt.Sprintf("Unallotted: %d%%", st.UnallottedPct()))
	_, _ = fmt.Fprintf(w, "%s | %s | %s %s\n", workStr, lifeStr, restStr, balance.DisplayText(st.Basis))
	_, _ = fmt.Fprintf(w, "Balance: %s\n", BalanceBar(st.WorkPct(), st.LifePct(), barWidth()))
}

// printStatsTable prints every basis, marking the effective one.
func printStatsTable(w io.Writer, st stats.Stats) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(formatHeader("Basis"), formatHeader("Minutes"), formatHeader("Work"), formatHeader("Life"), formatHeader("Unallotted"), "")
	for _, b := range []balance.Basis{balance.BasisWaking, balance.BasisFullDay, balance.BasisAllocated} {
		mark := ""
		if b == st.Basis {
			mark = "◀"
		}
		tbl.AddRow(string(b), FormatDuration(st.Denominators.For(b)),
			fmt.Sprintf("%d%%", st.Work.For(b)),
			fmt.Sprintf("%d%%", st.Life.For(b)),
			fmt.Sprintf("%d%%", st.Unallotted.For(b)),
			mark)
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(w, tbl)
}

// printIdeas prints a recommendation list for one category.
func printIdeas(w io.Writer, c event.Category, ideas []string) {
	if len(ideas) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "%s\n", formatCategory(c, c.Title()+" ideas"))
	for _, idea := range ideas {
		_, _ = fmt.Fprintf(w, "  • %s\n", formatIdea(idea))
	}
}
