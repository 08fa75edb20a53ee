package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/javiermolinar/daybalance/internal/balance"
	"github.com/javiermolinar/daybalance/internal/dateutil"
	"github.com/javiermolinar/daybalance/internal/event"
	"github.com/javiermolinar/daybalance/internal/stats"
)

// DayStats is the accounting result of one day of a week.
type DayStats struct {
	Date   time.Time
	Events []event.Event
	Stats  stats.Stats
}

// WeekSummary holds per-day stats and totals for an ISO week.
type WeekSummary struct {
	Start time.Time
	End   time.Time
	Days  []DayStats

	EventCount   int
	WorkMinutes  int
	LifeMinutes  int
	SleepMinutes int
	Denominators stats.Denominators
	Work         stats.Percentages
	Life         stats.Percentages
	Basis        balance.Basis
}

// WorkPct returns the week's work percentage under the effective basis.
func (w *WeekSummary) WorkPct() int {
	return w.Work.For(w.Basis)
}

// LifePct returns the week's life percentage under the effective basis.
func (w *WeekSummary) LifePct() int {
	return w.Life.For(w.Basis)
}

// SummarizeWeek computes stats for each day of the week containing weekStart.
// Each event is counted on the day it starts.
func SummarizeWeek(weekStart time.Time, events []event.Event, settings balance.Settings) (*WeekSummary, error) {
	start, end := dateutil.WeekRange(weekStart)
	week := &WeekSummary{
		Start: start,
		End:   end,
		Days:  make([]DayStats, 0, 7),
		Basis: settings.EffectiveBasis(),
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		var dayEvents []event.Event
		for _, e := range events {
			if dateutil.TruncateToDay(e.Start.In(day.Location())).Equal(day) {
				dayEvents = append(dayEvents, e)
			}
		}

		st, err := stats.Compute(dayEvents, settings, day)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", day.Format("2006-01-02"), err)
		}
		week.Days = append(week.Days, DayStats{Date: day, Events: dayEvents, Stats: st})

		week.EventCount += st.EventCount
		week.WorkMinutes += st.WorkMinutes
		week.LifeMinutes += st.LifeMinutes
		week.SleepMinutes += st.SleepMinutes
		week.Denominators.Waking += st.Denominators.Waking
		week.Denominators.FullDay += st.Denominators.FullDay
		week.Denominators.Allocated += st.Denominators.Allocated
	}

	week.Work = percentagesOf(week.WorkMinutes, week.Denominators)
	week.Life = percentagesOf(week.LifeMinutes, week.Denominators)
	return week, nil
}

func percentagesOf(minutes int, d stats.Denominators) stats.Percentages {
	return stats.Percentages{
		Waking:    stats.Percent(minutes, d.Waking),
		FullDay:   stats.Percent(minutes, d.FullDay),
		Allocated: stats.Percent(minutes, d.Allocated),
	}
}

// BuildWeekSummary loads the events of the week containing weekStart and summarizes them.
func BuildWeekSummary(ctx context.Context, src event.Source, weekStart time.Time, settings balance.Settings) (*WeekSummary, error) {
	if weekStart.IsZero() {
		weekStart = time.Now()
	}

	start, end := dateutil.WeekRange(weekStart)
	events, err := src.ListEvents(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}

	return SummarizeWeek(start, events, settings)
}
