// Package stats computes work/life time allocation for a single day.
package stats

import (
	"math"
	"time"

	"github.com/javiermolinar/daybalance/internal/balance"
	"github.com/javiermolinar/daybalance/internal/event"
	"github.com/javiermolinar/daybalance/internal/sleep"
	"github.com/javiermolinar/daybalance/internal/timewindow"
)

// Percentages holds one value per denominator.
type Percentages struct {
	Waking    int
	FullDay   int
	Allocated int
}

// For returns the value for the given basis.
func (p Percentages) For(b balance.Basis) int {
	switch b {
	case balance.BasisAllocated:
		return p.Allocated
	case balance.BasisFullDay:
		return p.FullDay
	default:
		return p.Waking
	}
}

// Denominators holds the three bases in minutes.
type Denominators struct {
	Waking    int
	FullDay   int
	Allocated int
}

// For returns the denominator for the given basis.
func (d Denominators) For(b balance.Basis) int {
	switch b {
	case balance.BasisAllocated:
		return d.Allocated
	case balance.BasisFullDay:
		return d.FullDay
	default:
		return d.Waking
	}
}

// Stats is the time accounting for one day.
type Stats struct {
	EventCount int
	WorkCount  int
	LifeCount  int

	WorkMinutes  int
	LifeMinutes  int
	SleepMinutes int
	// SleepDefaulted is true when the day had no usable sleep window and
	// SleepMinutes fell back to zero.
	SleepDefaulted bool

	Denominators Denominators
	Work         Percentages
	Life         Percentages
	// Unallotted is 100 - work - life per basis. It is not clamped and may be
	// negative when independent rounding pushes work + life above 100.
	Unallotted Percentages

	// Basis is the effective display basis of the settings used.
	Basis balance.Basis
}

// Compute aggregates the events into totals and percentages under every basis.
// All-day events are counted but contribute no minutes. A timed event with
// start >= end is rejected with *event.MalformedEventError.
func Compute(events []event.Event, s balance.Settings, viewedDate time.Time) (Stats, error) {
	st := Stats{
		EventCount: len(events),
		Basis:      s.EffectiveBasis(),
	}

	for _, e := range events {
		if err := e.Validate(); err != nil {
			return Stats{}, err
		}
		if e.IsAllDay {
			continue
		}
		switch e.Category {
		case event.CategoryWork:
			st.WorkCount++
			st.WorkMinutes += e.DurationMinutes()
		case event.CategoryLife:
			st.LifeCount++
			st.LifeMinutes += e.DurationMinutes()
		}
	}

	sleepMinutes, err := sleep.SleepMinutes(s.Sleep, viewedDate)
	if err != nil {
		st.SleepDefaulted = true
	}
	st.SleepMinutes = sleepMinutes

	st.Denominators = Denominators{
		FullDay:   timewindow.MinutesPerDay,
		Waking:    timewindow.MinutesPerDay - sleepMinutes,
		Allocated: st.WorkMinutes + st.LifeMinutes,
	}
	st.Work = percentages(st.WorkMinutes, st.Denominators)
	st.Life = percentages(st.LifeMinutes, st.Denominators)
	st.Unallotted = Percentages{
		Waking:    100 - st.Work.Waking - st.Life.Waking,
		FullDay:   100 - st.Work.FullDay - st.Life.FullDay,
		Allocated: 100 - st.Work.Allocated - st.Life.Allocated,
	}
	return st, nil
}

func percentages(minutes int, d Denominators) Percentages {
	return Percentages{
		Waking:    Percent(minutes, d.Waking),
		FullDay:   Percent(minutes, d.FullDay),
		Allocated: Percent(minutes, d.Allocated),
	}
}

// Percent returns round(100 * part / whole), or 0 when either is zero or the
// denominator is negative.
func Percent(part, whole int) int {
	if part == 0 || whole <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

// WorkPct returns the work percentage under the effective basis.
func (s Stats) WorkPct() int {
	return s.Work.For(s.Basis)
}

// LifePct returns the life percentage under the effective basis.
func (s Stats) LifePct() int {
	return s.Life.For(s.Basis)
}

// UnallottedPct returns the raw unallotted percentage under the effective basis.
func (s Stats) UnallottedPct() int {
	return s.Unallotted.For(s.Basis)
}

// Display returns the percentage of a category under the effective basis.
func (s Stats) Display(c event.Category) int {
	if c == event.CategoryWork {
		return s.WorkPct()
	}
	return s.LifePct()
}

// Minutes returns the scheduled minutes of a category.
func (s Stats) Minutes(c event.Category) int {
	if c == event.CategoryWork {
		return s.WorkMinutes
	}
	return s.LifeMinutes
}

// EventPercentage returns the unrounded share of one event's duration under
// the effective basis. All-day events and empty denominators yield 0.
func (s Stats) EventPercentage(e event.Event) float64 {
	whole := s.Denominators.For(s.Basis)
	if e.IsAllDay || whole <= 0 {
		return 0
	}
	return 100 * float64(e.DurationMinutes()) / float64(whole)
}
