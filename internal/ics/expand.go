package ics

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/teambition/rrule-go"

	"github.com/javiermolinar/daybalance/internal/event"
)

// MaxOccurrences caps the instances produced for one recurring event per query.
const MaxOccurrences = 1000

const instanceLayout = "20060102T150405"

// Source is an event.Source backed by an .ics file.
type Source struct {
	path string
	opts Options
	// Log receives skipped VEVENTs and bad RRULEs. Nil disables logging.
	Log *logrus.Entry
}

// New returns a source reading path on every query.
func New(path string, opts Options) *Source {
	return &Source{path: path, opts: opts}
}

// ListEvents returns the events and recurrence instances intersecting [from, to).
func (s *Source) ListEvents(ctx context.Context, from, to time.Time) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening calendar: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, skipped, err := parse(f, s.opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	for _, err := range skipped {
		s.warn(err, "skipping calendar event")
	}

	events, errs := expand(entries, from, to)
	for _, err := range errs {
		s.warn(err, "skipping recurrence rule")
	}
	event.SortByStart(events)
	return events, nil
}

func (s *Source) warn(err error, msg string) {
	if s.Log != nil {
		s.Log.WithError(err).WithField("calendar", s.path).Warn(msg)
	}
}

// expand turns entries into concrete events within [from, to). Instances
// overridden by a RECURRENCE-ID entry are replaced by that entry.
func expand(entries []entry, from, to time.Time) ([]event.Event, []error) {
	overrides := make(map[string][]entry)
	var bases []entry
	for _, e := range entries {
		if e.RecurrenceID != nil {
			overrides[e.UID] = append(overrides[e.UID], e)
			continue
		}
		bases = append(bases, e)
	}

	var (
		out  []event.Event
		errs []error
	)
	for _, base := range bases {
		if base.RRule == "" {
			if ev := base.toEvent(base.UID, base.Start, base.End); event.Intersects(ev, from, to) {
				out = append(out, ev)
			}
			continue
		}

		starts, err := occurrences(base, from, to)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", base.UID, err))
			continue
		}
		dur := base.End.Sub(base.Start)
		for _, start := range starts {
			id := base.UID + "/" + start.Format(instanceLayout)
			inst, end := base, start.Add(dur)
			if o, ok := findOverride(overrides[base.UID], start); ok {
				inst, start, end = o, o.Start, o.End
			}
			if ev := inst.toEvent(id, start, end); event.Intersects(ev, from, to) {
				out = append(out, ev)
			}
		}
	}
	return out, errs
}

// occurrences returns the instance starts of a recurring entry that can
// overlap [from, to).
func occurrences(e entry, from, to time.Time) ([]time.Time, error) {
	r, err := rrule.StrToRRule(e.RRule)
	if err != nil {
		return nil, fmt.Errorf("parsing RRULE %q: %w", e.RRule, err)
	}
	r.DTStart(e.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range e.ExDates {
		set.ExDate(ex.In(e.Start.Location()))
	}

	// Instances starting before from can still run into the range.
	after := from.Add(-e.End.Sub(e.Start)).In(e.Start.Location())
	before := to.In(e.Start.Location())
	starts := set.Between(after, before, true)
	if len(starts) > MaxOccurrences {
		starts = starts[:MaxOccurrences]
	}
	return starts, nil
}

func findOverride(overrides []entry, start time.Time) (entry, bool) {
	for _, o := range overrides {
		if o.RecurrenceID.Equal(start) {
			return o, true
		}
	}
	return entry{}, false
}

func (e entry) toEvent(id string, start, end time.Time) event.Event {
	return event.Event{
		ID:          id,
		Title:       e.Title,
		Category:    e.Category,
		Subcategory: e.Subcategory,
		Start:       start,
		End:         end,
		IsAllDay:    e.AllDay,
		Priority:    e.Priority,
		Completed:   e.Completed,
	}
}
