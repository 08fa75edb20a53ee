package event

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// Source is an external event store that can be queried by time range.
type Source interface {
	// ListEvents returns events intersecting [from, to).
	// All-day events are included when their day falls in the range.
	ListEvents(ctx context.Context, from, to time.Time) ([]Event, error)
}

// MultiSource merges several sources in order.
type MultiSource []Source

// ListEvents queries every source and concatenates the results.
func (m MultiSource) ListEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	var all []Event
	for i, src := range m {
		events, err := src.ListEvents(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		all = append(all, events...)
	}
	return all, nil
}

// Intersects reports whether the event touches [from, to).
// All-day events intersect when their start day lies within the range.
func Intersects(e Event, from, to time.Time) bool {
	if e.IsAllDay {
		return !e.Start.Before(from) && e.Start.Before(to) ||
			e.Start.Before(from) && e.End.After(from)
	}
	return e.Start.Before(to) && e.End.After(from)
}

// SortByStart orders events by start time, then by ID.
func SortByStart(events []Event) {
	slices.SortStableFunc(events, func(a, b Event) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}
