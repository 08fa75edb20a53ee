package layout

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/javiermolinar/daybalance/internal/event"
	"github.com/javiermolinar/daybalance/internal/timewindow"
)

// ErrInvalidMove is returned when a drag or resize lands outside the grid.
var ErrInvalidMove = errors.New("move must stay within the day grid")

// Move is a drag or resize of one box.
type Move struct {
	EventID  string
	RowStart int
	RowSpan  int
	// Column is where the box was dropped. Packing decides the final column,
	// so it is only informational.
	Column int
}

// Validate checks that the move fits the 48-row grid.
func (m Move) Validate() error {
	if m.RowStart < 0 || m.RowStart >= timewindow.RowsPerDay {
		return fmt.Errorf("%w: row %d", ErrInvalidMove, m.RowStart)
	}
	if m.RowSpan < 1 || m.RowStart+m.RowSpan > timewindow.RowsPerDay {
		return fmt.Errorf("%w: span %d from row %d", ErrInvalidMove, m.RowSpan, m.RowStart)
	}
	return nil
}

// Window returns the new time range of the moved event.
func (m Move) Window(viewedDate time.Time) (start, end time.Time) {
	return Box{RowStart: m.RowStart, RowSpan: m.RowSpan}.Window(viewedDate)
}

// Commit applies a move and lays out the whole day again, since moving one
// event can change the packing of the others.
//
// The moved event's times become the wall-clock times of its first and
// past-the-end rows on the viewed date. An all-day event dropped onto the grid becomes timed.
// The input slice is not modified; the updated event is returned so the
// caller can persist it.
func Commit(events []event.Event, viewedDate time.Time, m Move) (Result, event.Event, error) {
	if err := m.Validate(); err != nil {
		return Result{}, event.Event{}, err
	}
	idx := event.Find(events, m.EventID)
	if idx == -1 {
		return Result{}, event.Event{}, fmt.Errorf("%w: %q", event.ErrEventNotFound, m.EventID)
	}

	updated := slices.Clone(events)
	moved := updated[idx]
	moved.Start, moved.End = m.Window(viewedDate)
	moved.IsAllDay = false
	updated[idx] = moved

	res, err := Layout(updated, viewedDate)
	if err != nil {
		return Result{}, event.Event{}, err
	}
	return res, moved, nil
}
