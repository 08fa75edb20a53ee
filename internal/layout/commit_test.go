package layout

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/javiermolinar/daybalance/internal/event"
)

func TestCommit_RepacksWholeDay(t *testing.T) {
	events := []event.Event{
		timed("a", 9, 0, 10, 0),
		timed("b", 11, 0, 12, 0),
	}

	// Drag b onto a's rows: both must now sit side by side.
	res, moved, err := Commit(events, day, Move{EventID: "b", RowStart: 18, RowSpan: 2, Column: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !moved.Start.Equal(at(9, 0)) || !moved.End.Equal(at(10, 0)) {
		t.Errorf("moved window = %v-%v, want 09:00-10:00", moved.Start, moved.End)
	}

	a, _ := res.Box("a")
	b, _ := res.Box("b")
	if a.ColumnCount != 2 || b.ColumnCount != 2 {
		t.Errorf("column counts = %d/%d, want 2/2", a.ColumnCount, b.ColumnCount)
	}
	if a.Column == b.Column {
		t.Errorf("a and b share column %d", a.Column)
	}

	// The caller's events are untouched.
	if !events[1].Start.Equal(at(11, 0)) {
		t.Error("Commit() modified its input")
	}
}

func TestCommit_Resize(t *testing.T) {
	events := []event.Event{timed("a", 9, 0, 10, 0)}

	res, moved, err := Commit(events, day, Move{EventID: "a", RowStart: 18, RowSpan: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !moved.End.Equal(at(11, 30)) {
		t.Errorf("End = %v, want 11:30", moved.End)
	}
	if b, _ := res.Box("a"); b.RowSpan != 5 {
		t.Errorf("RowSpan = %d, want 5", b.RowSpan)
	}
}

func TestCommit_DaylightSavingDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("loading location: %v", err)
	}
	spring := time.Date(2025, 3, 9, 0, 0, 0, 0, ny)
	events := []event.Event{{
		ID:       "a",
		Category: event.CategoryWork,
		Start:    time.Date(2025, 3, 9, 14, 0, 0, 0, ny),
		End:      time.Date(2025, 3, 9, 15, 0, 0, 0, ny),
	}}

	res, moved, err := Commit(events, spring, Move{EventID: "a", RowStart: 18, RowSpan: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := moved.Start.In(ny).Format("15:04") + "-" + moved.End.In(ny).Format("15:04"); got != "09:00-10:00" {
		t.Errorf("moved window = %s, want 09:00-10:00", got)
	}
	if b, _ := res.Box("a"); b.RowStart != 18 || b.RowSpan != 2 {
		t.Errorf("box = %+v, want rows 18+2", b)
	}
	if moved.DurationMinutes() != 60 {
		t.Errorf("duration = %d, want 60", moved.DurationMinutes())
	}
}

func TestCommit_MovingApartNarrowsOthers(t *testing.T) {
	events := []event.Event{
		timed("a", 9, 0, 10, 0),
		timed("b", 9, 0, 10, 0),
	}
	res, _, err := Commit(events, day, Move{EventID: "b", RowStart: 30, RowSpan: 2, Column: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, b := range res.Boxes {
		if b.Column != 0 || b.ColumnCount != 1 {
			t.Errorf("%s: column %d/%d, want 0/1", b.EventID, b.Column, b.ColumnCount)
		}
	}
}

func TestCommit_AllDayDroppedOnGrid(t *testing.T) {
	events := []event.Event{
		{ID: "h", Start: day, End: day.AddDate(0, 0, 1), IsAllDay: true},
	}
	res, moved, err := Commit(events, day, Move{EventID: "h", RowStart: 20, RowSpan: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if moved.IsAllDay {
		t.Error("dropped event should no longer be all-day")
	}
	if len(res.AllDay) != 0 || len(res.Boxes) != 1 {
		t.Errorf("expected one box and no all-day events, got %+v", res)
	}
	if !events[0].IsAllDay {
		t.Error("Commit() modified its input")
	}
}

func TestCommit_Errors(t *testing.T) {
	events := []event.Event{timed("a", 9, 0, 10, 0)}

	tests := []struct {
		name    string
		move    Move
		wantErr error
	}{
		{name: "unknown event", move: Move{EventID: "zzz", RowStart: 1, RowSpan: 1}, wantErr: event.ErrEventNotFound},
		{name: "negative row", move: Move{EventID: "a", RowStart: -1, RowSpan: 1}, wantErr: ErrInvalidMove},
		{name: "row past grid", move: Move{EventID: "a", RowStart: 48, RowSpan: 1}, wantErr: ErrInvalidMove},
		{name: "zero span", move: Move{EventID: "a", RowStart: 10, RowSpan: 0}, wantErr: ErrInvalidMove},
		{name: "span past midnight", move: Move{EventID: "a", RowStart: 47, RowSpan: 2}, wantErr: ErrInvalidMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Commit(events, day, tt.move)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Commit() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCommit_MalformedOtherEvent(t *testing.T) {
	events := []event.Event{
		timed("a", 9, 0, 10, 0),
		timed("bad", 12, 0, 11, 0),
	}
	_, _, err := Commit(events, day, Move{EventID: "a", RowStart: 2, RowSpan: 1})
	if !errors.Is(err, event.ErrMalformedEvent) {
		t.Errorf("expected ErrMalformedEvent, got %v", err)
	}
}
