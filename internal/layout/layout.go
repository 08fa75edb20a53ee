// Package layout converts a day's events into non-overlapping grid geometry.
//
// The grid has 48 rows of 30 minutes. Overlapping events are packed into
// side-by-side columns with a greedy first-fit pass over a fixed ordering,
// so identical input always yields identical boxes.
package layout

import (
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/daybalance/internal/event"
	"github.com/javiermolinar/daybalance/internal/timewindow"
)

// Box is the grid geometry of one timed event.
type Box struct {
	EventID     string
	Column      int
	ColumnCount int
	RowStart    int
	RowSpan     int
}

// RowEnd returns the first row after the box.
func (b Box) RowEnd() int {
	return b.RowStart + b.RowSpan
}

// Overlaps reports whether two boxes share a row.
func (b Box) Overlaps(other Box) bool {
	return b.RowStart < other.RowEnd() && other.RowStart < b.RowEnd()
}

// TopPx returns the vertical offset of the box for the given row height.
func (b Box) TopPx(rowHeightPx float64) float64 {
	return float64(b.RowStart) * rowHeightPx
}

// HeightPx returns the height of the box for the given row height.
func (b Box) HeightPx(rowHeightPx float64) float64 {
	return float64(b.RowSpan) * rowHeightPx
}

// Window returns the time range the box covers on the viewed date.
func (b Box) Window(viewedDate time.Time) (start, end time.Time) {
	start = timewindow.At(viewedDate, b.RowStart*timewindow.MinutesPerRow)
	end = timewindow.At(viewedDate, b.RowEnd()*timewindow.MinutesPerRow)
	return start, end
}

// Result is the layout of one day.
type Result struct {
	// Boxes are in placement order: row start, longer first, then event ID.
	Boxes []Box
	// AllDay holds all-day events, unpositioned, in input order.
	AllDay []event.Event
}

// Box returns the box for an event ID.
func (r Result) Box(id string) (Box, bool) {
	for _, b := range r.Boxes {
		if b.EventID == id {
			return b, true
		}
	}
	return Box{}, false
}

// MaxColumns returns the widest column count in the layout.
func (r Result) MaxColumns() int {
	n := 0
	for _, b := range r.Boxes {
		n = max(n, b.ColumnCount)
	}
	return n
}

// item is a timed event reduced to what packing needs.
type item struct {
	id       string
	rowStart int
	rowSpan  int
	minutes  int
}

// Layout positions the timed events of the viewed date on the grid.
//
// Events partly outside the viewed day are clipped to it rather than
// dropped. A timed event with start >= end fails with
// *event.MalformedEventError; it is never coerced.
func Layout(events []event.Event, viewedDate time.Time) (Result, error) {
	var res Result
	items := make([]item, 0, len(events))

	for _, e := range events {
		if e.IsAllDay {
			res.AllDay = append(res.AllDay, e)
			continue
		}
		if err := e.Validate(); err != nil {
			return Result{}, err
		}
		items = append(items, toItem(e, viewedDate))
	}

	res.Boxes = pack(items)
	return res, nil
}

// toItem computes the row range of a timed event on the viewed date.
func toItem(e event.Event, viewedDate time.Time) item {
	start, end := timewindow.ClipToDay(e.Start, e.End, viewedDate)
	minutes := end - start

	rowStart := start / timewindow.MinutesPerRow
	rowSpan := max(1, (minutes+timewindow.MinutesPerRow-1)/timewindow.MinutesPerRow)

	// Keep at least one row visible for events clipped to the day's edges.
	rowStart = min(rowStart, timewindow.RowsPerDay-1)
	rowSpan = min(rowSpan, timewindow.RowsPerDay-rowStart)

	return item{id: e.ID, rowStart: rowStart, rowSpan: rowSpan, minutes: minutes}
}

// pack assigns columns. Items are placed by row start, longer first, then ID;
// each takes the lowest column whose occupant has ended.
func pack(items []item) []Box {
	slices.SortFunc(items, func(a, b item) int {
		if a.rowStart != b.rowStart {
			return a.rowStart - b.rowStart
		}
		if a.minutes != b.minutes {
			return b.minutes - a.minutes
		}
		return strings.Compare(a.id, b.id)
	})

	boxes := make([]Box, len(items))
	// columnEnds[c] is the end row of the last box placed in column c.
	columnEnds := make([]int, 0, len(items))
	// rowWidth[r] is the number of columns in use at row r.
	var rowWidth [timewindow.RowsPerDay]int

	for i, it := range items {
		col := -1
		for c, end := range columnEnds {
			if end <= it.rowStart {
				col = c
				break
			}
		}
		if col == -1 {
			col = len(columnEnds)
			columnEnds = append(columnEnds, 0)
		}
		columnEnds[col] = it.rowStart + it.rowSpan

		boxes[i] = Box{
			EventID:  it.id,
			Column:   col,
			RowStart: it.rowStart,
			RowSpan:  it.rowSpan,
		}
		for r := it.rowStart; r < it.rowStart+it.rowSpan; r++ {
			rowWidth[r] = max(rowWidth[r], col+1)
		}
	}

	for i := range boxes {
		b := &boxes[i]
		for r := b.RowStart; r < b.RowEnd(); r++ {
			b.ColumnCount = max(b.ColumnCount, rowWidth[r])
		}
	}
	return boxes
}
