package ui

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybalance/internal/event"
	"github.com/javiermolinar/daybalance/internal/layout"
	"github.com/javiermolinar/daybalance/internal/timewindow"
)

// ErrReadOnlyEvent is returned when moving an event that does not live in
// the writable event file.
var ErrReadOnlyEvent = errors.New("event is not stored in the event file")

func (a *App) moveCmd() *cobra.Command {
	var (
		span   int
		column int
	)

	cmd := &cobra.Command{
		Use:   "move <event-id> <start> [end]",
		Short: "Move or resize an event on the viewed day's grid",
		Long: `Move an event to a new start time on the viewed day, snapping to the
30-minute grid. Give an end time or --span to resize it; otherwise it
keeps its current number of rows. An all-day event moved onto the grid
becomes a timed event. The whole day is laid out again and saved.

Example:
  daybalance move standup 10:30
  daybalance move gym 18:00 19:30 --date tomorrow`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			date, err := a.viewDate()
			if err != nil {
				return err
			}
			store, err := a.store()
			if err != nil {
				return err
			}

			events, err := a.eventSource().ListEvents(ctx, date, date.AddDate(0, 0, 1))
			if err != nil {
				return fmt.Errorf("fetching events: %w", err)
			}
			current, err := layout.Layout(events, date)
			if err != nil {
				return err
			}

			startMin, err := timewindow.ParseClock(args[1])
			if err != nil {
				return fmt.Errorf("start: %w", err)
			}
			m := layout.Move{
				EventID:  args[0],
				RowStart: startMin / timewindow.MinutesPerRow,
				RowSpan:  span,
				Column:   column,
			}
			switch {
			case len(args) == 3:
				endMin, err := timewindow.ParseClock(args[2])
				if err != nil {
					return fmt.Errorf("end: %w", err)
				}
				m.RowSpan = (endMin - m.RowStart*timewindow.MinutesPerRow + timewindow.MinutesPerRow - 1) / timewindow.MinutesPerRow
			case m.RowSpan == 0:
				m.RowSpan = 1
				if b, ok := current.Box(m.EventID); ok {
					m.RowSpan = b.RowSpan
				}
			}

			res, moved, err := layout.Commit(events, date, m)
			if err != nil {
				return err
			}

			if err := store.Update(ctx, moved); err != nil {
				if errors.Is(err, event.ErrEventNotFound) {
					return fmt.Errorf("%w: %s", ErrReadOnlyEvent, moved.ID)
				}
				return fmt.Errorf("saving event: %w", err)
			}
			a.log.WithField("event", moved.ID).WithField("rows", fmt.Sprintf("%d+%d", m.RowStart, m.RowSpan)).Debug("event moved")

			box, _ := res.Box(moved.ID)
			_, _ = fmt.Fprintf(a.out, "Moved %s to %s-%s (column %d of %d)\n",
				formatCategory(moved.Category, moved.Title),
				moved.Start.Format("15:04"), moved.End.Format("15:04"),
				box.Column+1, box.ColumnCount)
			if n := countColumns(res); n > 1 {
				_, _ = fmt.Fprintf(a.out, "%s\n", formatMuted(fmt.Sprintf("%d events now share rows with another event", n)))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&span, "span", 0, "Number of 30-minute rows (default: keep current)")
	cmd.Flags().IntVar(&column, "column", 0, "Column the event was dropped in (packing decides the final one)")
	return cmd
}

// countColumns counts boxes laid out next to another box.
func countColumns(res layout.Result) int {
	n := 0
	for _, b := range res.Boxes {
		if b.ColumnCount > 1 {
			n++
		}
	}
	return n
}
