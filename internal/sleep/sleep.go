// Package sleep turns a weekly sleep schedule into shaded background bands
// for a single displayed day.
package sleep

import (
	"time"

	"github.com/javiermolinar/daybalance/internal/timewindow"
)

// DefaultRowHeightPx is the pixel height of one 30-minute row: a 30px grid
// row plus its 10px vertical margin.
const DefaultRowHeightPx = 40

// Options configures pixel conversion.
type Options struct {
	RowHeightPx float64
}

// toPx converts minutes to pixels: minutes * (rowHeightPx / 30).
func (o Options) toPx(minutes int) float64 {
	h := o.RowHeightPx
	if h <= 0 {
		h = DefaultRowHeightPx
	}
	return float64(minutes) * h / timewindow.MinutesPerRow
}

// Band is one shaded region of the displayed day.
type Band struct {
	StartMinute int
	EndMinute   int
	OffsetPx    float64
	HeightPx    float64
}

// Shading describes the sleep background of one displayed day.
type Shading struct {
	// BandHeights are consecutive top-to-bottom segments of the day column:
	// unshaded lead, shaded, unshaded gap, shaded. The rest of the day is unshaded.
	BandHeights     [4]float64
	CrossesMidnight bool
	SleepMinutes    int
	// Bands lists only the shaded regions, top to bottom.
	Bands []Band
	// Err is set when the schedule had no usable window for the day. It is
	// recoverable: the day is simply drawn without shading.
	Err error
}

// SleepMinutes returns the sleep duration for the viewed date's weekday.
// A missing or unparsable window yields zero along with the cause.
func SleepMinutes(schedule timewindow.DaySchedule, viewedDate time.Time) (int, error) {
	w, err := schedule.For(viewedDate.Weekday())
	if err != nil {
		return 0, err
	}
	d, err := w.Duration()
	if err != nil {
		return 0, err
	}
	return d, nil
}

// ComputeShading derives the shaded sleep bands for the viewed date.
//
// A window whose end is earlier than its start crosses midnight: the day is
// shaded from 00:00 to end (the night before bleeding in) and from start to
// 24:00 (tonight bleeding into tomorrow). Equal start and end mean no sleep.
func ComputeShading(schedule timewindow.DaySchedule, viewedDate time.Time, opts Options) Shading {
	var out Shading

	w, err := schedule.For(viewedDate.Weekday())
	if err != nil {
		out.Err = err
		return out
	}
	start, end, err := w.Minutes()
	if err != nil {
		out.Err = err
		return out
	}

	out.SleepMinutes = timewindow.CrossingDuration(start, end)
	if out.SleepMinutes == 0 {
		return out
	}

	px := opts.toPx
	band := func(from, to int) Band {
		return Band{
			StartMinute: from,
			EndMinute:   to,
			OffsetPx:    px(from),
			HeightPx:    px(to - from),
		}
	}

	if end < start {
		out.CrossesMidnight = true
		out.BandHeights = [4]float64{
			0,
			px(end),
			px(start - end),
			px(timewindow.MinutesPerDay - start),
		}
		out.Bands = make([]Band, 0, 2)
		if end > 0 {
			out.Bands = append(out.Bands, band(0, end))
		}
		out.Bands = append(out.Bands, band(start, timewindow.MinutesPerDay))
		return out
	}

	out.BandHeights = [4]float64{px(start), px(end - start), 0, 0}
	out.Bands = []Band{band(start, end)}
	return out
}

// TotalShadedPx returns the summed height of all shaded bands.
func (s Shading) TotalShadedPx() float64 {
	return s.BandHeights[1] + s.BandHeights[3]
}
