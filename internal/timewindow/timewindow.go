// Package timewindow provides wall-clock and day-relative minute arithmetic.
package timewindow

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// MinutesPerDay is 24 hours * 60 minutes.
	MinutesPerDay = 1440
	// MinutesPerRow is the height of one layout row in minutes.
	MinutesPerRow = 30
	// RowsPerDay is the number of layout rows in a day.
	RowsPerDay = MinutesPerDay / MinutesPerRow
)

// Validation errors.
var (
	ErrInvalidClock    = errors.New("time must be a wall-clock time like 23:00 or 11:00 PM")
	ErrMissingSchedule = errors.New("no sleep window configured")
)

// clockLayouts are tried in order by ParseClock.
var clockLayouts = []string{
	"15:04",
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
}

// ParseClock converts a wall-clock string to minutes since midnight.
// Accepts 24-hour ("07:00", "7:00") and 12-hour ("11:00 PM", "7:00am", "11PM") forms.
// "24:00" is accepted as end of day.
func ParseClock(s string) (int, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return 0, ErrInvalidClock
	}
	if v == "24:00" {
		return MinutesPerDay, nil
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("%w, got %q", ErrInvalidClock, s)
}

// FormatClock converts minutes since midnight to "HH:MM".
// Values are clamped to [00:00, 24:00].
func FormatClock(m int) string {
	if m < 0 {
		m = 0
	}
	if m > MinutesPerDay {
		m = MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// CrossingDuration returns the minutes from start to end, where an end
// earlier than start means the window continues past midnight.
// Equal values yield zero.
func CrossingDuration(start, end int) int {
	if end < start {
		return MinutesPerDay - start + end
	}
	return end - start
}

// MinutesSinceMidnight returns the wall-clock minutes of t on the viewed
// date's clock, in the viewed date's location. Instants on earlier days are
// negative and instants on later days exceed MinutesPerDay, one full day per
// calendar day of difference. Daylight-saving shifts do not move the result:
// 09:00 is always 540.
func MinutesSinceMidnight(t, viewedDate time.Time) int {
	lt := t.In(viewedDate.Location())
	days := calendarDays(viewedDate, lt)
	return days*MinutesPerDay + lt.Hour()*60 + lt.Minute()
}

// calendarDays returns the number of calendar days from a's date to b's date.
func calendarDays(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da) / (24 * time.Hour))
}

// ClipToDay returns the start and end of [start, end) in minutes since the
// viewed date's midnight, clipped to [0, MinutesPerDay].
func ClipToDay(start, end, viewedDate time.Time) (int, int) {
	s := clamp(MinutesSinceMidnight(start, viewedDate), 0, MinutesPerDay)
	e := clamp(MinutesSinceMidnight(end, viewedDate), 0, MinutesPerDay)
	return s, e
}

// At returns the instant whose wall clock on the viewed date reads minutes
// past midnight. MinutesPerDay is the next midnight.
func At(viewedDate time.Time, minutes int) time.Time {
	return time.Date(viewedDate.Year(), viewedDate.Month(), viewedDate.Day(), 0, minutes, 0, 0, viewedDate.Location())
}

// OverlapMinutes returns the overlap between [s1, e1) and [s2, e2), or 0.
func OverlapMinutes(s1, e1, s2, e2 int) int {
	start := max(s1, s2)
	end := min(e1, e2)
	if end <= start {
		return 0
	}
	return end - start
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
