package timewindow

import (
	"fmt"
	"strings"
	"time"
)

// SleepWindow is a recurring sleep period in local wall-clock time.
// End earlier than Start means the window crosses midnight.
type SleepWindow struct {
	Start string `toml:"start"`
	End   string `toml:"end"`
}

// Minutes returns the window bounds in minutes since midnight.
func (w SleepWindow) Minutes() (start, end int, err error) {
	start, err = ParseClock(w.Start)
	if err != nil {
		return 0, 0, fmt.Errorf("sleep start: %w", err)
	}
	end, err = ParseClock(w.End)
	if err != nil {
		return 0, 0, fmt.Errorf("sleep end: %w", err)
	}
	return start, end, nil
}

// Duration returns the sleep length in minutes, handling midnight crossing.
func (w SleepWindow) Duration() (int, error) {
	start, end, err := w.Minutes()
	if err != nil {
		return 0, err
	}
	return CrossingDuration(start, end), nil
}

// CrossesMidnight reports whether the window ends on the following day.
func (w SleepWindow) CrossesMidnight() bool {
	start, end, err := w.Minutes()
	return err == nil && end < start
}

// DaySchedule holds one sleep window per weekday.
type DaySchedule map[time.Weekday]SleepWindow

// MissingScheduleError reports that no sleep window exists for a weekday.
type MissingScheduleError struct {
	Weekday time.Weekday
}

func (e *MissingScheduleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingSchedule, strings.ToLower(e.Weekday.String()))
}

func (e *MissingScheduleError) Unwrap() error {
	return ErrMissingSchedule
}

// For returns the sleep window for the given weekday.
func (s DaySchedule) For(day time.Weekday) (SleepWindow, error) {
	w, ok := s[day]
	if !ok {
		return SleepWindow{}, &MissingScheduleError{Weekday: day}
	}
	return w, nil
}

// Uniform returns a schedule with the same window on every weekday.
func Uniform(start, end string) DaySchedule {
	s := make(DaySchedule, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		s[d] = SleepWindow{Start: start, End: end}
	}
	return s
}

// Validate checks that every configured window parses.
func (s DaySchedule) Validate() error {
	for d := time.Sunday; d <= time.Saturday; d++ {
		w, ok := s[d]
		if !ok {
			continue
		}
		if _, _, err := w.Minutes(); err != nil {
			return fmt.Errorf("%s: %w", strings.ToLower(d.String()), err)
		}
	}
	return nil
}
