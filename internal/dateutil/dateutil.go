// Package dateutil provides viewed-date parsing and calendar helpers.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat = errors.New("date must be YYYY-MM-DD, today, yesterday, tomorrow or a weekday name")
	ErrInvalidWeekday    = errors.New("invalid weekday name")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday parses a case-insensitive weekday name.
func ParseWeekday(name string) (time.Weekday, error) {
	d, ok := weekdayMap[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return time.Sunday, ErrInvalidWeekday
	}
	return d, nil
}

// WeekdayName returns the lowercase name of a weekday, as used in config files.
func WeekdayName(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	monday = t.AddDate(0, 0, -(weekday - 1))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// ParseViewDate parses the date a schedule is viewed for:
//   - Empty string or "today": relativeTo's date
//   - "yesterday", "tomorrow"
//   - Weekday names: "monday" through "sunday" (that day in relativeTo's ISO week)
//   - Prefixed: "next-monday" (next occurrence, always future), "last-friday" (always past)
//   - Absolute date: "2025-01-15" (YYYY-MM-DD), in relativeTo's location
//
// Unlike scheduling, past dates are valid: viewing history is allowed.
func ParseViewDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	if name, ok := strings.CutPrefix(input, "next-"); ok {
		if target, ok := weekdayMap[name]; ok {
			return nextWeekday(today, target), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}

	if name, ok := strings.CutPrefix(input, "last-"); ok {
		if target, ok := weekdayMap[name]; ok {
			return previousWeekday(today, target), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}

	if target, ok := weekdayMap[input]; ok {
		monday, _ := WeekRange(today)
		offset := int(target) - int(time.Monday)
		if target == time.Sunday {
			offset = 6
		}
		return monday.AddDate(0, 0, offset), nil
	}

	result, err := time.ParseInLocation("2006-01-02", input, relativeTo.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}

// previousWeekday returns the most recent occurrence of the weekday before today.
func previousWeekday(today time.Time, target time.Weekday) time.Time {
	daysSince := int(today.Weekday()) - int(target)
	if daysSince <= 0 {
		daysSince += 7
	}
	return today.AddDate(0, 0, -daysSince)
}
