// Package event defines the calendar event types read by the layout and accounting engines.
package event

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrMalformedEvent  = errors.New("event start must be before end")
	ErrInvalidCategory = errors.New("category must be 'work' or 'life'")
	ErrInvalidPriority = errors.New("priority must be 'low', 'medium' or 'high'")
	ErrEventNotFound   = errors.New("event not found")
)

// Category is the balance bucket an event counts towards.
type Category string

const (
	CategoryWork Category = "work"
	CategoryLife Category = "life"
)

// Opposite returns the other category.
func (c Category) Opposite() Category {
	if c == CategoryWork {
		return CategoryLife
	}
	return CategoryWork
}

// Title returns the capitalized category name for display.
func (c Category) Title() string {
	switch c {
	case CategoryWork:
		return "Work"
	case CategoryLife:
		return "Life"
	default:
		return string(c)
	}
}

// ParseCategory parses a case-insensitive category name.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "work":
		return CategoryWork, nil
	case "life":
		return CategoryLife, nil
	default:
		return "", ErrInvalidCategory
	}
}

// Priority is an ordered importance level.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// ParsePriority parses a case-insensitive priority name. Empty means medium.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, nil
	case "", "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return PriorityMedium, ErrInvalidPriority
	}
}

// Event is a scheduled item. The engines read events and never modify them.
type Event struct {
	ID          string
	Title       string
	Category    Category
	Subcategory string
	Start       time.Time
	End         time.Time
	IsAllDay    bool
	Priority    Priority
	Completed   bool
}

// MalformedEventError reports a timed event whose interval is empty or inverted.
type MalformedEventError struct {
	EventID string
	Start   time.Time
	End     time.Time
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("event %q: %s (start %s, end %s)",
		e.EventID, ErrMalformedEvent,
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

func (e *MalformedEventError) Unwrap() error {
	return ErrMalformedEvent
}

// Validate returns a *MalformedEventError for a timed event with start >= end.
// All-day events are always valid because their times are not laid out.
func (e Event) Validate() error {
	if e.IsAllDay {
		return nil
	}
	if !e.Start.Before(e.End) {
		return &MalformedEventError{EventID: e.ID, Start: e.Start, End: e.End}
	}
	return nil
}

// Duration returns end - start.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// DurationMinutes returns the duration in whole minutes.
func (e Event) DurationMinutes() int {
	return int(e.Duration() / time.Minute)
}

// ValidateAll checks every event and returns the first malformed one.
func ValidateAll(events []Event) error {
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the index of the event with the given ID, or -1.
func Find(events []Event, id string) int {
	for i := range events {
		if events[i].ID == id {
			return i
		}
	}
	return -1
}
