// Package eventfile stores events in a local YAML file.
package eventfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/daybalance/internal/event"
)

// ErrInvalidTime is returned for an unparsable start or end value.
var ErrInvalidTime = errors.New("time must be RFC 3339, YYYY-MM-DD HH:MM or YYYY-MM-DD")

const dateLayout = "2006-01-02"

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// record is the on-disk shape of one event.
type record struct {
	ID          string `yaml:"id,omitempty"`
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Subcategory string `yaml:"subcategory,omitempty"`
	Start       string `yaml:"start"`
	End         string `yaml:"end,omitempty"`
	AllDay      bool   `yaml:"all_day,omitempty"`
	Priority    string `yaml:"priority,omitempty"`
	Completed   bool   `yaml:"completed,omitempty"`
}

// Store is an event.Source backed by a YAML file.
// A missing file reads as an empty list.
type Store struct {
	path string
	loc  *time.Location
}

// New returns a store for path. Times without an offset are read in loc.
func New(path string, loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{path: path, loc: loc}
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Load reads every event in the file.
func (s *Store) Load(ctx context.Context) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []event.Event{}, nil
		}
		return nil, fmt.Errorf("opening event file: %w", err)
	}
	defer func() { _ = f.Close() }()

	events, err := Decode(f, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return events, nil
}

// ListEvents returns the events intersecting [from, to), ordered by start.
func (s *Store) ListEvents(ctx context.Context, from, to time.Time) ([]event.Event, error) {
	all, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	var out []event.Event
	for _, e := range all {
		if event.Intersects(e, from, to) {
			out = append(out, e)
		}
	}
	event.SortByStart(out)
	return out, nil
}

// Save replaces the file contents with events.
func (s *Store) Save(ctx context.Context, events []event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating event directory: %w", err)
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating event file: %w", err)
	}
	if err := Encode(f, events); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing event file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing event file: %w", err)
	}
	return nil
}

// Update replaces the stored event with the same ID.
func (s *Store) Update(ctx context.Context, e event.Event) error {
	events, err := s.Load(ctx)
	if err != nil {
		return err
	}
	i := event.Find(events, e.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", event.ErrEventNotFound, e.ID)
	}
	events[i] = e
	return s.Save(ctx, events)
}

// Add appends events whose IDs are not stored yet and returns how many were added.
func (s *Store) Add(ctx context.Context, events ...event.Event) (int, error) {
	existing, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, e := range events {
		if e.ID == "" {
			e.ID = uuid.NewString()
		} else if event.Find(existing, e.ID) >= 0 {
			continue
		}
		existing = append(existing, e)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, s.Save(ctx, existing)
}

// Decode reads a YAML event list. Events without an id get a random UUID.
func Decode(r io.Reader, loc *time.Location) ([]event.Event, error) {
	var records []record
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return []event.Event{}, nil
		}
		return nil, fmt.Errorf("decoding events: %w", err)
	}

	events := make([]event.Event, 0, len(records))
	for i, rec := range records {
		e, err := rec.toEvent(loc)
		if err != nil {
			return nil, fmt.Errorf("event %d (%q): %w", i, rec.Title, err)
		}
		events = append(events, e)
	}
	return events, nil
}

// Encode writes events as a YAML list.
func Encode(w io.Writer, events []event.Event) error {
	records := make([]record, len(events))
	for i, e := range events {
		records[i] = fromEvent(e)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding events: %w", err)
	}
	return enc.Close()
}

func (r record) toEvent(loc *time.Location) (event.Event, error) {
	cat, err := event.ParseCategory(r.Category)
	if err != nil {
		return event.Event{}, err
	}
	prio, err := event.ParsePriority(r.Priority)
	if err != nil {
		return event.Event{}, err
	}

	e := event.Event{
		ID:          r.ID,
		Title:       r.Title,
		Category:    cat,
		Subcategory: r.Subcategory,
		IsAllDay:    r.AllDay,
		Priority:    prio,
		Completed:   r.Completed,
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	if r.AllDay {
		e.Start, err = parseDate(r.Start, loc)
		if err != nil {
			return event.Event{}, fmt.Errorf("start: %w", err)
		}
		e.End = e.Start.AddDate(0, 0, 1)
		if r.End != "" {
			end, err := parseDate(r.End, loc)
			if err != nil {
				return event.Event{}, fmt.Errorf("end: %w", err)
			}
			// The end date is inclusive in the file.
			e.End = end.AddDate(0, 0, 1)
		}
		return e, nil
	}

	if e.Start, err = parseTime(r.Start, loc); err != nil {
		return event.Event{}, fmt.Errorf("start: %w", err)
	}
	if e.End, err = parseTime(r.End, loc); err != nil {
		return event.Event{}, fmt.Errorf("end: %w", err)
	}
	return e, nil
}

func fromEvent(e event.Event) record {
	r := record{
		ID:          e.ID,
		Title:       e.Title,
		Category:    string(e.Category),
		Subcategory: e.Subcategory,
		AllDay:      e.IsAllDay,
		Completed:   e.Completed,
	}
	if e.Priority != event.PriorityMedium {
		r.Priority = e.Priority.String()
	}
	if e.IsAllDay {
		r.Start = e.Start.Format(dateLayout)
		if last := e.End.AddDate(0, 0, -1); last.After(e.Start) {
			r.End = last.Format(dateLayout)
		}
		return r
	}
	r.Start = e.Start.Format(time.RFC3339)
	r.End = e.End.Format(time.RFC3339)
	return r
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range timeLayouts[1:] {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w, got %q", ErrInvalidTime, s)
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w, got %q", ErrInvalidTime, s)
	}
	return t, nil
}
