// Package ics reads events from iCalendar files and expands their recurrences.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/daybalance/internal/event"
)

// Parse errors.
var (
	ErrMissingUID   = errors.New("missing UID")
	ErrMissingStart = errors.New("missing DTSTART")
	ErrMissingEnd   = errors.New("timed event without DTEND")
)

// entry is one VEVENT before recurrence expansion.
type entry struct {
	UID         string
	Title       string
	Category    event.Category
	Subcategory string
	Priority    event.Priority
	Completed   bool

	Start  time.Time
	End    time.Time
	AllDay bool

	RRule        string
	ExDates      []time.Time
	RecurrenceID *time.Time
}

// Options controls how VEVENT properties map onto events.
type Options struct {
	// DefaultCategory applies when CATEGORIES names neither work nor life.
	DefaultCategory event.Category
	// Location is used for dates and floating times.
	Location *time.Location
}

func (o Options) loc() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// parse decodes every VEVENT. Events that cannot be read are returned as
// skipped errors rather than failing the whole calendar.
func parse(r io.Reader, opts Options) ([]entry, []error, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing calendar: %w", err)
	}

	var (
		entries []entry
		skipped []error
	)
	for _, ve := range cal.Events() {
		e, err := parseVEvent(ve, opts)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped, nil
}

func parseVEvent(ve *ical.VEvent, opts Options) (entry, error) {
	var out entry

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, ErrMissingUID
	}
	out.UID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Title = p.Value
	}
	out.Category, out.Subcategory = mapCategories(ve.GetProperty(ical.ComponentPropertyCategories), opts.DefaultCategory)
	out.Priority = mapPriority(ve.GetProperty(ical.ComponentPropertyPriority))
	if p := ve.GetProperty(ical.ComponentPropertyStatus); p != nil {
		out.Completed = strings.EqualFold(p.Value, "COMPLETED")
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return out, fmt.Errorf("%s: %w", out.UID, ErrMissingStart)
	}
	out.AllDay = isDate(dtStart)

	if out.AllDay {
		start, err := parseTime(dtStart.Value, opts.loc())
		if err != nil {
			return out, fmt.Errorf("%s: DTSTART: %w", out.UID, err)
		}
		out.Start = start
		out.End = start.AddDate(0, 0, 1)
		if p := ve.GetProperty(ical.ComponentPropertyDtEnd); p != nil {
			if end, err := parseTime(p.Value, opts.loc()); err == nil && end.After(start) {
				out.End = end
			}
		}
	} else {
		start, err := ve.GetStartAt()
		if err != nil {
			return out, fmt.Errorf("%s: DTSTART: %w", out.UID, err)
		}
		end, err := ve.GetEndAt()
		if err != nil {
			return out, fmt.Errorf("%s: %w", out.UID, ErrMissingEnd)
		}
		out.Start = start
		out.End = end
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RRule = p.Value
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseTime(part, opts.loc()); err == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}
	if p := ve.GetProperty("RECURRENCE-ID"); p != nil {
		if t, err := parseTime(p.Value, opts.loc()); err == nil {
			out.RecurrenceID = &t
		}
	}

	return out, nil
}

// isDate reports a DATE-valued property: VALUE=DATE or no time part.
func isDate(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// mapCategories picks work or life from CATEGORIES. The first other value
// becomes the subcategory.
func mapCategories(p *ical.IANAProperty, fallback event.Category) (event.Category, string) {
	cat := fallback
	if cat == "" {
		cat = event.CategoryLife
	}
	if p == nil {
		return cat, ""
	}

	found := false
	sub := ""
	for _, v := range strings.Split(p.Value, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if c, err := event.ParseCategory(v); err == nil {
			// Work wins when both are listed.
			if !found || c == event.CategoryWork {
				cat = c
			}
			found = true
			continue
		}
		if sub == "" {
			sub = strings.ToLower(v)
		}
	}
	return cat, sub
}

// mapPriority follows RFC 5545: 1-4 high, 5 medium, 6-9 low, 0 undefined.
func mapPriority(p *ical.IANAProperty) event.Priority {
	if p == nil {
		return event.PriorityMedium
	}
	n, err := strconv.Atoi(strings.TrimSpace(p.Value))
	switch {
	case err != nil || n <= 0 || n > 9:
		return event.PriorityMedium
	case n <= 4:
		return event.PriorityHigh
	case n == 5:
		return event.PriorityMedium
	default:
		return event.PriorityLow
	}
}

// parseTime reads a bare DATE or DATE-TIME value.
func parseTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}
