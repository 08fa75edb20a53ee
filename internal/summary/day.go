// Package summary runs the layout, shading, accounting and recommendation
// engines over one day or one week of events.
package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/daybalance/internal/balance"
	"github.com/javiermolinar/daybalance/internal/dateutil"
	"github.com/javiermolinar/daybalance/internal/event"
	"github.com/javiermolinar/daybalance/internal/layout"
	"github.com/javiermolinar/daybalance/internal/recommend"
	"github.com/javiermolinar/daybalance/internal/sleep"
	"github.com/javiermolinar/daybalance/internal/stats"
	"github.com/javiermolinar/daybalance/internal/timewindow"
)

// DaySummary holds everything displayed for one viewed date.
type DaySummary struct {
	Date    time.Time
	Events  []event.Event
	Stats   stats.Stats
	Layout  layout.Result
	Shading sleep.Shading

	WorkRecommendations []string
	LifeRecommendations []string
	// DisplayText describes the basis, e.g. "of your waking hours".
	DisplayText string
}

// Recommendations returns the suggestions for a category.
func (d *DaySummary) Recommendations(c event.Category) []string {
	if c == event.CategoryWork {
		return d.WorkRecommendations
	}
	return d.LifeRecommendations
}

// DayOptions configures SummarizeDay.
type DayOptions struct {
	Catalog recommend.Catalog
	// Selector draws recommendations. Nil uses an unseeded selector.
	Selector     *recommend.Selector
	Shading      sleep.Options
	OneBarLayout bool
	// Log receives recoverable defaults. Nil disables logging.
	Log *logrus.Entry
}

// SummarizeDay computes stats, layout, sleep shading and recommendations
// for the events of one viewed date. Malformed events fail the whole day.
func SummarizeDay(events []event.Event, settings balance.Settings, date time.Time, opts DayOptions) (*DaySummary, error) {
	date = dateutil.TruncateToDay(date)
	log := opts.Log
	if log != nil {
		log = log.WithField("date", date.Format("2006-01-02"))
	}

	st, err := stats.Compute(events, settings, date)
	if err != nil {
		return nil, fmt.Errorf("computing stats: %w", err)
	}

	res, err := layout.Layout(events, date)
	if err != nil {
		return nil, fmt.Errorf("computing layout: %w", err)
	}

	shading := sleep.ComputeShading(settings.Sleep, date, opts.Shading)
	if shading.Err != nil && log != nil {
		var missing *timewindow.MissingScheduleError
		if errors.As(shading.Err, &missing) {
			log.WithField("weekday", dateutil.WeekdayName(missing.Weekday)).Warn("no sleep window, sleep counted as zero")
		} else {
			log.WithError(shading.Err).Warn("sleep window not shaded")
		}
	}

	sel := recommend.NewSelector(nil)
	if opts.Selector != nil {
		// Copy so the day's log fields never leak into the caller's selector.
		cp := *opts.Selector
		sel = &cp
	}
	if sel.Log != nil {
		sel.Log = sel.Log.WithField("date", date.Format("2006-01-02"))
	} else {
		sel.Log = log
	}
	req := recommend.Request{
		Settings:     settings,
		Stats:        st,
		Catalog:      opts.Catalog,
		OneBarLayout: opts.OneBarLayout,
	}
	req.Category = event.CategoryWork
	work := sel.Recommend(req)
	req.Category = event.CategoryLife
	life := sel.Recommend(req)

	if log != nil {
		log.WithFields(logrus.Fields{
			"events":     st.EventCount,
			"work_pct":   st.WorkPct(),
			"life_pct":   st.LifePct(),
			"basis":      st.Basis,
			"columns":    res.MaxColumns(),
			"work_ideas": len(work),
			"life_ideas": len(life),
		}).Debug("day summarized")
	}

	return &DaySummary{
		Date:                date,
		Events:              events,
		Stats:               st,
		Layout:              res,
		Shading:             shading,
		WorkRecommendations: work,
		LifeRecommendations: life,
		DisplayText:         balance.DisplayText(st.Basis),
	}, nil
}

// BuildDaySummary loads the events of date from src and summarizes them.
func BuildDaySummary(ctx context.Context, src event.Source, settings balance.Settings, date time.Time, opts DayOptions) (*DaySummary, error) {
	start := dateutil.TruncateToDay(date)
	events, err := src.ListEvents(ctx, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}
	return SummarizeDay(events, settings, start, opts)
}
