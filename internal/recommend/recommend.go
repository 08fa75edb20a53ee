// Package recommend picks activity suggestions for the category that is
// falling behind the user's balance goal.
package recommend

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/daybalance/internal/balance"
	"github.com/javiermolinar/daybalance/internal/event"
	"github.com/javiermolinar/daybalance/internal/stats"
)

// Gap divisors per basis: one extra suggestion per this many percentage
// points the category trails the other one.
const (
	DivisorAllocated = 50
	DivisorWaking    = 15
	DivisorFullDay   = 22.5
)

// OneBarLimit caps the count when only a single sidebar is displayed.
const OneBarLimit = 2

// Source draws random integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Request is the input of one recommendation call.
type Request struct {
	Category event.Category
	Settings balance.Settings
	Stats    stats.Stats
	Catalog  Catalog
	// OneBarLayout caps the count for narrow single-sidebar displays.
	OneBarLayout bool
}

// Selector samples suggestions without replacement.
// A Selector built on a *rand.Rand must not be shared between goroutines.
type Selector struct {
	src Source
	// Log receives recoverable catalog gaps. Nil disables logging.
	Log *logrus.Entry
}

// NewSelector returns a selector drawing from src.
// A nil src uses the process-wide generator.
func NewSelector(src Source) *Selector {
	if src == nil {
		src = globalSource{}
	}
	return &Selector{src: src}
}

// NewSeededSelector returns a selector with a reproducible sequence.
func NewSeededSelector(seed uint64) *Selector {
	return NewSelector(rand.New(rand.NewPCG(seed, seed)))
}

// Divisor returns the gap divisor for a basis.
func Divisor(b balance.Basis) float64 {
	switch b {
	case balance.BasisAllocated:
		return DivisorAllocated
	case balance.BasisWaking:
		return DivisorWaking
	default:
		return DivisorFullDay
	}
}

// Count returns how many suggestions the request warrants.
//
// A category trailing the other gets 2 plus one per divisor points of gap.
// Being under its goal adds one more; otherwise the count is reset to zero.
func Count(req Request) int {
	basis := req.Settings.EffectiveBasis()
	target := req.Stats.Work.For(basis)
	other := req.Stats.Life.For(basis)
	if req.Category == event.CategoryLife {
		target, other = other, target
	}
	goal := req.Settings.Goal(req.Category)

	count := 0
	if target < other {
		count += 2
		count += int(math.Floor(float64(other-target) / Divisor(basis)))
	}
	if target < goal {
		count++
	} else {
		count = 0
	}
	if req.OneBarLayout && count > OneBarLimit {
		count = OneBarLimit
	}
	return count
}

// Pool returns every suggestion of every preferred activity, in catalog
// order. Repeated strings across activities are kept. Preferred keys that
// yield nothing are returned as *EmptyCatalogError values.
func Pool(req Request) ([]string, []error) {
	preferred := req.Settings.Preferred(req.Category)
	activities := req.Catalog.Activities(req.Category)

	size := 0
	for _, a := range activities {
		if preferred[a.Key] {
			size += len(a.Suggestions)
		}
	}

	pool := make([]string, 0, size)
	var gaps []error
	for _, a := range activities {
		if !preferred[a.Key] {
			continue
		}
		if len(a.Suggestions) == 0 {
			gaps = append(gaps, &EmptyCatalogError{Category: req.Category, Key: a.Key})
			continue
		}
		pool = append(pool, a.Suggestions...)
	}

	keys := make([]string, 0, len(preferred))
	for key, on := range preferred {
		if on {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	for _, key := range keys {
		if _, ok := req.Catalog.Lookup(req.Category, key); !ok {
			gaps = append(gaps, &EmptyCatalogError{Category: req.Category, Key: key})
		}
	}
	return pool, gaps
}

// Recommend returns up to Count(req) pool entries chosen uniformly at random
// without replacement, one draw per pick. Each pick removes every copy of the
// picked string, so no suggestion repeats within a call and the result length
// is min(Count(req), number of distinct strings in the pool). A string listed
// under several preferred activities is more likely to be drawn but still
// counts once. The result is empty when nothing is preferred.
func (s *Selector) Recommend(req Request) []string {
	count := Count(req)
	if count == 0 {
		return []string{}
	}

	pool, gaps := Pool(req)
	for _, err := range gaps {
		if s.Log != nil {
			s.Log.WithError(err).WithField("category", req.Category).Warn("preferred activity has no suggestions")
		}
	}

	result := make([]string, 0, min(count, len(pool)))
	for len(result) < count && len(pool) > 0 {
		picked := pool[s.src.IntN(len(pool))]
		result = append(result, picked)
		pool = slices.DeleteFunc(pool, func(v string) bool { return v == picked })
	}
	return result
}
