// Package balance holds the user's work/life balance settings.
package balance

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/daybalance/internal/event"
	"github.com/javiermolinar/daybalance/internal/timewindow"
)

// Validation errors.
var (
	ErrInvalidGoal  = errors.New("balance goal must be between 0 and 100")
	ErrInvalidBasis = errors.New("percentage basis must be 'waking' or 'fullDay'")
)

// Basis selects the denominator used for displayed percentages.
type Basis string

const (
	// BasisWaking divides by 24h minus the day's sleep.
	BasisWaking Basis = "waking"
	// BasisFullDay divides by 1440 minutes.
	BasisFullDay Basis = "fullDay"
	// BasisAllocated divides by the scheduled minutes only.
	// It is never configured directly; it is selected by IgnoreUnallotted.
	BasisAllocated Basis = "allocated"
)

// ParseBasis parses a configured basis. Accepts "fullDay", "full_day" and "full-day".
func ParseBasis(s string) (Basis, error) {
	switch s {
	case "waking":
		return BasisWaking, nil
	case "fullDay", "full_day", "full-day", "fullday":
		return BasisFullDay, nil
	default:
		return "", fmt.Errorf("%w, got %q", ErrInvalidBasis, s)
	}
}

// DefaultGoal is the default share of waking time targeted for work.
const DefaultGoal = 50

// Settings is the user-level configuration read by the engines.
type Settings struct {
	// BalanceGoal is the target percentage (0-100) of waking time for work.
	BalanceGoal int
	// PercentageBasis is the configured display basis: waking or fullDay.
	PercentageBasis Basis
	// IgnoreUnallotted computes percentages over scheduled time only.
	IgnoreUnallotted bool
	// WorkPreferredActivities maps activity keys to a "preferred" flag.
	WorkPreferredActivities map[string]bool
	// LifePreferredActivities maps activity keys to a "preferred" flag.
	LifePreferredActivities map[string]bool
	// Sleep holds the recurring weekly sleep windows.
	Sleep timewindow.DaySchedule
}

// Default returns settings with every field at its documented default:
// goal 50, waking basis, unallotted time counted, no preferred activities,
// and 23:00-07:00 sleep on every weekday.
func Default() Settings {
	return Settings{
		BalanceGoal:             DefaultGoal,
		PercentageBasis:         BasisWaking,
		WorkPreferredActivities: map[string]bool{},
		LifePreferredActivities: map[string]bool{},
		Sleep:                   timewindow.Uniform("23:00", "07:00"),
	}
}

// Validate checks the settings once at the boundary.
func (s Settings) Validate() error {
	if s.BalanceGoal < 0 || s.BalanceGoal > 100 {
		return fmt.Errorf("%w, got %d", ErrInvalidGoal, s.BalanceGoal)
	}
	if s.PercentageBasis != BasisWaking && s.PercentageBasis != BasisFullDay {
		return fmt.Errorf("%w, got %q", ErrInvalidBasis, s.PercentageBasis)
	}
	if err := s.Sleep.Validate(); err != nil {
		return fmt.Errorf("sleep: %w", err)
	}
	return nil
}

// EffectiveBasis returns the basis percentages are displayed under.
func (s Settings) EffectiveBasis() Basis {
	if s.IgnoreUnallotted {
		return BasisAllocated
	}
	if s.PercentageBasis == BasisFullDay {
		return BasisFullDay
	}
	return BasisWaking
}

// Goal returns the target percentage for a category.
// Work targets BalanceGoal, life targets the remainder.
func (s Settings) Goal(c event.Category) int {
	if c == event.CategoryWork {
		return s.BalanceGoal
	}
	return 100 - s.BalanceGoal
}

// Preferred returns the preference map for a category.
func (s Settings) Preferred(c event.Category) map[string]bool {
	if c == event.CategoryWork {
		return s.WorkPreferredActivities
	}
	return s.LifePreferredActivities
}

// DisplayText describes what a percentage under the basis is relative to.
func DisplayText(b Basis) string {
	switch b {
	case BasisAllocated:
		return "of your allocated time"
	case BasisWaking:
		return "of your waking hours"
	default:
		return "of your day"
	}
}
