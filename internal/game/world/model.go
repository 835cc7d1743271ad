// Package world provides the adventure zones a character can be sent into.
package world

import (
	"errors"
	"fmt"
	"time"
)

// Range is an inclusive integer interval.
type Range struct {
	Min int
	Max int
}

// Valid reports whether 0 <= Min <= Max.
func (r Range) Valid() bool {
	return r.Min >= 0 && r.Min <= r.Max
}

// String renders the range as "min-max".
func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// Zone is a static adventure location.
type Zone struct {
	ID       string
	Name     string
	MinLevel int
	// Enemies is the pool spawn names are drawn from.
	Enemies    []string
	CoinReward Range
	ExpReward  Range
	Duration   time.Duration
}

// EnemyLevel returns the level of enemies spawned in the zone.
func (z *Zone) EnemyLevel() int {
	return z.MinLevel
}

// Validate checks that the zone satisfies its invariants.
//
// Postcondition: Returns nil if valid, or an error describing every violation.
func (z *Zone) Validate() error {
	var errs []error
	if z.ID == "" {
		errs = append(errs, errors.New("zone ID must not be empty"))
	}
	if z.Name == "" {
		errs = append(errs, errors.New("zone name must not be empty"))
	}
	if z.MinLevel < 1 {
		errs = append(errs, fmt.Errorf("min_level must be >= 1, got %d", z.MinLevel))
	}
	if len(z.Enemies) == 0 {
		errs = append(errs, errors.New("zone must have at least one enemy"))
	}
	for i, e := range z.Enemies {
		if e == "" {
			errs = append(errs, fmt.Errorf("enemy %d has an empty name", i))
		}
	}
	if !z.CoinReward.Valid() {
		errs = append(errs, fmt.Errorf("coin_reward %s must satisfy 0 <= min <= max", z.CoinReward))
	}
	if !z.ExpReward.Valid() {
		errs = append(errs, fmt.Errorf("exp_reward %s must satisfy 0 <= min <= max", z.ExpReward))
	}
	if z.Duration < time.Second {
		errs = append(errs, fmt.Errorf("duration must be at least 1s, got %s", z.Duration))
	}
	if len(errs) > 0 {
		return fmt.Errorf("zone %q: %w", z.ID, errors.Join(errs...))
	}
	return nil
}
