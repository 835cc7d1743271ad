// Package rarity holds the ordered rarity catalog and the per-chest-tier
// probability remapping the loot roller samples from.
package rarity

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// ErrMisconfiguredRarityTable is returned at load time for rarity or chest
// tables that cannot produce a probability distribution.
var ErrMisconfiguredRarityTable = errors.New("misconfigured rarity table")

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Rarity is one quality rank.
type Rarity struct {
	ID   string
	Name string
	// BaseProbability is a relative drop weight; tiers renormalize it.
	BaseProbability float64
	StatMultiplier  int
	SellValue       int
	// Color is a "#RRGGBB" display color, or empty.
	Color string
}

// Table is the immutable, ordered rarity catalog.
//
// Invariant: declaration order is preserved and IDs are unique.
type Table struct {
	rarities []Rarity
	index    map[string]int
}

// NewTable validates rarities and builds a Table in the given order.
//
// Postcondition: Returns a Table or an error wrapping ErrMisconfiguredRarityTable
// that lists every violation.
func NewTable(rarities []Rarity) (*Table, error) {
	var errs []string
	if len(rarities) == 0 {
		errs = append(errs, "at least one rarity is required")
	}
	index := make(map[string]int, len(rarities))
	for i, r := range rarities {
		if r.ID == "" {
			errs = append(errs, fmt.Sprintf("rarity %d: id must not be empty", i))
			continue
		}
		if _, dup := index[r.ID]; dup {
			errs = append(errs, fmt.Sprintf("rarity %q: duplicate id", r.ID))
		}
		index[r.ID] = i
		if !(r.BaseProbability > 0) || math.IsInf(r.BaseProbability, 0) {
			errs = append(errs, fmt.Sprintf("rarity %q: base_probability must be > 0, got %v", r.ID, r.BaseProbability))
		}
		if r.StatMultiplier < 1 {
			errs = append(errs, fmt.Sprintf("rarity %q: stat_multiplier must be >= 1, got %d", r.ID, r.StatMultiplier))
		}
		if r.SellValue < 0 {
			errs = append(errs, fmt.Sprintf("rarity %q: sell_value must be >= 0, got %d", r.ID, r.SellValue))
		}
		if r.Color != "" && !hexColor.MatchString(r.Color) {
			errs = append(errs, fmt.Sprintf("rarity %q: color must be #RRGGBB, got %q", r.ID, r.Color))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMisconfiguredRarityTable, strings.Join(errs, "; "))
	}

	t := &Table{rarities: make([]Rarity, len(rarities)), index: index}
	copy(t.rarities, rarities)
	for i := range t.rarities {
		if t.rarities[i].Name == "" {
			t.rarities[i].Name = t.rarities[i].ID
		}
	}
	return t, nil
}

// All returns every rarity in declaration order.
func (t *Table) All() []Rarity {
	out := make([]Rarity, len(t.rarities))
	copy(out, t.rarities)
	return out
}

// Len returns the number of rarities.
func (t *Table) Len() int { return len(t.rarities) }

// Get returns the rarity with the given ID.
func (t *Table) Get(id string) (Rarity, bool) {
	i, ok := t.index[id]
	if !ok {
		return Rarity{}, false
	}
	return t.rarities[i], true
}

// Rank returns the zero-based declaration position of id.
func (t *Table) Rank(id string) (int, bool) {
	i, ok := t.index[id]
	return i, ok
}

// StatMultiplier returns the stat multiplier of id.
func (t *Table) StatMultiplier(id string) (int, bool) {
	r, ok := t.Get(id)
	return r.StatMultiplier, ok
}

// SellValue returns the coin value of selling one item of rarity id.
func (t *Table) SellValue(id string) (int, bool) {
	r, ok := t.Get(id)
	return r.SellValue, ok
}

// Lookup resolves a rarity by ID or case-insensitive display name.
func (t *Table) Lookup(s string) (Rarity, bool) {
	if r, ok := t.Get(s); ok {
		return r, true
	}
	for _, r := range t.rarities {
		if strings.EqualFold(r.ID, s) || strings.EqualFold(r.Name, s) {
			return r, true
		}
	}
	return Rarity{}, false
}
