package rarity

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ChestTier is a purchasable key category with its own price and
// rarity remapping.
type ChestTier struct {
	ID    string
	Name  string
	Price int
	// Multipliers scale each rarity's base probability. A zero or absent
	// entry excludes that rarity from the tier.
	Multipliers map[string]float64
}

// Validate checks the tier against table.
//
// Postcondition: Returns nil, or an error wrapping ErrMisconfiguredRarityTable.
func (c ChestTier) Validate(table *Table) error {
	var errs []string
	if c.ID == "" {
		errs = append(errs, "id must not be empty")
	}
	if c.Price < 0 {
		errs = append(errs, fmt.Sprintf("price must be >= 0, got %d", c.Price))
	}
	ids := make([]string, 0, len(c.Multipliers))
	for id := range c.Multipliers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	positive := 0
	for _, id := range ids {
		m := c.Multipliers[id]
		if _, ok := table.Get(id); !ok {
			errs = append(errs, fmt.Sprintf("unknown rarity %q", id))
			continue
		}
		if math.IsNaN(m) || math.IsInf(m, 0) || m < 0 {
			errs = append(errs, fmt.Sprintf("multiplier for %q must be a finite value >= 0, got %v", id, m))
			continue
		}
		if m > 0 {
			positive++
		}
	}
	if positive == 0 {
		errs = append(errs, "every multiplier is zero")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: chest tier %q: %s", ErrMisconfiguredRarityTable, c.ID, strings.Join(errs, "; "))
	}
	return nil
}

// Weighted is one rarity with its normalized probability within a tier.
type Weighted struct {
	Rarity      Rarity
	Probability float64
}

type bucket struct {
	rarity Rarity
	bound  float64
}

// Distribution is the normalized cumulative rarity distribution of one tier.
//
// Invariant: buckets are in catalog declaration order, bounds are
// non-decreasing, and only rarities with a positive multiplier appear.
type Distribution struct {
	tierID  string
	buckets []bucket
	weights []Weighted
}

// NewDistribution builds the normalized distribution for tier.
//
// Precondition: table is non-nil.
// Postcondition: Σ probabilities == 1 within floating-point error, or an error
// wrapping ErrMisconfiguredRarityTable.
func NewDistribution(table *Table, tier ChestTier) (*Distribution, error) {
	if err := tier.Validate(table); err != nil {
		return nil, err
	}

	var total float64
	adjusted := make([]float64, table.Len())
	for i, r := range table.rarities {
		m := tier.Multipliers[r.ID]
		if m > 0 {
			adjusted[i] = r.BaseProbability * m
			total += adjusted[i]
		}
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("%w: chest tier %q: total weight %v", ErrMisconfiguredRarityTable, tier.ID, total)
	}

	d := &Distribution{tierID: tier.ID}
	var cumulative float64
	for i, r := range table.rarities {
		if adjusted[i] == 0 {
			continue
		}
		p := adjusted[i] / total
		cumulative += p
		d.buckets = append(d.buckets, bucket{rarity: r, bound: cumulative})
		d.weights = append(d.weights, Weighted{Rarity: r, Probability: p})
	}
	return d, nil
}

// TierID returns the ID of the tier this distribution was built for.
func (d *Distribution) TierID() string { return d.tierID }

// Pick maps a uniform draw in [0, 1) to a rarity: the first bucket whose
// cumulative bound is >= draw. Draws beyond the final bound clamp to the
// last included rarity.
func (d *Distribution) Pick(draw float64) Rarity {
	for _, b := range d.buckets {
		if b.bound >= draw {
			return b.rarity
		}
	}
	return d.buckets[len(d.buckets)-1].rarity
}

// Probability returns the normalized probability of rarity id, 0 if excluded.
func (d *Distribution) Probability(id string) float64 {
	for _, w := range d.weights {
		if w.Rarity.ID == id {
			return w.Probability
		}
	}
	return 0
}

// Weights returns the included rarities with their probabilities in
// declaration order.
func (d *Distribution) Weights() []Weighted {
	out := make([]Weighted, len(d.weights))
	copy(out, d.weights)
	return out
}
