package loot

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/lootgame/internal/game/dice"
	"github.com/cory-johannsen/lootgame/internal/game/inventory"
	"github.com/cory-johannsen/lootgame/internal/game/rarity"
)

var (
	// ErrUnknownTier is returned for a chest tier ID that is not configured.
	ErrUnknownTier = errors.New("unknown chest tier")
	// ErrInvalidCount is returned when fewer than one or more than MaxRollCount
	// items are requested.
	ErrInvalidCount = errors.New("invalid roll count")
)

// MaxRollCount bounds a single RollItems call.
const MaxRollCount = 1_000_000

// Roller draws items for chest openings.
//
// Roller is safe for concurrent use when its dice.Roller's Source is.
type Roller struct {
	table  *rarity.Table
	pool   *Pool
	tiers  []rarity.ChestTier
	dists  map[string]*rarity.Distribution
	dice   *dice.Roller
	logger *zap.Logger
}

// NewRoller precomputes every tier's distribution.
//
// Precondition: all arguments non-nil; tiers non-empty.
// Postcondition: Returns a Roller, or an error wrapping
// rarity.ErrMisconfiguredRarityTable if any tier cannot be normalized.
func NewRoller(table *rarity.Table, tiers []rarity.ChestTier, pool *Pool, roller *dice.Roller, logger *zap.Logger) (*Roller, error) {
	r := &Roller{
		table:  table,
		pool:   pool,
		tiers:  make([]rarity.ChestTier, len(tiers)),
		dists:  make(map[string]*rarity.Distribution, len(tiers)),
		dice:   roller,
		logger: logger,
	}
	copy(r.tiers, tiers)
	for _, tier := range tiers {
		if _, dup := r.dists[tier.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate chest tier %q", rarity.ErrMisconfiguredRarityTable, tier.ID)
		}
		d, err := rarity.NewDistribution(table, tier)
		if err != nil {
			return nil, err
		}
		r.dists[tier.ID] = d
	}
	return r, nil
}

// Tiers returns the configured chest tiers in declaration order.
func (r *Roller) Tiers() []rarity.ChestTier {
	out := make([]rarity.ChestTier, len(r.tiers))
	copy(out, r.tiers)
	return out
}

// Tier returns the tier with the given ID.
func (r *Roller) Tier(id string) (rarity.ChestTier, bool) {
	for _, t := range r.tiers {
		if t.ID == id {
			return t, true
		}
	}
	return rarity.ChestTier{}, false
}

// Distribution returns the normalized distribution of tier id.
func (r *Roller) Distribution(id string) (*rarity.Distribution, bool) {
	d, ok := r.dists[id]
	return d, ok
}

// RollItems draws count descriptors from tier tierID.
//
// Precondition: 1 <= count <= MaxRollCount.
// Postcondition: len(result) == count; each descriptor's type is declared for
// its rarity and its name belongs to that type's pool.
func (r *Roller) RollItems(count int, tierID string) ([]inventory.Descriptor, error) {
	if count < 1 || count > MaxRollCount {
		return nil, fmt.Errorf("%w: got %d, want 1-%d", ErrInvalidCount, count, MaxRollCount)
	}
	dist, ok := r.dists[tierID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTier, tierID)
	}

	items := make([]inventory.Descriptor, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, r.rollOne(dist))
	}
	r.logger.Debug("rolled items",
		zap.String("tier", tierID),
		zap.Int("count", count),
	)
	return items, nil
}

func (r *Roller) rollOne(dist *rarity.Distribution) inventory.Descriptor {
	rar := dist.Pick(r.dice.Float64("rarity"))
	groups := r.pool.byRarity[rar.ID]
	g := groups[r.dice.Pick("item type", len(groups))]
	name := g.Names[r.dice.Pick("item name", len(g.Names))]
	return inventory.NewDescriptor(rar.ID, g.Type, name)
}
