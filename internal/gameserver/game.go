// Package gameserver hosts the headless game: it owns the player's state and
// serializes every command, tick, and expiry through one scheduler loop.
package gameserver

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/lootgame/content"
	"github.com/cory-johannsen/lootgame/internal/config"
	"github.com/cory-johannsen/lootgame/internal/game/character"
	"github.com/cory-johannsen/lootgame/internal/game/combat"
	"github.com/cory-johannsen/lootgame/internal/game/dice"
	"github.com/cory-johannsen/lootgame/internal/game/inventory"
	"github.com/cory-johannsen/lootgame/internal/game/loot"
	"github.com/cory-johannsen/lootgame/internal/game/rarity"
	"github.com/cory-johannsen/lootgame/internal/game/scheduler"
	"github.com/cory-johannsen/lootgame/internal/game/world"
)

var (
	// ErrInsufficientFunds is returned when the wallet cannot cover a purchase.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientKeys is returned when too few keys are held for a chest opening.
	ErrInsufficientKeys = errors.New("insufficient keys")
	// ErrInvalidSelection is returned for unknown items, tiers, zones, slots, or amounts.
	ErrInvalidSelection = errors.New("invalid selection")
)

// Game is the headless engine. All exported methods are safe for concurrent
// use; each runs atomically with respect to ticks and other commands.
//
// Invariant: every rejected operation leaves state unchanged.
type Game struct {
	cfg      config.GameConfig
	loop     *scheduler.Loop
	rarities *rarity.Table
	loot     *loot.Roller
	resolver *inventory.Resolver
	zones    *world.Registry
	engine   *combat.Engine
	spawner  *combat.Spawner
	dice     *dice.Roller
	bus      *bus
	logger   *zap.Logger

	char   *character.Character
	inv    *inventory.Inventory
	wallet Wallet
	stats  Stats
	tasks  map[string]adventureTasks
}

type adventureTasks struct {
	tick   *scheduler.Task
	expiry *scheduler.Task
}

// NewGame builds a Game from a validated catalog.
//
// Precondition: cat, loop, src, and logger are non-nil; cfg passed config validation.
// hook may be nil.
// Postcondition: returns a Game with a fresh character, empty inventory, and
// cfg.StartingCoins coins, or an error if the catalog is inconsistent.
func NewGame(cfg config.GameConfig, cat *content.Catalog, loop *scheduler.Loop, src dice.Source, hook combat.StatsHook, logger *zap.Logger) (*Game, error) {
	roller := dice.NewLoggedRoller(src, logger.Named("dice"))
	lr, err := loot.NewRoller(cat.Rarities, cat.Chests, cat.Items, roller, logger.Named("loot"))
	if err != nil {
		return nil, fmt.Errorf("building loot roller: %w", err)
	}
	zones, err := world.NewRegistry(cat.Zones)
	if err != nil {
		return nil, fmt.Errorf("building zone registry: %w", err)
	}

	g := &Game{
		cfg:      cfg,
		loop:     loop,
		rarities: cat.Rarities,
		loot:     lr,
		resolver: inventory.NewResolver(cat.Items, cat.Rarities),
		zones:    zones,
		engine:   combat.NewEngine(),
		spawner:  combat.NewSpawner(roller, hook, logger.Named("combat")),
		dice:     roller,
		bus:      newBus(logger),
		logger:   logger,
		char:     character.New(),
		inv:      inventory.NewInventory(),
		wallet: Wallet{
			Coins:         cfg.StartingCoins,
			Keys:          make(map[string]int),
			MaxAdventures: cfg.MaxAdventures,
			UpgradeCost:   cfg.UpgradeCost,
		},
		stats: Stats{
			ChestsOpened:  make(map[string]int),
			RaritiesFound: make(map[string]int),
		},
		tasks: make(map[string]adventureTasks),
	}
	for _, t := range lr.Tiers() {
		g.wallet.Keys[t.ID] = 0
		g.stats.ChestsOpened[t.ID] = 0
	}
	for _, r := range cat.Rarities.All() {
		g.stats.RaritiesFound[r.ID] = 0
	}
	return g, nil
}

// Rarities returns the rarity table.
func (g *Game) Rarities() *rarity.Table { return g.rarities }

// ChestTiers returns the chest tiers in declaration order.
func (g *Game) ChestTiers() []rarity.ChestTier { return g.loot.Tiers() }

// Distribution returns the normalized rarity distribution of a tier.
func (g *Game) Distribution(tierID string) (*rarity.Distribution, bool) {
	return g.loot.Distribution(tierID)
}

// Zones returns the adventure zones ordered by level.
func (g *Game) Zones() *world.Registry { return g.zones }

// BulkAmount is the count used by bulk purchases.
func (g *Game) BulkAmount() int { return g.cfg.BulkAmount }

// MaxOpenAmount is the most chests one OpenChests call accepts.
func (g *Game) MaxOpenAmount() int { return g.cfg.MaxOpenAmount }

// Subscribe registers for events. Events that do not fit in the buffer are
// dropped. cancel closes the channel.
func (g *Game) Subscribe(buffer int) (<-chan Event, func()) {
	return g.bus.subscribe(buffer)
}

// Snapshot returns a deep copy of the current state.
func (g *Game) Snapshot() State {
	var s State
	_ = g.loop.Do(func() error {
		now := g.loop.Now()
		s = State{
			Now:       now,
			Character: g.char.Clone(),
			Inventory: g.inv.Items(),
			Wallet:    g.wallet.clone(),
			Stats:     g.stats.clone(),
		}
		for _, a := range g.engine.Adventures() {
			s.Adventures = append(s.Adventures, AdventureView{
				ID:              a.ID,
				ZoneID:          a.Zone.ID,
				ZoneName:        a.Zone.Name,
				Status:          a.Status,
				EnemiesDefeated: a.EnemiesDefeated,
				Ticks:           a.Ticks,
				Enemy:           a.Enemy,
				StartedAt:       a.StartedAt,
				ExpiresAt:       a.ExpiresAt,
				Remaining:       max(0, a.ExpiresAt.Sub(now)),
			})
		}
		return nil
	})
	return s
}

// RollItems draws count items from a tier without touching keys or
// inventory. It backs simulations and odds checks.
func (g *Game) RollItems(count int, tierID string) ([]inventory.Descriptor, error) {
	var items []inventory.Descriptor
	err := g.loop.Do(func() error {
		var err error
		items, err = g.loot.RollItems(count, tierID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSelection, err)
	}
	return items, nil
}
