// Package combat resolves adventures: enemy spawning, the per-tick exchange,
// the adventure state machine, and the registry of running adventures.
package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/lootgame/internal/game/dice"
	"github.com/cory-johannsen/lootgame/internal/game/inventory"
	"github.com/cory-johannsen/lootgame/internal/game/world"
)

// Enemy is an ephemeral opponent created for one encounter.
type Enemy struct {
	Name      string
	Level     int
	Health    int
	MaxHealth int
	Attack    int
	Defense   int
}

// Alive reports whether the enemy has health left.
func (e *Enemy) Alive() bool {
	return e.Health > 0
}

// DefaultStats is the built-in enemy stat formula for level.
func DefaultStats(level int) inventory.Stats {
	return inventory.Stats{
		Health:    75 * level,
		MaxHealth: 75 * level,
		Attack:    9 * level,
		Defense:   5 * level,
	}
}

// StatsHook lets zone content override the enemy stat formula.
type StatsHook interface {
	// EnemyStats returns replacement stats, or false to use DefaultStats.
	EnemyStats(zoneID, name string, level int) (inventory.Stats, bool)
}

// StatsHookFunc adapts a function to StatsHook.
type StatsHookFunc func(zoneID, name string, level int) (inventory.Stats, bool)

// EnemyStats calls f.
func (f StatsHookFunc) EnemyStats(zoneID, name string, level int) (inventory.Stats, bool) {
	return f(zoneID, name, level)
}

// Spawner creates enemies for a zone.
type Spawner struct {
	dice   *dice.Roller
	hook   StatsHook
	logger *zap.Logger
}

// NewSpawner creates a Spawner. hook may be nil.
//
// Precondition: roller and logger must be non-nil.
func NewSpawner(roller *dice.Roller, hook StatsHook, logger *zap.Logger) *Spawner {
	return &Spawner{dice: roller, hook: hook, logger: logger}
}

// Spawn picks a random name from the zone's pool and builds the enemy at
// the zone's level.
//
// Precondition: zone has at least one enemy name.
// Postcondition: the returned enemy is alive.
func (s *Spawner) Spawn(zone *world.Zone) *Enemy {
	name := zone.Enemies[s.dice.Pick("enemy", len(zone.Enemies))]
	level := zone.EnemyLevel()
	stats := DefaultStats(level)
	if s.hook != nil {
		if override, ok := s.hook.EnemyStats(zone.ID, name, level); ok {
			if valid(override) {
				stats = override
			} else {
				s.logger.Warn("ignoring invalid scripted enemy stats",
					zap.String("zone", zone.ID),
					zap.String("enemy", name),
					zap.Int("health", override.Health),
					zap.Int("max_health", override.MaxHealth),
				)
			}
		}
	}
	return &Enemy{
		Name:      name,
		Level:     level,
		Health:    stats.Health,
		MaxHealth: stats.MaxHealth,
		Attack:    stats.Attack,
		Defense:   stats.Defense,
	}
}

func valid(s inventory.Stats) bool {
	return s.Health > 0 && s.MaxHealth >= s.Health && s.Attack >= 0 && s.Defense >= 0
}
