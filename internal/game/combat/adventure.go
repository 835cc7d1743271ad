package combat

import (
	"fmt"
	"time"

	"github.com/cory-johannsen/lootgame/internal/game/character"
	"github.com/cory-johannsen/lootgame/internal/game/world"
)

// Status is the lifecycle state of an Adventure.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusCompleted
	StatusDefeated
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusDefeated:
		return "defeated"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Damage is the exchange formula: attack minus defense, at least 1.
func Damage(attack, defense int) int {
	return max(1, attack-defense)
}

// Adventure is one expedition into a zone.
//
// Invariant: Status only moves Idle → Running → {Completed, Defeated}.
type Adventure struct {
	ID              string
	Zone            *world.Zone
	Status          Status
	EnemiesDefeated int
	Ticks           int
	Enemy           *Enemy
	StartedAt       time.Time
	ExpiresAt       time.Time
}

// TickResult describes one exchange.
type TickResult struct {
	Spawned           bool
	PlayerDamage      int
	EnemyDamage       int
	EnemyDefeated     bool
	CharacterDefeated bool
	// Lines is the combat log for the tick, oldest first.
	Lines []string
}

// Tick runs one exchange against c. It is a no-op unless the adventure is
// running.
//
// Postcondition: the player strikes first; the enemy only counter-attacks if
// it survived. If c's health reaches zero the adventure is Defeated.
func (a *Adventure) Tick(c *character.Character, spawner *Spawner) TickResult {
	var res TickResult
	if a.Status != StatusRunning {
		return res
	}
	a.Ticks++
	tag := "[" + a.Zone.Name + "]"

	if a.Enemy == nil || !a.Enemy.Alive() {
		a.Enemy = spawner.Spawn(a.Zone)
		a.EnemiesDefeated++
		res.Spawned = true
		res.Lines = append(res.Lines, fmt.Sprintf("%s Encountered %s!", tag, a.Enemy.Name))
	}

	stats := c.Computed()
	res.PlayerDamage = Damage(stats.Attack, a.Enemy.Defense)
	a.Enemy.Health -= res.PlayerDamage
	res.Lines = append(res.Lines, fmt.Sprintf("%s You deal %d damage to %s (%d/%d HP)",
		tag, res.PlayerDamage, a.Enemy.Name, a.Enemy.Health, a.Enemy.MaxHealth))

	if a.Enemy.Alive() {
		res.EnemyDamage = Damage(a.Enemy.Attack, stats.Defense)
		remaining := c.TakeDamage(res.EnemyDamage)
		res.Lines = append(res.Lines, fmt.Sprintf("%s %s deals %d damage to you (%d/%d HP)",
			tag, a.Enemy.Name, res.EnemyDamage, remaining, c.Computed().MaxHealth))
	} else {
		res.EnemyDefeated = true
	}

	if !c.Alive() {
		a.Status = StatusDefeated
		res.CharacterDefeated = true
		res.Lines = append(res.Lines, fmt.Sprintf("%s You have been defeated!", tag))
	}
	return res
}
