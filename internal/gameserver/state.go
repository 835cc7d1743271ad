package gameserver

import (
	"maps"
	"time"

	"github.com/cory-johannsen/lootgame/internal/game/character"
	"github.com/cory-johannsen/lootgame/internal/game/combat"
	"github.com/cory-johannsen/lootgame/internal/game/inventory"
)

// Wallet holds the player's currencies and adventure capacity.
type Wallet struct {
	Coins int
	// Keys counts unopened chest keys per tier ID.
	Keys          map[string]int
	MaxAdventures int
	UpgradeCost   int
}

func (w Wallet) clone() Wallet {
	w.Keys = maps.Clone(w.Keys)
	return w
}

// Stats are the lifetime counters shown on the status screen.
type Stats struct {
	ChestsOpened         map[string]int
	TotalChestsOpened    int
	CoinsSpent           int
	CoinsEarned          int
	ItemsSold            int
	RaritiesFound        map[string]int
	AdventuresCompleted  int
	AdventuresLost       int
	TotalEnemiesDefeated int
	TotalExpEarned       int
}

func (s Stats) clone() Stats {
	s.ChestsOpened = maps.Clone(s.ChestsOpened)
	s.RaritiesFound = maps.Clone(s.RaritiesFound)
	return s
}

// AdventureView is a read-only picture of a running adventure.
type AdventureView struct {
	ID              string
	ZoneID          string
	ZoneName        string
	Status          combat.Status
	EnemiesDefeated int
	Ticks           int
	Enemy           *combat.Enemy
	StartedAt       time.Time
	ExpiresAt       time.Time
	Remaining       time.Duration
}

// State is a deep copy of everything a renderer needs. Mutating it has no
// effect on the game.
type State struct {
	Now        time.Time
	Character  *character.Character
	Inventory  []inventory.Descriptor
	Wallet     Wallet
	Stats      Stats
	Adventures []AdventureView
}
