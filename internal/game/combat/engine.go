package combat

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/lootgame/internal/game/character"
	"github.com/cory-johannsen/lootgame/internal/game/world"
)

var (
	// ErrLevelTooLow is returned when the character is below a zone's minimum level.
	ErrLevelTooLow = errors.New("level too low")
	// ErrConcurrencyCapReached is returned when every adventure slot is busy.
	ErrConcurrencyCapReached = errors.New("concurrent adventure limit reached")
)

// Engine tracks running adventures in start order.
//
// Engine is not safe for concurrent use; the game loop serializes access.
type Engine struct {
	running []*Adventure
}

// NewEngine creates an empty Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Start admits a new adventure into zone for c.
//
// Precondition: capacity >= 0.
// Postcondition: on success a Running adventure is registered; on error
// nothing changes. The capacity check precedes the level check.
func (e *Engine) Start(zone *world.Zone, c *character.Character, capacity int, now time.Time) (*Adventure, error) {
	if len(e.running) >= capacity {
		return nil, fmt.Errorf("%w: %d of %d running", ErrConcurrencyCapReached, len(e.running), capacity)
	}
	if c.Level < zone.MinLevel {
		return nil, fmt.Errorf("%w: %s requires level %d, character is level %d",
			ErrLevelTooLow, zone.Name, zone.MinLevel, c.Level)
	}
	a := &Adventure{
		ID:        uuid.NewString(),
		Zone:      zone,
		Status:    StatusRunning,
		StartedAt: now,
		ExpiresAt: now.Add(zone.Duration),
	}
	e.running = append(e.running, a)
	return a, nil
}

// Get returns the running adventure with the given ID.
func (e *Engine) Get(id string) (*Adventure, bool) {
	for _, a := range e.running {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Remove drops id from the running set. Removing an unknown ID is a no-op.
func (e *Engine) Remove(id string) {
	for i, a := range e.running {
		if a.ID == id {
			e.running = append(e.running[:i], e.running[i+1:]...)
			return
		}
	}
}

// Running returns the number of running adventures.
func (e *Engine) Running() int {
	return len(e.running)
}

// Adventures returns copies of the running adventures in start order.
func (e *Engine) Adventures() []Adventure {
	out := make([]Adventure, 0, len(e.running))
	for _, a := range e.running {
		cp := *a
		if a.Enemy != nil {
			enemy := *a.Enemy
			cp.Enemy = &enemy
		}
		out = append(out, cp)
	}
	return out
}
