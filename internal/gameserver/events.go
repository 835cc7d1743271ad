package gameserver

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// EventKind identifies what an Event reports.
type EventKind int

const (
	// EventTick carries one combat log line of an adventure.
	EventTick EventKind = iota
	// EventAdventureCompleted reports a finished adventure and its rewards.
	EventAdventureCompleted
	// EventCharacterDefeated reports the adventure that dropped the character to zero health.
	EventCharacterDefeated
	// EventLevelUp reports a new character level.
	EventLevelUp
)

// String returns a short name for the kind.
func (k EventKind) String() string {
	switch k {
	case EventTick:
		return "tick"
	case EventAdventureCompleted:
		return "adventure_completed"
	case EventCharacterDefeated:
		return "character_defeated"
	case EventLevelUp:
		return "level_up"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is a notification published by a Game. Fields not meaningful for a
// Kind are zero.
type Event struct {
	Kind       EventKind
	At         time.Time
	InstanceID string
	ZoneID     string
	// Line is the log text of a tick.
	Line            string
	Coins           int
	Experience      int
	EnemiesDefeated int
	// Level is the new level of a level up.
	Level int
}

// bus fans events out to subscribers without ever blocking the publisher.
type bus struct {
	mu      sync.Mutex
	subs    map[chan Event]struct{}
	dropped atomic.Uint64
	logger  *zap.Logger
}

func newBus(logger *zap.Logger) *bus {
	return &bus{subs: make(map[chan Event]struct{}), logger: logger}
}

// subscribe registers a channel of the given capacity. The returned cancel
// function unregisters and closes the channel; calling it twice is safe.
func (b *bus) subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 0 {
		buffer = 0
	}
	ch := make(chan Event, buffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// publish delivers e to every subscriber with room for it. Full subscribers
// miss the event.
func (b *bus) publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
			n := b.dropped.Add(1)
			b.logger.Warn("dropped event for slow subscriber",
				zap.Stringer("kind", e.Kind),
				zap.String("instance", e.InstanceID),
				zap.Uint64("dropped_total", n),
			)
		}
	}
}
