package observability

import (
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/lootgame/internal/gameserver"
)

// EventSource publishes game events.
type EventSource interface {
	Subscribe(buffer int) (<-chan gameserver.Event, func())
}

// Journal writes every game event to a logger, so adventures can be
// reconstructed from the process log. Tick lines are logged at debug;
// completions, defeats, and level ups at info.
type Journal struct {
	events      <-chan gameserver.Event
	unsubscribe func()
	logger      *zap.Logger

	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewJournal subscribes to src immediately, so no event published after
// construction is missed.
//
// Precondition: src and logger are non-nil; buffer >= 1.
func NewJournal(src EventSource, buffer int, logger *zap.Logger) *Journal {
	events, unsubscribe := src.Subscribe(buffer)
	return &Journal{
		events:      events,
		unsubscribe: unsubscribe,
		logger:      logger,
		quit:        make(chan struct{}),
	}
}

// Start records events until Stop is called or the subscription closes. It blocks.
func (j *Journal) Start() error {
	j.wg.Add(1)
	defer j.wg.Done()
	for {
		select {
		case <-j.quit:
			return nil
		case e, ok := <-j.events:
			if !ok {
				return nil
			}
			j.Record(e)
		}
	}
}

// Stop unsubscribes and waits for Start to return.
func (j *Journal) Stop() {
	j.stopOnce.Do(func() {
		close(j.quit)
		j.unsubscribe()
	})
	j.wg.Wait()
}

// Record logs a single event.
func (j *Journal) Record(e gameserver.Event) {
	fields := []zap.Field{
		zap.String("kind", e.Kind.String()),
		zap.Time("at", e.At),
	}
	if e.InstanceID != "" {
		fields = append(fields, zap.String("instance", e.InstanceID))
	}
	if e.ZoneID != "" {
		fields = append(fields, zap.String("zone", e.ZoneID))
	}

	switch e.Kind {
	case gameserver.EventTick:
		j.logger.Debug(e.Line, fields...)
	case gameserver.EventAdventureCompleted:
		j.logger.Info("adventure completed", append(fields,
			zap.Int("coins", e.Coins),
			zap.Int("exp", e.Experience),
			zap.Int("enemies", e.EnemiesDefeated),
		)...)
	case gameserver.EventCharacterDefeated:
		j.logger.Info("character defeated", fields...)
	case gameserver.EventLevelUp:
		j.logger.Info("level up", append(fields, zap.Int("level", e.Level))...)
	default:
		j.logger.Warn("unknown event", fields...)
	}
}
