package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/lootgame/internal/gameserver"
)

// chanSource hands out one pre-made channel.
type chanSource struct {
	ch        chan gameserver.Event
	cancelled bool
}

func (s *chanSource) Subscribe(int) (<-chan gameserver.Event, func()) {
	return s.ch, func() { s.cancelled = true }
}

func TestJournal_RecordLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	j := NewJournal(&chanSource{ch: make(chan gameserver.Event)}, 1, zap.New(core))

	j.Record(gameserver.Event{Kind: gameserver.EventTick, InstanceID: "a1", ZoneID: "forest", Line: "[Forest] Encountered Wolf!"})
	j.Record(gameserver.Event{Kind: gameserver.EventAdventureCompleted, InstanceID: "a1", Coins: 48, Experience: 72, EnemiesDefeated: 1})
	j.Record(gameserver.Event{Kind: gameserver.EventLevelUp, Level: 2})

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "[Forest] Encountered Wolf!", entries[0].Message)
	assert.Equal(t, "forest", entries[0].ContextMap()["zone"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, int64(48), entries[1].ContextMap()["coins"])

	assert.Equal(t, "level up", entries[2].Message)
	assert.NotContains(t, entries[2].ContextMap(), "instance")
}

func TestJournal_StartStop(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	src := &chanSource{ch: make(chan gameserver.Event, 4)}
	j := NewJournal(src, 4, zap.New(core))

	done := make(chan error, 1)
	go func() { done <- j.Start() }()

	src.ch <- gameserver.Event{Kind: gameserver.EventCharacterDefeated, InstanceID: "b2"}
	require.Eventually(t, func() bool { return logs.FilterMessage("character defeated").Len() == 1 },
		2*time.Second, 10*time.Millisecond)

	j.Stop()
	j.Stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("journal did not stop")
	}
	assert.True(t, src.cancelled)
}

func TestJournal_StartReturnsWhenSubscriptionCloses(t *testing.T) {
	src := &chanSource{ch: make(chan gameserver.Event)}
	j := NewJournal(src, 1, zap.NewNop())
	close(src.ch)
	assert.NoError(t, j.Start())
}
