package gameserver_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/lootgame/content"
	"github.com/cory-johannsen/lootgame/internal/config"
	"github.com/cory-johannsen/lootgame/internal/game/combat"
	"github.com/cory-johannsen/lootgame/internal/game/dice"
	"github.com/cory-johannsen/lootgame/internal/game/scheduler"
	"github.com/cory-johannsen/lootgame/internal/gameserver"
	"github.com/cory-johannsen/lootgame/internal/testutil"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	cfg  config.GameConfig
	cat  *content.Catalog
	src  dice.Source
	hook combat.StatsHook
}

type option func(*fixture)

func withCoins(n int) option {
	return func(f *fixture) { f.cfg.StartingCoins = n }
}

func withSource(src dice.Source) option {
	return func(f *fixture) { f.src = src }
}

func withHook(h combat.StatsHook) option {
	return func(f *fixture) { f.hook = h }
}

func withCatalog(mutate func(*content.Catalog)) option {
	return func(f *fixture) { mutate(f.cat) }
}

// newGame builds a game on a manual loop. Randomness defaults to a scripted
// source that always draws zero.
func newGame(t *testing.T, opts ...option) (*gameserver.Game, *scheduler.Loop) {
	t.Helper()
	f := &fixture{
		cfg: config.Defaults().Game,
		cat: testutil.Catalog(t),
		src: testutil.NewScriptedSource(),
	}
	for _, o := range opts {
		o(f)
	}
	loop := scheduler.NewLoop(epoch)
	g, err := gameserver.NewGame(f.cfg, f.cat, loop, f.src, f.hook, zaptest.NewLogger(t))
	require.NoError(t, err)
	return g, loop
}

// drain returns every event currently buffered on ch.
func drain(ch <-chan gameserver.Event) []gameserver.Event {
	var out []gameserver.Event
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, e)
		default:
			return out
		}
	}
}

func lines(events []gameserver.Event) []string {
	var out []string
	for _, e := range events {
		if e.Kind == gameserver.EventTick {
			out = append(out, e.Line)
		}
	}
	return out
}

func ofKind(events []gameserver.Event, kind gameserver.EventKind) []gameserver.Event {
	var out []gameserver.Event
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
