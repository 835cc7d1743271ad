package combat_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/lootgame/internal/game/character"
	"github.com/cory-johannsen/lootgame/internal/game/combat"
	"github.com/cory-johannsen/lootgame/internal/game/dice"
	"github.com/cory-johannsen/lootgame/internal/game/inventory"
	"github.com/cory-johannsen/lootgame/internal/game/world"
	"github.com/cory-johannsen/lootgame/internal/testutil"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func trainingGrounds() *world.Zone {
	return &world.Zone{
		ID:         "training_grounds",
		Name:       "Training Grounds",
		MinLevel:   1,
		Enemies:    []string{"Training Dummy", "Novice Warrior"},
		CoinReward: world.Range{Min: 10, Max: 20},
		ExpReward:  world.Range{Min: 20, Max: 40},
		Duration:   15 * time.Second,
	}
}

func newSpawner(t *testing.T, src dice.Source, hook combat.StatsHook) *combat.Spawner {
	logger := zaptest.NewLogger(t)
	return combat.NewSpawner(dice.NewLoggedRoller(src, logger), hook, logger)
}

func TestDamage_FloorsAtOne(t *testing.T) {
	assert.Equal(t, 5, combat.Damage(10, 5))
	assert.Equal(t, 1, combat.Damage(9, 10))
	assert.Equal(t, 1, combat.Damage(0, 0))
}

func TestProperty_DamageAtLeastOne(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		atk := rapid.IntRange(0, 10000).Draw(rt, "atk")
		def := rapid.IntRange(0, 10000).Draw(rt, "def")
		d := combat.Damage(atk, def)
		assert.GreaterOrEqual(rt, d, 1)
		if atk > def {
			assert.Equal(rt, atk-def, d)
		}
	})
}

func TestSpawn_DefaultStats(t *testing.T) {
	src := testutil.NewScriptedSource().PushInts(1)
	e := newSpawner(t, src, nil).Spawn(trainingGrounds())
	assert.Equal(t, &combat.Enemy{Name: "Novice Warrior", Level: 1, Health: 75, MaxHealth: 75, Attack: 9, Defense: 5}, e)
}

func TestSpawn_HookOverrides(t *testing.T) {
	hook := combat.StatsHookFunc(func(zoneID, name string, level int) (inventory.Stats, bool) {
		assert.Equal(t, "training_grounds", zoneID)
		assert.Equal(t, "Training Dummy", name)
		assert.Equal(t, 1, level)
		return inventory.Stats{Health: 10, MaxHealth: 10, Attack: 1, Defense: 0}, true
	})
	e := newSpawner(t, testutil.NewScriptedSource(), hook).Spawn(trainingGrounds())
	assert.Equal(t, 10, e.Health)
	assert.Equal(t, 1, e.Attack)
}

func TestSpawn_HookDeclinesOrInvalid(t *testing.T) {
	declined := combat.StatsHookFunc(func(string, string, int) (inventory.Stats, bool) {
		return inventory.Stats{}, false
	})
	e := newSpawner(t, testutil.NewScriptedSource(), declined).Spawn(trainingGrounds())
	assert.Equal(t, 75, e.Health)

	invalid := combat.StatsHookFunc(func(string, string, int) (inventory.Stats, bool) {
		return inventory.Stats{Health: 0, MaxHealth: 10}, true
	})
	e = newSpawner(t, testutil.NewScriptedSource(), invalid).Spawn(trainingGrounds())
	assert.Equal(t, 75, e.Health)
}

func TestTick_FirstExchangeInTrainingGrounds(t *testing.T) {
	engine := combat.NewEngine()
	c := character.New()
	adv, err := engine.Start(trainingGrounds(), c, 1, epoch)
	require.NoError(t, err)

	res := adv.Tick(c, newSpawner(t, testutil.NewScriptedSource(), nil))

	assert.True(t, res.Spawned)
	assert.Equal(t, 1, adv.EnemiesDefeated)
	assert.Equal(t, 70, adv.Enemy.Health)
	assert.Equal(t, 99, c.Health())
	assert.Equal(t, 5, res.PlayerDamage)
	assert.Equal(t, 1, res.EnemyDamage)
	assert.Equal(t, []string{
		"[Training Grounds] Encountered Training Dummy!",
		"[Training Grounds] You deal 5 damage to Training Dummy (70/75 HP)",
		"[Training Grounds] Training Dummy deals 1 damage to you (99/100 HP)",
	}, res.Lines)
}

func TestTick_KillingBlowSkipsCounterAndRespawns(t *testing.T) {
	hook := combat.StatsHookFunc(func(string, string, int) (inventory.Stats, bool) {
		return inventory.Stats{Health: 5, MaxHealth: 5, Attack: 50, Defense: 5}, true
	})
	spawner := newSpawner(t, testutil.NewScriptedSource(), hook)
	c := character.New()
	adv, err := combat.NewEngine().Start(trainingGrounds(), c, 1, epoch)
	require.NoError(t, err)

	res := adv.Tick(c, spawner)
	assert.True(t, res.EnemyDefeated)
	assert.Zero(t, res.EnemyDamage)
	assert.Equal(t, 100, c.Health())

	res = adv.Tick(c, spawner)
	assert.True(t, res.Spawned)
	assert.Equal(t, 2, adv.EnemiesDefeated)
}

func TestTick_ZeroHealthCharacterFallsEvenOnKillingBlow(t *testing.T) {
	hook := combat.StatsHookFunc(func(string, string, int) (inventory.Stats, bool) {
		return inventory.Stats{Health: 5, MaxHealth: 5, Attack: 50, Defense: 5}, true
	})
	c := character.New()
	c.TakeDamage(100)
	adv, err := combat.NewEngine().Start(trainingGrounds(), c, 1, epoch)
	require.NoError(t, err)

	res := adv.Tick(c, newSpawner(t, testutil.NewScriptedSource(), hook))
	assert.True(t, res.EnemyDefeated)
	assert.Zero(t, res.EnemyDamage)
	assert.True(t, res.CharacterDefeated)
	assert.Equal(t, combat.StatusDefeated, adv.Status)
}

func TestTick_DefeatClampsAndStops(t *testing.T) {
	c := character.New()
	c.TakeDamage(99)
	adv, err := combat.NewEngine().Start(trainingGrounds(), c, 1, epoch)
	require.NoError(t, err)
	spawner := newSpawner(t, testutil.NewScriptedSource(), nil)

	res := adv.Tick(c, spawner)
	assert.True(t, res.CharacterDefeated)
	assert.Equal(t, combat.StatusDefeated, adv.Status)
	assert.Equal(t, 0, c.Health())
	assert.Equal(t, "[Training Grounds] You have been defeated!", res.Lines[len(res.Lines)-1])

	res = adv.Tick(c, spawner)
	assert.Empty(t, res.Lines)
	assert.Equal(t, 1, adv.Ticks)
}

func TestEngine_CapCheckedBeforeLevel(t *testing.T) {
	engine := combat.NewEngine()
	c := character.New()
	lair := trainingGrounds()
	lair.MinLevel = 20

	_, err := engine.Start(lair, c, 0, epoch)
	assert.True(t, errors.Is(err, combat.ErrConcurrencyCapReached))

	_, err = engine.Start(lair, c, 1, epoch)
	assert.True(t, errors.Is(err, combat.ErrLevelTooLow))
	assert.Equal(t, 0, engine.Running())
}

func TestEngine_StartGetRemove(t *testing.T) {
	engine := combat.NewEngine()
	c := character.New()
	a, err := engine.Start(trainingGrounds(), c, 2, epoch)
	require.NoError(t, err)
	b, err := engine.Start(trainingGrounds(), c, 2, epoch)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, epoch.Add(15*time.Second), a.ExpiresAt)
	assert.Equal(t, combat.StatusRunning, a.Status)

	_, err = engine.Start(trainingGrounds(), c, 2, epoch)
	require.ErrorIs(t, err, combat.ErrConcurrencyCapReached)
	assert.Equal(t, 2, engine.Running())

	got, ok := engine.Get(b.ID)
	require.True(t, ok)
	assert.Same(t, b, got)

	engine.Remove(a.ID)
	engine.Remove("missing")
	assert.Equal(t, 1, engine.Running())
	_, ok = engine.Get(a.ID)
	assert.False(t, ok)
}

func TestEngine_AdventuresAreCopies(t *testing.T) {
	engine := combat.NewEngine()
	c := character.New()
	a, err := engine.Start(trainingGrounds(), c, 1, epoch)
	require.NoError(t, err)
	a.Tick(c, newSpawner(t, testutil.NewScriptedSource(), nil))

	snap := engine.Adventures()
	require.Len(t, snap, 1)
	snap[0].Enemy.Health = 1
	assert.Equal(t, 70, a.Enemy.Health)
}

func TestProperty_CapRejectionLeavesRunningUnchanged(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		capacity := rapid.IntRange(0, 5).Draw(rt, "capacity")
		engine := combat.NewEngine()
		c := character.New()
		for range capacity {
			_, err := engine.Start(trainingGrounds(), c, capacity, epoch)
			require.NoError(rt, err)
		}
		_, err := engine.Start(trainingGrounds(), c, capacity, epoch)
		require.ErrorIs(rt, err, combat.ErrConcurrencyCapReached)
		assert.Equal(rt, capacity, engine.Running())
	})
}

func TestRollRewards_ScalesByEnemies(t *testing.T) {
	src := testutil.NewScriptedSource().PushInts(5, 10)
	roller := dice.NewLoggedRoller(src, zap.NewNop())
	got := combat.RollRewards(trainingGrounds(), 3, roller)
	// base coins 15, base exp 30, × 1.6
	assert.Equal(t, combat.Rewards{Coins: 24, Experience: 48}, got)
}

func TestScaleReward_Floors(t *testing.T) {
	assert.Equal(t, 10, combat.ScaleReward(10, 0))
	assert.Equal(t, 13, combat.ScaleReward(11, 1))
	assert.Equal(t, 0, combat.ScaleReward(0, 7))
	// 45 * 1.4 is 62.999... in float64; the exact product is paid.
	assert.Equal(t, 63, combat.ScaleReward(45, 2))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "running", combat.StatusRunning.String())
	assert.Equal(t, "defeated", combat.StatusDefeated.String())
}
