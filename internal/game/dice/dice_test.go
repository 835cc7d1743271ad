package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/lootgame/internal/game/dice"
)

func TestCryptoSource_Intn_Property(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 1000).Draw(rt, "n")
		v := src.Intn(n)
		assert.GreaterOrEqual(rt, v, 0)
		assert.Less(rt, v, n)
	})
}

func TestCryptoSource_Intn_PanicsOnNonPositive(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
	assert.Panics(t, func() { src.Intn(-3) })
}

func TestCryptoSource_Float64_InUnitInterval(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestSeededSource_Reproducible(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestNewSource_ZeroSeedIsCrypto(t *testing.T) {
	src := dice.NewSource(0)
	assert.Equal(t, dice.NewCryptoSource(), src)
}

func TestRoller_Range_Inclusive_Property(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewSeededSource(7), zap.NewNop())
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-100, 100).Draw(rt, "lo")
		hi := lo + rapid.IntRange(0, 100).Draw(rt, "span")
		v := r.Range("test", lo, hi)
		assert.GreaterOrEqual(rt, v, lo)
		assert.LessOrEqual(rt, v, hi)
	})
}

func TestRoller_Range_HitsBothEnds(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewSeededSource(1), zap.NewNop())
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		seen[r.Range("reward", 10, 12)] = true
	}
	assert.Equal(t, map[int]bool{10: true, 11: true, 12: true}, seen)
}

func TestRoller_Pick(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewSeededSource(3), zap.NewNop())
	for i := 0; i < 100; i++ {
		v := r.Pick("enemy", 3)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 3)
	}
}
