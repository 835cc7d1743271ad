package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/lootgame/internal/config"
	"github.com/cory-johannsen/lootgame/internal/gameserver"
	"github.com/cory-johannsen/lootgame/internal/testutil"
)

func seeded() config.GameConfig {
	cfg := config.Defaults().Game
	cfg.Seed = 42
	return cfg
}

func TestSimulate_LegendaryHistogramSkipsExcludedRarities(t *testing.T) {
	var out bytes.Buffer
	err := simulate(&out, seeded(), testutil.Catalog(t), options{Tier: "legendary", Count: 500}, zaptest.NewLogger(t))
	require.NoError(t, err)

	report := out.String()
	assert.Contains(t, report, "Opened 500 legendary chests")
	assert.Contains(t, report, "Epic")
	assert.NotContains(t, report, "Common")
	assert.NotContains(t, report, "Rare ")
}

func TestSimulate_AdventureLog(t *testing.T) {
	var out bytes.Buffer
	err := simulate(&out, seeded(), testutil.Catalog(t), options{Tier: "basic", Count: 1, Zone: "training_grounds"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	report := out.String()
	assert.Contains(t, report, "Entering Training Grounds...")
	assert.Contains(t, report, "[Training Grounds] Adventure Complete!")
	assert.Equal(t, 14, strings.Count(report, "You deal"))
}

func TestSimulate_Errors(t *testing.T) {
	cat := testutil.Catalog(t)
	log := zaptest.NewLogger(t)

	err := simulate(&bytes.Buffer{}, seeded(), cat, options{Tier: "golden", Count: 1}, log)
	assert.True(t, errors.Is(err, gameserver.ErrInvalidSelection))

	err = simulate(&bytes.Buffer{}, seeded(), cat, options{Tier: "basic", Count: 1, Zone: "forest"}, log)
	assert.ErrorContains(t, err, "level too low")
}
