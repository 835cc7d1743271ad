package content_test

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/lootgame/content"
	"github.com/cory-johannsen/lootgame/internal/game/rarity"
)

// embeddedCopy copies the embedded catalog into a writable MapFS.
func embeddedCopy(t *testing.T) fstest.MapFS {
	t.Helper()
	out := fstest.MapFS{}
	err := fs.WalkDir(content.Embedded(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(content.Embedded(), path)
		if err != nil {
			return err
		}
		out[path] = &fstest.MapFile{Data: data}
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestLoadDir_EmptyUsesEmbedded(t *testing.T) {
	cat, err := content.LoadDir("")
	require.NoError(t, err)

	assert.Equal(t, 8, cat.Rarities.Len())
	require.Len(t, cat.Chests, 4)
	assert.Equal(t, "basic", cat.Chests[0].ID)
	assert.Len(t, cat.Zones, 4)

	typ, ok := cat.Items.Classify("common", "Wooden Sword")
	assert.True(t, ok)
	assert.Equal(t, "weapon", string(typ))
}

func TestLoad_MisconfiguredRarityTable(t *testing.T) {
	fsys := embeddedCopy(t)
	fsys[content.RaritiesFile] = &fstest.MapFile{Data: []byte(`
rarities:
  - id: common
    base_probability: -0.5
    stat_multiplier: 1
`)}

	_, err := content.Load(fsys)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rarity.ErrMisconfiguredRarityTable))
	assert.Contains(t, err.Error(), "loading rarities")
}

func TestLoad_MissingFiles(t *testing.T) {
	for _, name := range []string{content.RaritiesFile, content.ChestsFile, content.ItemsFile} {
		t.Run(name, func(t *testing.T) {
			fsys := embeddedCopy(t)
			delete(fsys, name)
			_, err := content.Load(fsys)
			assert.Error(t, err)
		})
	}
}

func TestLoad_CustomZone(t *testing.T) {
	fsys := embeddedCopy(t)
	fsys["zones/arena.yaml"] = &fstest.MapFile{Data: []byte(`
zone:
  id: arena
  name: "Arena"
  min_level: 3
  duration_seconds: 30
  enemies: ["Gladiator"]
  coin_reward: {min: 20, max: 30}
  exp_reward: {min: 40, max: 50}
`)}

	cat, err := content.Load(fsys)
	require.NoError(t, err)
	assert.Len(t, cat.Zones, 5)
}
