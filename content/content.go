// Package content embeds the default game catalog and loads catalogs from
// any fs.FS with the same layout.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/cory-johannsen/lootgame/internal/game/loot"
	"github.com/cory-johannsen/lootgame/internal/game/rarity"
	"github.com/cory-johannsen/lootgame/internal/game/world"
)

// File names within a catalog directory.
const (
	RaritiesFile = "rarities.yaml"
	ChestsFile   = "chests.yaml"
	ItemsFile    = "items.yaml"
	ZonesDir     = "zones"
)

//go:embed rarities.yaml chests.yaml items.yaml zones/*.yaml
var embedded embed.FS

// Embedded returns the catalog compiled into the binary.
func Embedded() fs.FS {
	return embedded
}

// Catalog is the complete static configuration the engine is built from.
type Catalog struct {
	Rarities *rarity.Table
	Chests   []rarity.ChestTier
	Items    *loot.Pool
	Zones    []*world.Zone
}

// Load reads and validates a full catalog from fsys.
//
// Postcondition: Returns a Catalog whose every table passed validation, or the
// first error encountered.
func Load(fsys fs.FS) (*Catalog, error) {
	table, err := rarity.LoadTable(fsys, RaritiesFile)
	if err != nil {
		return nil, fmt.Errorf("loading rarities: %w", err)
	}
	chests, err := rarity.LoadChestTiers(fsys, ChestsFile, table)
	if err != nil {
		return nil, fmt.Errorf("loading chest tiers: %w", err)
	}
	pool, err := loot.LoadPool(fsys, ItemsFile, table)
	if err != nil {
		return nil, fmt.Errorf("loading item pools: %w", err)
	}
	zones, err := world.LoadZones(fsys, ZonesDir)
	if err != nil {
		return nil, fmt.Errorf("loading zones: %w", err)
	}
	return &Catalog{Rarities: table, Chests: chests, Items: pool, Zones: zones}, nil
}

// LoadDir loads a catalog from dir, or the embedded catalog when dir is empty.
func LoadDir(dir string) (*Catalog, error) {
	if dir == "" {
		return Load(embedded)
	}
	return Load(os.DirFS(dir))
}
