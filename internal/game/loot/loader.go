package loot

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/lootgame/internal/game/inventory"
	"github.com/cory-johannsen/lootgame/internal/game/rarity"
)

type yamlPoolFile struct {
	Pools []yamlRarityPool `yaml:"pools"`
}

type yamlRarityPool struct {
	Rarity string          `yaml:"rarity"`
	Types  []yamlTypeNames `yaml:"types"`
}

type yamlTypeNames struct {
	Type  string   `yaml:"type"`
	Names []string `yaml:"names"`
}

// LoadPoolFromBytes parses and validates an item pool from YAML.
//
// Precondition: table is non-nil.
// Postcondition: Returns a validated Pool or a non-nil error.
func LoadPoolFromBytes(data []byte, table *rarity.Table) (*Pool, error) {
	var file yamlPoolFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing item pool YAML: %w", err)
	}
	entries := make(map[string][]TypeNames, len(file.Pools))
	for _, yp := range file.Pools {
		if _, dup := entries[yp.Rarity]; dup {
			return nil, fmt.Errorf("invalid item pool: rarity %q declared twice", yp.Rarity)
		}
		groups := make([]TypeNames, 0, len(yp.Types))
		for _, yt := range yp.Types {
			groups = append(groups, TypeNames{Type: inventory.ItemType(yt.Type), Names: yt.Names})
		}
		entries[yp.Rarity] = groups
	}
	return NewPool(table, entries)
}

// LoadPool reads an item pool file from fsys.
func LoadPool(fsys fs.FS, name string, table *rarity.Table) (*Pool, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading item pool file %s: %w", name, err)
	}
	return LoadPoolFromBytes(data, table)
}
