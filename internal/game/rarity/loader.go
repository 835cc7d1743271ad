package rarity

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

type yamlRarityFile struct {
	Rarities []yamlRarity `yaml:"rarities"`
}

type yamlRarity struct {
	ID              string  `yaml:"id"`
	Name            string  `yaml:"name"`
	BaseProbability float64 `yaml:"base_probability"`
	StatMultiplier  int     `yaml:"stat_multiplier"`
	SellValue       int     `yaml:"sell_value"`
	Color           string  `yaml:"color"`
}

type yamlChestFile struct {
	Chests []yamlChest `yaml:"chests"`
}

type yamlChest struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Price       int                `yaml:"price"`
	Multipliers map[string]float64 `yaml:"multipliers"`
}

// LoadTableFromBytes parses and validates a rarity table from YAML.
//
// Precondition: data must conform to the rarities schema.
// Postcondition: Returns a validated Table or a non-nil error.
func LoadTableFromBytes(data []byte) (*Table, error) {
	var file yamlRarityFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing rarity YAML: %w", err)
	}
	rarities := make([]Rarity, 0, len(file.Rarities))
	for _, yr := range file.Rarities {
		rarities = append(rarities, Rarity{
			ID:              yr.ID,
			Name:            yr.Name,
			BaseProbability: yr.BaseProbability,
			StatMultiplier:  yr.StatMultiplier,
			SellValue:       yr.SellValue,
			Color:           yr.Color,
		})
	}
	return NewTable(rarities)
}

// LoadTable reads a rarity table file from fsys.
func LoadTable(fsys fs.FS, name string) (*Table, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading rarity file %s: %w", name, err)
	}
	return LoadTableFromBytes(data)
}

// LoadChestTiersFromBytes parses chest tiers from YAML and validates each
// against table.
//
// Postcondition: Returns tiers in file order, or the first validation error.
func LoadChestTiersFromBytes(data []byte, table *Table) ([]ChestTier, error) {
	var file yamlChestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing chest YAML: %w", err)
	}
	if len(file.Chests) == 0 {
		return nil, fmt.Errorf("%w: no chest tiers defined", ErrMisconfiguredRarityTable)
	}
	seen := make(map[string]bool, len(file.Chests))
	tiers := make([]ChestTier, 0, len(file.Chests))
	for _, yc := range file.Chests {
		tier := ChestTier{
			ID:          yc.ID,
			Name:        yc.Name,
			Price:       yc.Price,
			Multipliers: yc.Multipliers,
		}
		if tier.Name == "" {
			tier.Name = tier.ID
		}
		if err := tier.Validate(table); err != nil {
			return nil, err
		}
		if seen[tier.ID] {
			return nil, fmt.Errorf("%w: duplicate chest tier %q", ErrMisconfiguredRarityTable, tier.ID)
		}
		seen[tier.ID] = true
		tiers = append(tiers, tier)
	}
	return tiers, nil
}

// LoadChestTiers reads a chest tier file from fsys.
func LoadChestTiers(fsys fs.FS, name string, table *Table) ([]ChestTier, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading chest file %s: %w", name, err)
	}
	return LoadChestTiersFromBytes(data, table)
}
