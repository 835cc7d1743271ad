package world

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// yamlZoneFile is the top-level YAML structure for zone files.
type yamlZoneFile struct {
	Zone yamlZone `yaml:"zone"`
}

type yamlZone struct {
	ID              string    `yaml:"id"`
	Name            string    `yaml:"name"`
	MinLevel        int       `yaml:"min_level"`
	DurationSeconds int       `yaml:"duration_seconds"`
	Enemies         []string  `yaml:"enemies"`
	CoinReward      yamlRange `yaml:"coin_reward"`
	ExpReward       yamlRange `yaml:"exp_reward"`
}

type yamlRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// LoadZoneFromBytes parses and validates a zone from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the zone schema.
// Postcondition: Returns a validated Zone or a non-nil error.
func LoadZoneFromBytes(data []byte) (*Zone, error) {
	var file yamlZoneFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing zone YAML: %w", err)
	}
	yz := file.Zone
	zone := &Zone{
		ID:         yz.ID,
		Name:       yz.Name,
		MinLevel:   yz.MinLevel,
		Enemies:    yz.Enemies,
		CoinReward: Range{Min: yz.CoinReward.Min, Max: yz.CoinReward.Max},
		ExpReward:  Range{Min: yz.ExpReward.Min, Max: yz.ExpReward.Max},
		Duration:   time.Duration(yz.DurationSeconds) * time.Second,
	}
	if err := zone.Validate(); err != nil {
		return nil, fmt.Errorf("validating zone: %w", err)
	}
	return zone, nil
}

// LoadZones loads every YAML file in dir of fsys as a zone.
//
// Postcondition: Returns all validated zones or the first error encountered.
func LoadZones(fsys fs.FS, dir string) ([]*Zone, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading zone directory %s: %w", dir, err)
	}

	var zones []*Zone
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading zone file %s: %w", name, err)
		}
		zone, err := LoadZoneFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading zone from %s: %w", name, err)
		}
		zones = append(zones, zone)
	}

	if len(zones) == 0 {
		return nil, fmt.Errorf("no zone files found in %s", dir)
	}
	return zones, nil
}
