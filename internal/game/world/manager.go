package world

import (
	"fmt"
	"sort"
	"strings"
)

// Registry is the immutable set of adventure zones, ordered by level.
type Registry struct {
	zones []*Zone
	byID  map[string]*Zone
}

// NewRegistry indexes zones by ID.
//
// Precondition: zones are validated.
// Postcondition: Returns a Registry, or an error on duplicate zone IDs.
func NewRegistry(zones []*Zone) (*Registry, error) {
	r := &Registry{byID: make(map[string]*Zone, len(zones))}
	for _, z := range zones {
		if _, exists := r.byID[z.ID]; exists {
			return nil, fmt.Errorf("duplicate zone ID: %q", z.ID)
		}
		r.byID[z.ID] = z
		r.zones = append(r.zones, z)
	}
	sort.SliceStable(r.zones, func(i, j int) bool {
		if r.zones[i].MinLevel != r.zones[j].MinLevel {
			return r.zones[i].MinLevel < r.zones[j].MinLevel
		}
		return r.zones[i].ID < r.zones[j].ID
	})
	return r, nil
}

// Zone returns the zone with the given ID.
func (r *Registry) Zone(id string) (*Zone, bool) {
	z, ok := r.byID[id]
	return z, ok
}

// Lookup resolves a zone by ID or case-insensitive name.
func (r *Registry) Lookup(s string) (*Zone, bool) {
	if z, ok := r.byID[s]; ok {
		return z, true
	}
	for _, z := range r.zones {
		if strings.EqualFold(z.Name, s) || strings.EqualFold(z.ID, s) {
			return z, true
		}
	}
	return nil, false
}

// Zones returns every zone ordered by minimum level.
func (r *Registry) Zones() []*Zone {
	out := make([]*Zone, len(r.zones))
	copy(out, r.zones)
	return out
}
