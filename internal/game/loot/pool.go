// Package loot turns chest openings into item descriptors by sampling the
// rarity distribution of a chest tier and the item pools of each rarity.
package loot

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/lootgame/internal/game/inventory"
	"github.com/cory-johannsen/lootgame/internal/game/rarity"
)

// TypeNames is one item type's name pool within a rarity.
type TypeNames struct {
	Type  inventory.ItemType
	Names []string
}

// Pool is the immutable rarity × type → names catalog.
//
// Invariant: every rarity of the table has at least one type, every type at
// least one name, and a name appears at most once within a rarity.
type Pool struct {
	byRarity map[string][]TypeNames
	types    map[string]inventory.ItemType
}

// NewPool validates entries against table.
//
// Postcondition: Returns a Pool or an error listing every violation.
func NewPool(table *rarity.Table, entries map[string][]TypeNames) (*Pool, error) {
	var errs []string
	for id := range entries {
		if _, ok := table.Get(id); !ok {
			errs = append(errs, fmt.Sprintf("unknown rarity %q", id))
		}
	}

	p := &Pool{
		byRarity: make(map[string][]TypeNames, len(entries)),
		types:    make(map[string]inventory.ItemType),
	}
	for _, r := range table.All() {
		groups := entries[r.ID]
		if len(groups) == 0 {
			errs = append(errs, fmt.Sprintf("rarity %q has no item types", r.ID))
			continue
		}
		seenType := make(map[inventory.ItemType]bool, len(groups))
		for _, g := range groups {
			if !g.Type.Valid() {
				errs = append(errs, fmt.Sprintf("rarity %q: unknown item type %q", r.ID, g.Type))
				continue
			}
			if seenType[g.Type] {
				errs = append(errs, fmt.Sprintf("rarity %q: type %q declared twice", r.ID, g.Type))
				continue
			}
			seenType[g.Type] = true
			if len(g.Names) == 0 {
				errs = append(errs, fmt.Sprintf("rarity %q: type %q has no names", r.ID, g.Type))
				continue
			}
			for _, name := range g.Names {
				k := key(r.ID, name)
				if prev, dup := p.types[k]; dup {
					errs = append(errs, fmt.Sprintf("rarity %q: name %q is both %s and %s", r.ID, name, prev, g.Type))
					continue
				}
				p.types[k] = g.Type
			}
			names := make([]string, len(g.Names))
			copy(names, g.Names)
			p.byRarity[r.ID] = append(p.byRarity[r.ID], TypeNames{Type: g.Type, Names: names})
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid item pool: %s", strings.Join(errs, "; "))
	}
	return p, nil
}

func key(rarityID, name string) string {
	return rarityID + "\x00" + name
}

// Types returns the item types declared for rarityID in declaration order.
func (p *Pool) Types(rarityID string) []inventory.ItemType {
	groups := p.byRarity[rarityID]
	out := make([]inventory.ItemType, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Type)
	}
	return out
}

// Names returns the name pool for (rarityID, t).
func (p *Pool) Names(rarityID string, t inventory.ItemType) []string {
	for _, g := range p.byRarity[rarityID] {
		if g.Type == t {
			out := make([]string, len(g.Names))
			copy(out, g.Names)
			return out
		}
	}
	return nil
}

// Classify returns the declared type of the named item at rarityID.
func (p *Pool) Classify(rarityID, name string) (inventory.ItemType, bool) {
	t, ok := p.types[key(rarityID, name)]
	return t, ok
}
