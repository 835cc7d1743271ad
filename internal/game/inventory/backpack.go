package inventory

import (
	"errors"
	"fmt"
)

// ErrItemNotFound is returned when an item ID or index does not resolve.
var ErrItemNotFound = errors.New("item not found")

// Filter selects descriptors by rarity and/or type. Zero fields match anything.
type Filter struct {
	Rarity string
	Type   ItemType
}

// Matches reports whether d satisfies the filter.
func (f Filter) Matches(d Descriptor) bool {
	if f.Rarity != "" && f.Rarity != d.Rarity {
		return false
	}
	if f.Type != "" && f.Type != d.Type {
		return false
	}
	return true
}

// Entry is a descriptor together with its current index in the inventory.
type Entry struct {
	Index int
	Item  Descriptor
}

// Inventory is an ordered collection of descriptors.
//
// Inventory is not safe for concurrent use; the game loop serializes access.
type Inventory struct {
	items []Descriptor
}

// NewInventory creates an empty Inventory.
func NewInventory() *Inventory {
	return &Inventory{}
}

// Add appends items in order.
func (inv *Inventory) Add(items ...Descriptor) {
	inv.items = append(inv.items, items...)
}

// Len returns the number of items held.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// Items returns a copy of all items in order.
func (inv *Inventory) Items() []Descriptor {
	out := make([]Descriptor, len(inv.items))
	copy(out, inv.items)
	return out
}

// At returns the item at index i.
func (inv *Inventory) At(i int) (Descriptor, bool) {
	if i < 0 || i >= len(inv.items) {
		return Descriptor{}, false
	}
	return inv.items[i], true
}

// Find returns the index of the item with the given ID.
func (inv *Inventory) Find(id string) (int, bool) {
	for i, d := range inv.items {
		if d.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Filter returns the matching items with their indices, preserving order.
func (inv *Inventory) Filter(f Filter) []Entry {
	var out []Entry
	for i, d := range inv.items {
		if f.Matches(d) {
			out = append(out, Entry{Index: i, Item: d})
		}
	}
	return out
}

// RemoveAt removes and returns the item at index i.
//
// Postcondition: on error the inventory is unchanged.
func (inv *Inventory) RemoveAt(i int) (Descriptor, error) {
	d, ok := inv.At(i)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: index %d", ErrItemNotFound, i)
	}
	inv.items = append(inv.items[:i], inv.items[i+1:]...)
	return d, nil
}

// Remove removes and returns the item with the given ID.
func (inv *Inventory) Remove(id string) (Descriptor, error) {
	i, ok := inv.Find(id)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return inv.RemoveAt(i)
}

// RemoveAll removes every item whose ID is listed. It is atomic: if any ID
// is missing nothing is removed. Duplicate IDs are collapsed.
//
// Postcondition: returned items are in inventory order.
func (inv *Inventory) RemoveAll(ids []string) ([]Descriptor, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for id := range want {
		if _, ok := inv.Find(id); !ok {
			return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
		}
	}

	removed := make([]Descriptor, 0, len(want))
	kept := inv.items[:0:0]
	for _, d := range inv.items {
		if want[d.ID] {
			removed = append(removed, d)
			continue
		}
		kept = append(kept, d)
	}
	inv.items = kept
	return removed, nil
}

// CountByRarity returns the number of held items per rarity ID.
func (inv *Inventory) CountByRarity() map[string]int {
	out := make(map[string]int)
	for _, d := range inv.items {
		out[d.Rarity]++
	}
	return out
}
