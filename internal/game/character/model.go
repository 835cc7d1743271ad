// Package character defines the player character: level progression, base
// stats, equipment slots, and the derived stats combat reads.
package character

import (
	"github.com/cory-johannsen/lootgame/internal/game/inventory"
)

// Starting values for a new character.
const (
	StartingLevel            = 1
	StartingExperienceToNext = 100
)

// StartingStats are the base stats of a new character.
var StartingStats = inventory.Stats{Attack: 10, Defense: 10, Health: 100, MaxHealth: 100}

// Character is the single mutable player aggregate.
//
// Invariant: Computed() == Base + Σ equipped bonuses, except Computed().Health,
// which combat may lower until the next heal or recompute.
// Invariant: 0 <= Experience < ExperienceToNext after every public call.
//
// Character is not safe for concurrent use; the game loop serializes access.
type Character struct {
	Level            int
	Experience       int
	ExperienceToNext int
	Base             inventory.Stats

	equipment map[inventory.Slot]inventory.EquippedItem
	computed  inventory.Stats
}

// New creates a level 1 character with starting stats and no equipment.
func New() *Character {
	c := &Character{
		Level:            StartingLevel,
		ExperienceToNext: StartingExperienceToNext,
		Base:             StartingStats,
		equipment:        make(map[inventory.Slot]inventory.EquippedItem),
	}
	c.recompute()
	return c
}

// Computed returns the derived stats including current health.
func (c *Character) Computed() inventory.Stats {
	return c.computed
}

// Health returns current health.
func (c *Character) Health() int {
	return c.computed.Health
}

// Alive reports whether current health is above zero.
func (c *Character) Alive() bool {
	return c.computed.Health > 0
}

// Equipped returns the item occupying slot.
func (c *Character) Equipped(slot inventory.Slot) (inventory.EquippedItem, bool) {
	item, ok := c.equipment[slot]
	return item, ok
}

// Equip places item in its slot and recomputes derived stats. Any previous
// occupant is returned so the caller can put it back into the inventory.
//
// Postcondition: Computed() reflects the new equipment; health is restored
// to its derived value.
func (c *Character) Equip(item inventory.EquippedItem) (displaced inventory.EquippedItem, hadPrevious bool) {
	slot := item.Slot()
	displaced, hadPrevious = c.equipment[slot]
	c.equipment[slot] = item
	c.recompute()
	return displaced, hadPrevious
}

// Unequip clears slot and returns the removed item's descriptor.
//
// Postcondition: returns false and leaves the character unchanged when the
// slot is empty.
func (c *Character) Unequip(slot inventory.Slot) (inventory.Descriptor, bool) {
	item, ok := c.equipment[slot]
	if !ok {
		return inventory.Descriptor{}, false
	}
	delete(c.equipment, slot)
	c.recompute()
	return item.Descriptor, true
}

// recompute derives computed stats from base stats and equipment.
func (c *Character) recompute() {
	stats := c.Base
	for _, slot := range inventory.Slots() {
		if item, ok := c.equipment[slot]; ok {
			stats = stats.Add(item.Bonuses)
		}
	}
	c.computed = stats
}

// TakeDamage lowers current health by amount, clamping at zero.
//
// Postcondition: returns the remaining health.
func (c *Character) TakeDamage(amount int) int {
	c.computed.Health -= amount
	if c.computed.Health < 0 {
		c.computed.Health = 0
	}
	return c.computed.Health
}

// Heal restores current health to max health.
func (c *Character) Heal() {
	c.computed.Health = c.computed.MaxHealth
}

// Defeat drops current health to zero.
func (c *Character) Defeat() {
	c.computed.Health = 0
}

// Loadout returns the equipped items in slot display order.
func (c *Character) Loadout() []inventory.EquippedItem {
	out := make([]inventory.EquippedItem, 0, len(c.equipment))
	for _, slot := range inventory.Slots() {
		if item, ok := c.equipment[slot]; ok {
			out = append(out, item)
		}
	}
	return out
}

// Clone returns a deep copy safe to hand to renderers.
func (c *Character) Clone() *Character {
	out := *c
	out.equipment = make(map[inventory.Slot]inventory.EquippedItem, len(c.equipment))
	for k, v := range c.equipment {
		out.equipment[k] = v
	}
	return &out
}
