package inventory

import (
	"fmt"
	"strings"
)

// Slot identifies one of the character's equipment slots.
type Slot string

const (
	SlotArmor    Slot = "armor"
	SlotWeapon   Slot = "weapon"
	SlotShield   Slot = "shield"
	SlotRing     Slot = "ring"
	SlotGloves   Slot = "gloves"
	SlotNecklace Slot = "necklace"
)

// allSlots lists every slot in display order.
var allSlots = []Slot{SlotArmor, SlotWeapon, SlotShield, SlotRing, SlotGloves, SlotNecklace}

// Slots returns every equipment slot in display order.
func Slots() []Slot {
	out := make([]Slot, len(allSlots))
	copy(out, allSlots)
	return out
}

// ParseSlot converts a string to a Slot. "staff" is accepted as the weapon slot.
func ParseSlot(s string) (Slot, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == string(TypeStaff) {
		return SlotWeapon, nil
	}
	for _, slot := range allSlots {
		if string(slot) == name {
			return slot, nil
		}
	}
	return "", fmt.Errorf("unknown equipment slot %q", s)
}

// Stats is a set of character statistics, also used for item bonuses.
type Stats struct {
	Attack    int
	Defense   int
	Health    int
	MaxHealth int
}

// Add returns the component-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Attack:    s.Attack + o.Attack,
		Defense:   s.Defense + o.Defense,
		Health:    s.Health + o.Health,
		MaxHealth: s.MaxHealth + o.MaxHealth,
	}
}

// BonusesFor returns the stat bonuses an item of type t grants at the given
// rarity stat multiplier.
//
// Precondition: t.Valid(); multiplier >= 1.
func BonusesFor(t ItemType, multiplier int) Stats {
	m := multiplier
	switch t {
	case TypeArmor:
		return Stats{MaxHealth: 10 * m, Health: 10 * m, Defense: 2 * m}
	case TypeWeapon, TypeStaff:
		return Stats{Attack: 8 * m}
	case TypeShield:
		return Stats{Defense: 10 * m}
	case TypeRing:
		return Stats{Attack: 2 * m, Defense: 4 * m}
	case TypeGloves:
		return Stats{Attack: 4 * m, Defense: 2 * m}
	case TypeNecklace:
		return Stats{MaxHealth: 15 * m, Health: 15 * m}
	}
	return Stats{}
}

// EquippedItem is a descriptor together with the bonuses it grants while worn.
type EquippedItem struct {
	Descriptor
	Bonuses Stats
}

// Slot returns the slot the item occupies.
func (e EquippedItem) Slot() Slot {
	return e.Type.Slot()
}
