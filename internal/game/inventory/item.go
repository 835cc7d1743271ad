// Package inventory models loot descriptors, the equipment they materialize
// into, and the ordered item collection a player carries.
package inventory

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ItemType is the equipment category of a looted item.
type ItemType string

// Item types in catalog declaration order.
const (
	TypeWeapon   ItemType = "weapon"
	TypeArmor    ItemType = "armor"
	TypeShield   ItemType = "shield"
	TypeStaff    ItemType = "staff"
	TypeRing     ItemType = "ring"
	TypeGloves   ItemType = "gloves"
	TypeNecklace ItemType = "necklace"
)

// typeSlots maps every valid item type to the equipment slot it occupies.
// Weapons and staves share the weapon slot.
var typeSlots = map[ItemType]Slot{
	TypeWeapon:   SlotWeapon,
	TypeArmor:    SlotArmor,
	TypeShield:   SlotShield,
	TypeStaff:    SlotWeapon,
	TypeRing:     SlotRing,
	TypeGloves:   SlotGloves,
	TypeNecklace: SlotNecklace,
}

// ParseItemType converts a string to an ItemType.
//
// Postcondition: Returns a valid ItemType or a non-nil error.
func ParseItemType(s string) (ItemType, error) {
	t := ItemType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown item type %q", s)
	}
	return t, nil
}

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	_, ok := typeSlots[t]
	return ok
}

// Slot returns the equipment slot items of this type occupy.
//
// Precondition: t.Valid().
func (t ItemType) Slot() Slot {
	return typeSlots[t]
}

// Descriptor is the immutable result of a loot roll.
//
// Invariant: Type is fixed when the descriptor is created and is never
// re-derived from Name.
type Descriptor struct {
	ID     string
	Rarity string
	Type   ItemType
	Name   string
}

// NewDescriptor creates a Descriptor with a fresh unique ID.
//
// Precondition: rarity and name are non-empty; t.Valid().
// Postcondition: ID is a new UUID.
func NewDescriptor(rarity string, t ItemType, name string) Descriptor {
	return Descriptor{
		ID:     uuid.NewString(),
		Rarity: rarity,
		Type:   t,
		Name:   name,
	}
}

// String renders the descriptor as "Rarity Type: Name".
func (d Descriptor) String() string {
	return fmt.Sprintf("%s %s: %s", titleCase(d.Rarity), titleCase(string(d.Type)), d.Name)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
