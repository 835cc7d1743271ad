package inventory

import (
	"errors"
	"fmt"
)

// ErrUnknownItem is returned when a descriptor does not appear in the item pool.
var ErrUnknownItem = errors.New("unknown item")

// Classifier maps a (rarity, name) pair to its declared item type.
type Classifier interface {
	Classify(rarity, name string) (ItemType, bool)
}

// MultiplierSource yields the stat multiplier of a rarity.
type MultiplierSource interface {
	StatMultiplier(rarity string) (int, bool)
}

// Resolver turns loot descriptors into equippable items.
type Resolver struct {
	classifier  Classifier
	multipliers MultiplierSource
}

// NewResolver creates a Resolver.
//
// Precondition: classifier and multipliers must be non-nil.
func NewResolver(classifier Classifier, multipliers MultiplierSource) *Resolver {
	return &Resolver{classifier: classifier, multipliers: multipliers}
}

// Classify returns the item type of d as declared by the item pool.
//
// Postcondition: Returns ErrUnknownItem if (d.Rarity, d.Name) is not pooled or
// if d.Type disagrees with the pool.
func (r *Resolver) Classify(d Descriptor) (ItemType, error) {
	t, ok := r.classifier.Classify(d.Rarity, d.Name)
	if !ok {
		return "", fmt.Errorf("%w: %s %q", ErrUnknownItem, d.Rarity, d.Name)
	}
	if d.Type != "" && d.Type != t {
		return "", fmt.Errorf("%w: %q is a %s, not a %s", ErrUnknownItem, d.Name, t, d.Type)
	}
	return t, nil
}

// Materialize computes the bonuses d grants once equipped.
//
// Postcondition: Returns an EquippedItem carrying d unchanged, or an error
// wrapping ErrUnknownItem.
func (r *Resolver) Materialize(d Descriptor) (EquippedItem, error) {
	t, err := r.Classify(d)
	if err != nil {
		return EquippedItem{}, err
	}
	m, ok := r.multipliers.StatMultiplier(d.Rarity)
	if !ok {
		return EquippedItem{}, fmt.Errorf("%w: rarity %q", ErrUnknownItem, d.Rarity)
	}
	d.Type = t
	return EquippedItem{Descriptor: d, Bonuses: BonusesFor(t, m)}, nil
}
