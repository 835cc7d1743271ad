package command

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cory-johannsen/lootgame/internal/game/inventory"
)

// ErrBadArgument is returned when a command argument cannot be parsed.
var ErrBadArgument = errors.New("bad argument")

// Amount keywords accepted by buy and open.
const (
	AmountBulk = "bulk"
	AmountAll  = "all"
)

// MaxAmount is the largest count ParseAmount accepts.
const MaxAmount = 1_000_000

// ParseAmount converts an optional amount argument into a count.
// An empty argument means 1 and "bulk" means bulk.
//
// Precondition: bulk >= 1.
// Postcondition: Returns 1 <= n <= max(bulk, MaxAmount) or an error wrapping
// ErrBadArgument.
func ParseAmount(arg string, bulk int) (int, error) {
	switch strings.ToLower(arg) {
	case "":
		return 1, nil
	case AmountBulk:
		return bulk, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: amount %q must be a positive number or %q", ErrBadArgument, arg, AmountBulk)
	}
	if n > MaxAmount {
		return 0, fmt.Errorf("%w: amount %q is over the limit of %d", ErrBadArgument, arg, MaxAmount)
	}
	return n, nil
}

// ParseItemNumbers converts 1-based item numbers and inclusive ranges
// ("3", "5-7") into sorted, de-duplicated 0-based indices.
//
// Precondition: size is the length of the listing the numbers refer to.
// Postcondition: Every returned index is in [0, size), or an error wrapping
// ErrBadArgument is returned.
func ParseItemNumbers(args []string, size int) ([]int, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: no item numbers given", ErrBadArgument)
	}
	seen := make(map[int]struct{})
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if part == "" {
				continue
			}
			lo, hi, err := parseRange(part)
			if err != nil {
				return nil, err
			}
			if lo < 1 || hi > size {
				return nil, fmt.Errorf("%w: item %s is out of range 1-%d", ErrBadArgument, part, size)
			}
			for n := lo; n <= hi; n++ {
				seen[n-1] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("%w: no item numbers given", ErrBadArgument)
	}
	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}

func parseRange(s string) (int, int, error) {
	lo, hi, isRange := strings.Cut(s, "-")
	a, err := strconv.Atoi(lo)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q is not an item number", ErrBadArgument, s)
	}
	if !isRange {
		return a, a, nil
	}
	b, err := strconv.Atoi(hi)
	if err != nil || b < a {
		return 0, 0, fmt.Errorf("%w: %q is not a valid range", ErrBadArgument, s)
	}
	return a, b, nil
}

// RarityLookup resolves a rarity ID or display name to its canonical ID.
type RarityLookup func(s string) (id string, ok bool)

// ParseFilter builds an inventory filter from up to one rarity and one item
// type, given in any order.
//
// Postcondition: Returns a Filter or an error wrapping ErrBadArgument.
func ParseFilter(args []string, rarities RarityLookup) (inventory.Filter, error) {
	var f inventory.Filter
	for _, arg := range args {
		if t, err := inventory.ParseItemType(arg); err == nil {
			if f.Type != "" {
				return inventory.Filter{}, fmt.Errorf("%w: more than one item type", ErrBadArgument)
			}
			f.Type = t
			continue
		}
		id, ok := rarities(arg)
		if !ok {
			return inventory.Filter{}, fmt.Errorf("%w: %q is neither a rarity nor an item type", ErrBadArgument, arg)
		}
		if f.Rarity != "" {
			return inventory.Filter{}, fmt.Errorf("%w: more than one rarity", ErrBadArgument)
		}
		f.Rarity = id
	}
	return f, nil
}
