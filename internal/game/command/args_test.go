package command

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/lootgame/internal/game/inventory"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		arg  string
		want int
	}{
		{"", 1},
		{"3", 3},
		{"bulk", 10},
		{"BULK", 10},
	}
	for _, tt := range tests {
		n, err := ParseAmount(tt.arg, 10)
		require.NoError(t, err, tt.arg)
		assert.Equal(t, tt.want, n, tt.arg)
	}

	for _, bad := range []string{"0", "-2", "many", "1.5", "1000001", "184467440737095516", "99999999999999999999"} {
		_, err := ParseAmount(bad, 10)
		assert.True(t, errors.Is(err, ErrBadArgument), bad)
	}
}

func TestPropertyParseAmountStaysBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.IntRange(1, math.MaxInt).Draw(t, "v")
		n, err := ParseAmount(strconv.Itoa(v), 10)
		if v > MaxAmount {
			if !errors.Is(err, ErrBadArgument) {
				t.Fatalf("amount %d accepted as %d", v, n)
			}
			return
		}
		if err != nil || n != v {
			t.Fatalf("amount %d parsed as %d, %v", v, n, err)
		}
	})
}

func TestParseItemNumbers_RangesAndDuplicates(t *testing.T) {
	idx, err := ParseItemNumbers([]string{"5", "1-3", "2,4"}, 6)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, idx)
}

func TestParseItemNumbers_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		size int
	}{
		{"empty", nil, 3},
		{"zero", []string{"0"}, 3},
		{"past end", []string{"4"}, 3},
		{"not a number", []string{"sword"}, 3},
		{"reversed range", []string{"3-1"}, 3},
		{"range past end", []string{"2-9"}, 3},
		{"only commas", []string{","}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseItemNumbers(tt.args, tt.size)
			assert.True(t, errors.Is(err, ErrBadArgument))
		})
	}
}

func rarities(s string) (string, bool) {
	switch strings.ToLower(s) {
	case "common", "epic":
		return strings.ToLower(s), true
	}
	return "", false
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter([]string{"Ring", "epic"}, rarities)
	require.NoError(t, err)
	assert.Equal(t, inventory.Filter{Rarity: "epic", Type: inventory.TypeRing}, f)

	f, err = ParseFilter(nil, rarities)
	require.NoError(t, err)
	assert.Equal(t, inventory.Filter{}, f)

	for _, bad := range [][]string{{"gold"}, {"ring", "staff"}, {"common", "epic"}} {
		_, err := ParseFilter(bad, rarities)
		assert.True(t, errors.Is(err, ErrBadArgument), "%v", bad)
	}
}

func TestPropertyItemNumbersStayInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(1, 50).Draw(t, "size")
		nums := rapid.SliceOfN(rapid.IntRange(1, size), 1, 10).Draw(t, "nums")
		args := make([]string, len(nums))
		for i, n := range nums {
			args[i] = strconv.Itoa(n)
		}
		idx, err := ParseItemNumbers(args, size)
		if err != nil {
			t.Fatalf("valid numbers %v rejected: %v", nums, err)
		}
		for i, v := range idx {
			if v < 0 || v >= size {
				t.Fatalf("index %d out of range for size %d", v, size)
			}
			if i > 0 && idx[i-1] >= v {
				t.Fatalf("indices not strictly increasing: %v", idx)
			}
		}
	})
}
