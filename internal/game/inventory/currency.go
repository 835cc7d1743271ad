package inventory

import (
	"strconv"
	"strings"
)

// FormatCoins renders an amount with thousands separators, e.g. "100,000 coins".
//
// Postcondition: singular form for exactly one coin.
func FormatCoins(amount int) string {
	unit := "coins"
	if amount == 1 {
		unit = "coin"
	}
	return groupThousands(amount) + " " + unit
}

func groupThousands(n int) string {
	neg := n < 0
	digits := strconv.Itoa(n)
	if neg {
		digits = digits[1:]
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
