package combat

import (
	"github.com/cory-johannsen/lootgame/internal/game/dice"
	"github.com/cory-johannsen/lootgame/internal/game/world"
)

// Rewards is what a completed adventure pays out.
type Rewards struct {
	Coins      int
	Experience int
}

// ScaleReward applies the performance bonus: base × (1 + 0.2 × enemies),
// floored. Integer arithmetic keeps the result exact.
//
// Precondition: base >= 0; enemies >= 0.
func ScaleReward(base, enemies int) int {
	return base * (5 + enemies) / 5
}

// RollRewards draws base coins then base experience from the zone's inclusive
// ranges and scales both by enemies defeated.
func RollRewards(zone *world.Zone, enemies int, roller *dice.Roller) Rewards {
	coins := roller.Range("coin reward", zone.CoinReward.Min, zone.CoinReward.Max)
	exp := roller.Range("exp reward", zone.ExpReward.Min, zone.ExpReward.Max)
	// Exact integer scaling. A float64 floor of base*(1+0.2*n) rounds some
	// products down by one (45 with 2 enemies: 62 instead of 63); those are
	// paid the exact value here.
	return Rewards{
		Coins:      ScaleReward(coins, enemies),
		Experience: ScaleReward(exp, enemies),
	}
}
