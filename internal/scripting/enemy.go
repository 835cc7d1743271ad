package scripting

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// ErrBadHookResult is returned when a hook's return value has the wrong shape.
var ErrBadHookResult = errors.New("scripting: bad hook result")

// EnemyStatsHook is the Lua global consulted when an enemy spawns:
//
//	function enemy_stats(name, level) return {health=..., max_health=..., attack=..., defense=...} end
//
// Returning nil keeps the built-in formula.
const EnemyStatsHook = "enemy_stats"

// EnemyStats is the stat block a script assigns to a spawning enemy.
type EnemyStats struct {
	Health    int
	MaxHealth int
	Attack    int
	Defense   int
}

// EnemyStats asks zoneID's scripts for the stats of a spawning enemy.
//
// Postcondition: returns false when no script defines the hook, the hook
// returns nil, or the result is malformed (logged at Warn).
func (m *Manager) EnemyStats(zoneID, name string, level int) (EnemyStats, bool) {
	ret, _ := m.CallHook(zoneID, EnemyStatsHook, lua.LString(name), lua.LNumber(level))
	if ret == lua.LNil {
		return EnemyStats{}, false
	}
	stats, err := enemyStatsFromLua(ret)
	if err != nil {
		m.logger.Warn("scripting: ignoring enemy_stats result",
			zap.String("zone", zoneID),
			zap.String("enemy", name),
			zap.Error(err),
		)
		return EnemyStats{}, false
	}
	return stats, true
}

func enemyStatsFromLua(v lua.LValue) (EnemyStats, error) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return EnemyStats{}, fmt.Errorf("%w: want table, got %s", ErrBadHookResult, v.Type())
	}
	field := func(key string) (int, bool, error) {
		f := tbl.RawGetString(key)
		if f == lua.LNil {
			return 0, false, nil
		}
		n, ok := f.(lua.LNumber)
		if !ok {
			return 0, false, fmt.Errorf("%w: %s must be a number, got %s", ErrBadHookResult, key, f.Type())
		}
		return int(n), true, nil
	}

	var s EnemyStats
	var present bool
	var err error
	if s.Health, present, err = field("health"); err != nil {
		return EnemyStats{}, err
	} else if !present {
		return EnemyStats{}, fmt.Errorf("%w: health is required", ErrBadHookResult)
	}
	if s.MaxHealth, present, err = field("max_health"); err != nil {
		return EnemyStats{}, err
	} else if !present {
		s.MaxHealth = s.Health
	}
	if s.Attack, _, err = field("attack"); err != nil {
		return EnemyStats{}, err
	}
	if s.Defense, _, err = field("defense"); err != nil {
		return EnemyStats{}, err
	}
	return s, nil
}
