package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the engine Lua table into L:
//
//	engine.random(n)  uniform integer in [1, n], drawn from the game's dice
//	engine.log(msg)   debug log line tagged with the zone
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState, zoneID string) {
	engine := L.NewTable()
	L.SetField(engine, "random", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckInt(1)
		if n < 1 {
			L.ArgError(1, "n must be >= 1")
			return 0
		}
		L.Push(lua.LNumber(m.roller.Pick("lua random", n) + 1))
		return 1
	}))
	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		m.logger.Debug("lua",
			zap.String("zone", zoneID),
			zap.String("msg", L.CheckString(1)),
		)
		return 0
	}))
	L.SetGlobal("engine", engine)
}
