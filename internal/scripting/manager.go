package scripting

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/lootgame/internal/game/dice"
)

// GlobalDir is the script directory whose VM serves zones without their own.
const GlobalDir = "global"

// globalZoneID is the reserved key for shared scripts loaded via LoadGlobal.
// CallHook falls back to this VM when no zone VM is found.
const globalZoneID = "__global__"

type vm struct {
	L      *lua.LState
	cancel context.CancelFunc
	limit  int
}

// Manager owns one sandboxed LState per zone and exposes hook dispatch.
//
// Manager is safe for concurrent use. Hook calls are serialized because an
// LState is single-threaded.
type Manager struct {
	mu     sync.Mutex
	states map[string]*vm
	roller *dice.Roller
	logger *zap.Logger
}

// NewManager creates a Manager.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with an empty zone map.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if roller == nil {
		panic("scripting.NewManager: roller must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		states: make(map[string]*vm),
		roller: roller,
		logger: logger,
	}
}

// LoadZone creates a sandboxed VM for zoneID, registers the engine module,
// then executes every *.lua file in dir of fsys in lexicographic order.
//
// Precondition: zoneID must be non-empty; dir must be a readable directory of fsys.
// Postcondition: Zone VM is registered; returns error on Lua load failure.
func (m *Manager) LoadZone(zoneID string, fsys fs.FS, dir string, instLimit int) error {
	return m.loadInto(zoneID, fsys, dir, instLimit)
}

// LoadGlobal creates the "__global__" VM used as a CallHook fallback from any zone.
//
// Precondition: dir must be a readable directory of fsys.
// Postcondition: Global VM is registered; returns error on Lua load failure.
func (m *Manager) LoadGlobal(fsys fs.FS, dir string, instLimit int) error {
	return m.loadInto(globalZoneID, fsys, dir, instLimit)
}

// LoadTree loads every top-level directory of fsys as a zone named after the
// directory. The directory named GlobalDir becomes the global VM.
//
// Postcondition: returns the loaded zone IDs in lexicographic order, or the
// first load error.
func (m *Manager) LoadTree(fsys fs.FS, instLimit int) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("scripting: reading script tree: %w", err)
	}
	var loaded []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if e.Name() == GlobalDir {
			err = m.LoadGlobal(fsys, e.Name(), instLimit)
		} else {
			err = m.LoadZone(e.Name(), fsys, e.Name(), instLimit)
		}
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, e.Name())
	}
	m.logger.Info("scripts loaded", zap.Strings("zones", loaded))
	return loaded, nil
}

func (m *Manager) loadInto(key string, fsys fs.FS, dir string, instLimit int) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", dir, key, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, path.Join(dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L, cancel := NewSandboxedState(instLimit)
	m.RegisterModules(L, key)
	for _, p := range luaFiles {
		src, err := fs.ReadFile(fsys, p)
		if err == nil {
			err = L.DoString(string(src))
		}
		if err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", p, key, err)
		}
	}

	m.mu.Lock()
	if old, ok := m.states[key]; ok {
		old.cancel()
		old.L.Close()
	}
	m.states[key] = &vm{L: L, cancel: cancel, limit: instLimit}
	m.mu.Unlock()
	return nil
}

// Close releases every VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, v := range m.states {
		v.cancel()
		v.L.Close()
		delete(m.states, key)
	}
}

// CallHook calls the named Lua global function in zoneID's VM. If the zone has
// no VM, the __global__ VM is tried as a fallback. Returns (LNil, nil) if the
// hook is not defined or no VM exists. Lua runtime errors are logged at Warn
// level and never propagated. Each call gets a fresh instruction budget.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(zoneID, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.states[zoneID]
	if !ok {
		v = m.states[globalZoneID]
	}
	if v == nil {
		m.logger.Debug("scripting: no VM for zone",
			zap.String("zone", zoneID),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	fn := v.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	v.cancel()
	v.cancel = budget(v.L, v.limit)
	if err := v.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("zone", zoneID),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := v.L.Get(-1)
	v.L.Pop(1)
	return ret, nil
}
