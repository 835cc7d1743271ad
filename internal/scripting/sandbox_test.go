package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/lootgame/internal/scripting"
)

func TestNewSandboxedState_UnsafeLibsNil(t *testing.T) {
	L, cancel := scripting.NewSandboxedState(0)
	require.NotNil(t, L)
	defer L.Close()
	defer cancel()
	for _, name := range []string{"os", "io", "debug"} {
		assert.Equal(t, lua.LNil, L.GetGlobal(name), "expected %s to be nil", name)
	}
}

func TestNewSandboxedState_DangerousGlobalsNil(t *testing.T) {
	L, cancel := scripting.NewSandboxedState(0)
	defer L.Close()
	defer cancel()
	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		assert.Equal(t, lua.LNil, L.GetGlobal(name), "expected %s to be nil", name)
	}
}

func TestNewSandboxedState_SafeLibsAvailable(t *testing.T) {
	L, cancel := scripting.NewSandboxedState(0)
	defer L.Close()
	defer cancel()
	err := L.DoString(`
		local x = math.floor(7.5)
		assert(x == 7, "math.floor failed")
		local s = string.upper("loot")
		assert(s == "LOOT", "string.upper failed")
	`)
	assert.NoError(t, err)
}

func TestNewSandboxedState_InstructionLimitExceeded(t *testing.T) {
	L, cancel := scripting.NewSandboxedState(10)
	defer L.Close()
	defer cancel()
	err := L.DoString(`while true do end`)
	assert.Error(t, err, "expected instruction limit error")
}

func TestProperty_InstructionLimitAlwaysErrors(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(1, 50).Draw(t, "limit")
		L, cancel := scripting.NewSandboxedState(limit)
		defer L.Close()
		defer cancel()
		err := L.DoString(`while true do end`)
		if err == nil {
			t.Fatalf("expected error with limit=%d but got nil", limit)
		}
	})
}
