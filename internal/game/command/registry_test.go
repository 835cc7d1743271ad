package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r)
	assert.Len(t, r.Commands(), len(BuiltinCommands()))
}

func TestResolve_CanonicalName(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Resolve("open")
	assert.True(t, ok)
	assert.Equal(t, "open", cmd.Name)
	assert.Equal(t, HandlerOpen, cmd.Handler)
}

func TestResolve_AliasAndCase(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Resolve("INV")
	assert.True(t, ok)
	assert.Equal(t, "inventory", cmd.Name)
}

func TestResolve_NotFound(t *testing.T) {
	r := DefaultRegistry()

	_, ok := r.Resolve("teleport")
	assert.False(t, ok)
}

func TestResolve_AllConsoleCommands(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		input   string
		handler string
	}{
		{"help", HandlerHelp},
		{"?", HandlerHelp},
		{"status", HandlerStatus},
		{"stats", HandlerStats},
		{"inventory", HandlerInventory},
		{"i", HandlerInventory},
		{"odds", HandlerOdds},
		{"buy", HandlerBuy},
		{"open", HandlerOpen},
		{"equip", HandlerEquip},
		{"unequip", HandlerUnequip},
		{"sell", HandlerSell},
		{"sellall", HandlerSellAll},
		{"zones", HandlerZones},
		{"adventure", HandlerAdventure},
		{"adv", HandlerAdventure},
		{"adventures", HandlerAdventures},
		{"upgrade", HandlerUpgrade},
		{"quit", HandlerQuit},
		{"exit", HandlerQuit},
	}

	for _, tt := range tests {
		cmd, ok := r.Resolve(tt.input)
		require.True(t, ok, "input %q not found", tt.input)
		assert.Equal(t, tt.handler, cmd.Handler, "input %q wrong handler", tt.input)
	}
}

func TestNewRegistry_DuplicateName(t *testing.T) {
	cmds := []Command{
		{Name: "test", Handler: "a"},
		{Name: "test", Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate command name")
}

func TestNewRegistry_DuplicateAlias(t *testing.T) {
	cmds := []Command{
		{Name: "test1", Aliases: []string{"t"}, Handler: "a"},
		{Name: "test2", Aliases: []string{"t"}, Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate alias")
}

func TestCommandsByCategory(t *testing.T) {
	r := DefaultRegistry()
	cats := r.CommandsByCategory()

	require.Len(t, cats, len(CategoryOrder))
	for _, c := range CategoryOrder {
		assert.NotEmpty(t, cats[c], "category %q", c)
	}
	names := make([]string, 0)
	for _, c := range cats[CategoryAdventure] {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"adventure", "adventures", "zones"}, names)
}

func TestPropertyAllAliasesResolveToCanonical(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := DefaultRegistry()
		cmds := r.Commands()
		idx := rapid.IntRange(0, len(cmds)-1).Draw(t, "cmd_idx")
		cmd := cmds[idx]

		resolved, ok := r.Resolve(cmd.Name)
		if !ok {
			t.Fatalf("canonical name %q did not resolve", cmd.Name)
		}
		if resolved.Name != cmd.Name {
			t.Fatalf("canonical name %q resolved to %q", cmd.Name, resolved.Name)
		}

		for _, alias := range cmd.Aliases {
			aliasResolved, ok := r.Resolve(alias)
			if !ok {
				t.Fatalf("alias %q did not resolve", alias)
			}
			if aliasResolved.Name != cmd.Name {
				t.Fatalf("alias %q resolved to %q, expected %q", alias, aliasResolved.Name, cmd.Name)
			}
		}
	})
}
