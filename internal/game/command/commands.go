// Package command provides the console command registry, parser, and
// built-in command definitions.
package command

// Categories for organizing commands. CategoryOrder lists them in help order.
const (
	CategoryShop      = "shop"
	CategoryInventory = "inventory"
	CategoryAdventure = "adventure"
	CategorySystem    = "system"
)

// CategoryOrder is the display order of categories in help output.
var CategoryOrder = []string{CategoryShop, CategoryInventory, CategoryAdventure, CategorySystem}

// Handler identifiers mapping commands to console actions.
const (
	HandlerHelp       = "help"
	HandlerStatus     = "status"
	HandlerStats      = "stats"
	HandlerInventory  = "inventory"
	HandlerOdds       = "odds"
	HandlerBuy        = "buy"
	HandlerOpen       = "open"
	HandlerEquip      = "equip"
	HandlerUnequip    = "unequip"
	HandlerSell       = "sell"
	HandlerSellAll    = "sellall"
	HandlerZones      = "zones"
	HandlerAdventure  = "adventure"
	HandlerAdventures = "adventures"
	HandlerUpgrade    = "upgrade"
	HandlerQuit       = "quit"
)

// Command defines a player command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternative names that resolve to this command.
	Aliases []string
	// Usage is the argument synopsis shown in help, e.g. "<tier> [n|bulk]".
	Usage string
	// Help is a short description shown in help output.
	Help string
	// Category groups commands for help display.
	Category string
	// Handler identifies the console action that executes the command.
	Handler string
}

// BuiltinCommands returns the standard set of console commands.
//
// Postcondition: Returns a non-empty slice of commands with unique names and aliases.
func BuiltinCommands() []Command {
	return []Command{
		// Shop
		{Name: "odds", Aliases: []string{"chances"}, Usage: "<tier>", Help: "Show drop chances for a chest tier", Category: CategoryShop, Handler: HandlerOdds},
		{Name: "buy", Aliases: []string{"b"}, Usage: "<tier> [n|bulk]", Help: "Buy chest keys", Category: CategoryShop, Handler: HandlerBuy},
		{Name: "open", Aliases: []string{"o"}, Usage: "<tier> [n|bulk|all]", Help: "Open chests using keys", Category: CategoryShop, Handler: HandlerOpen},
		{Name: "upgrade", Aliases: nil, Usage: "", Help: "Buy an extra adventure slot", Category: CategoryShop, Handler: HandlerUpgrade},

		// Inventory
		{Name: "inventory", Aliases: []string{"inv", "i"}, Usage: "[rarity] [type]", Help: "List items, optionally filtered", Category: CategoryInventory, Handler: HandlerInventory},
		{Name: "equip", Aliases: []string{"eq"}, Usage: "<item#>", Help: "Equip an item from the last listing", Category: CategoryInventory, Handler: HandlerEquip},
		{Name: "unequip", Aliases: []string{"ueq"}, Usage: "<slot>", Help: "Return an equipped item to the inventory", Category: CategoryInventory, Handler: HandlerUnequip},
		{Name: "sell", Aliases: nil, Usage: "<item#...>", Help: "Sell items by number (ranges like 3-5 allowed)", Category: CategoryInventory, Handler: HandlerSell},
		{Name: "sellall", Aliases: nil, Usage: "[rarity] [type]", Help: "Sell every matching item", Category: CategoryInventory, Handler: HandlerSellAll},

		// Adventure
		{Name: "zones", Aliases: []string{"z"}, Usage: "", Help: "List adventure zones", Category: CategoryAdventure, Handler: HandlerZones},
		{Name: "adventure", Aliases: []string{"adv", "go"}, Usage: "<zone>", Help: "Start an adventure", Category: CategoryAdventure, Handler: HandlerAdventure},
		{Name: "adventures", Aliases: []string{"advs"}, Usage: "", Help: "Show running adventures", Category: CategoryAdventure, Handler: HandlerAdventures},

		// System
		{Name: "status", Aliases: []string{"st", "char"}, Usage: "", Help: "Show character, equipment and wallet", Category: CategorySystem, Handler: HandlerStatus},
		{Name: "stats", Aliases: nil, Usage: "", Help: "Show lifetime statistics", Category: CategorySystem, Handler: HandlerStats},
		{Name: "help", Aliases: []string{"?"}, Usage: "", Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"exit"}, Usage: "", Help: "Disconnect from the game", Category: CategorySystem, Handler: HandlerQuit},
	}
}
