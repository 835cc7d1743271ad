package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/lootgame/internal/frontend/telnet"
	"github.com/cory-johannsen/lootgame/internal/game/combat"
	"github.com/cory-johannsen/lootgame/internal/game/command"
	"github.com/cory-johannsen/lootgame/internal/game/inventory"
	"github.com/cory-johannsen/lootgame/internal/game/rarity"
	"github.com/cory-johannsen/lootgame/internal/gameserver"
)

// maxListedDrops is the largest chest haul listed item by item; bigger hauls
// are summarized per rarity.
const maxListedDrops = 20

// session is the per-connection console state. Item numbers typed by the
// player refer to the most recent inventory listing.
type session struct {
	game     *gameserver.Game
	registry *command.Registry
	listing  []inventory.Descriptor
}

func newSession(game *gameserver.Game, registry *command.Registry) *session {
	return &session{game: game, registry: registry}
}

// execute runs one input line and returns the output lines and whether the
// player asked to quit.
func (s *session) execute(line string) ([]string, bool) {
	parsed := command.Parse(line)
	if parsed.Command == "" {
		return nil, false
	}
	cmd, ok := s.registry.Resolve(parsed.Command)
	if !ok {
		return []string{telnet.Colorf(telnet.Dim, "Unknown command '%s'. Type 'help' for a list.", parsed.Command)}, false
	}

	switch cmd.Handler {
	case command.HandlerHelp:
		return RenderHelp(s.registry), false
	case command.HandlerStatus:
		return RenderStatus(s.game.Snapshot(), s.game.ChestTiers(), s.game.Rarities()), false
	case command.HandlerStats:
		return RenderStats(s.game.Snapshot().Stats, s.game.ChestTiers(), s.game.Rarities()), false
	case command.HandlerInventory:
		return s.inventory(parsed.Args), false
	case command.HandlerOdds:
		return s.odds(parsed.Args), false
	case command.HandlerBuy:
		return s.buy(parsed.Args), false
	case command.HandlerOpen:
		return s.open(parsed.Args), false
	case command.HandlerEquip:
		return s.equip(parsed.Args), false
	case command.HandlerUnequip:
		return s.unequip(parsed.Args), false
	case command.HandlerSell:
		return s.sell(parsed.Args), false
	case command.HandlerSellAll:
		return s.sellAll(parsed.Args), false
	case command.HandlerZones:
		return RenderZones(s.game.Zones().Zones(), s.game.Snapshot().Character.Level), false
	case command.HandlerAdventure:
		return s.adventure(parsed.RawArgs), false
	case command.HandlerAdventures:
		return RenderAdventures(s.game.Snapshot().Adventures), false
	case command.HandlerUpgrade:
		return s.upgrade(), false
	case command.HandlerQuit:
		return []string{telnet.Colorize(telnet.Cyan, "Your loot will be waiting. Goodbye.")}, true
	}
	return []string{telnet.Colorf(telnet.Dim, "You don't know how to '%s'.", parsed.Command)}, false
}

func usage(cmd string) []string {
	return []string{RenderError("Usage: " + cmd)}
}

func (s *session) tier(arg string) (rarity.ChestTier, bool) {
	for _, t := range s.game.ChestTiers() {
		if strings.EqualFold(t.ID, arg) || strings.EqualFold(t.Name, arg) {
			return t, true
		}
	}
	return rarity.ChestTier{}, false
}

func (s *session) unknownTier(arg string) []string {
	names := make([]string, 0)
	for _, t := range s.game.ChestTiers() {
		names = append(names, t.ID)
	}
	return []string{RenderError(fmt.Sprintf("Unknown chest tier %q. Choose one of: %s.", arg, strings.Join(names, ", ")))}
}

func (s *session) rarityID(arg string) (string, bool) {
	r, ok := s.game.Rarities().Lookup(arg)
	return r.ID, ok
}

func (s *session) inventory(args []string) []string {
	f, err := command.ParseFilter(args, s.rarityID)
	if err != nil {
		return []string{describe(err)}
	}
	items := s.game.Snapshot().Inventory
	filtered := make([]inventory.Descriptor, 0, len(items))
	for _, d := range items {
		if f.Matches(d) {
			filtered = append(filtered, d)
		}
	}
	s.listing = filtered
	return RenderItems("Inventory", filtered, s.game.Rarities())
}

// current returns the listing item numbers refer to, falling back to the
// whole inventory when nothing has been listed since the last change.
func (s *session) current() []inventory.Descriptor {
	if s.listing != nil {
		return s.listing
	}
	return s.game.Snapshot().Inventory
}

func (s *session) odds(args []string) []string {
	if len(args) != 1 {
		return usage("odds <tier>")
	}
	t, ok := s.tier(args[0])
	if !ok {
		return s.unknownTier(args[0])
	}
	dist, _ := s.game.Distribution(t.ID)
	return RenderOdds(t, dist)
}

func (s *session) buy(args []string) []string {
	if len(args) < 1 || len(args) > 2 {
		return usage("buy <tier> [n|bulk]")
	}
	t, ok := s.tier(args[0])
	if !ok {
		return s.unknownTier(args[0])
	}
	n, err := command.ParseAmount(arg(args, 1), s.game.BulkAmount())
	if err != nil {
		return []string{describe(err)}
	}
	if err := s.game.BuyKeys(t.ID, n); err != nil {
		return []string{describe(err)}
	}
	w := s.game.Snapshot().Wallet
	return []string{telnet.Colorf(telnet.Green, "Bought %d %s key(s) for %s. You have %d key(s) and %s left.",
		n, t.Name, inventory.FormatCoins(n*t.Price), w.Keys[t.ID], inventory.FormatCoins(w.Coins))}
}

func (s *session) open(args []string) []string {
	if len(args) < 1 || len(args) > 2 {
		return usage("open <tier> [n|bulk|all]")
	}
	t, ok := s.tier(args[0])
	if !ok {
		return s.unknownTier(args[0])
	}
	var n int
	if strings.EqualFold(arg(args, 1), command.AmountAll) {
		n = min(s.game.Snapshot().Wallet.Keys[t.ID], s.game.MaxOpenAmount())
		if n == 0 {
			return []string{RenderError(fmt.Sprintf("You have no %s keys.", t.Name))}
		}
	} else {
		var err error
		if n, err = command.ParseAmount(arg(args, 1), s.game.BulkAmount()); err != nil {
			return []string{describe(err)}
		}
	}
	items, err := s.game.OpenChests(t.ID, n)
	if err != nil {
		return []string{describe(err)}
	}
	s.listing = nil

	lines := []string{telnet.Colorf(telnet.BrightWhite, "Opened %d %s chest(s):", n, t.Name)}
	if len(items) <= maxListedDrops {
		for _, d := range items {
			lines = append(lines, "  "+RenderItem(d, s.game.Rarities()))
		}
		return lines
	}
	counts := make(map[string]int)
	for _, d := range items {
		counts[d.Rarity]++
	}
	for _, r := range s.game.Rarities().All() {
		if counts[r.ID] > 0 {
			lines = append(lines, fmt.Sprintf("  %s x%d", telnet.Colorize(telnet.Hex(r.Color), r.Name), counts[r.ID]))
		}
	}
	return lines
}

func (s *session) equip(args []string) []string {
	if len(args) != 1 {
		return usage("equip <item#>")
	}
	list := s.current()
	idx, err := command.ParseItemNumbers(args, len(list))
	if err != nil {
		return []string{describe(err)}
	}
	item := list[idx[0]]
	slot, err := s.game.Equip(item.ID)
	if err != nil {
		return []string{describe(err)}
	}
	s.listing = nil
	return []string{fmt.Sprintf("Equipped %s in your %s slot.", RenderItem(item, s.game.Rarities()), slot)}
}

func (s *session) unequip(args []string) []string {
	if len(args) != 1 {
		return usage("unequip <slot>")
	}
	slot, err := inventory.ParseSlot(args[0])
	if err != nil {
		return []string{describe(fmt.Errorf("%w: %w", command.ErrBadArgument, err))}
	}
	d, err := s.game.Unequip(slot)
	if err != nil {
		return []string{describe(err)}
	}
	s.listing = nil
	return []string{fmt.Sprintf("Unequipped %s.", RenderItem(d, s.game.Rarities()))}
}

func (s *session) sell(args []string) []string {
	if len(args) == 0 {
		return usage("sell <item#...>")
	}
	list := s.current()
	idx, err := command.ParseItemNumbers(args, len(list))
	if err != nil {
		return []string{describe(err)}
	}
	ids := make([]string, len(idx))
	for i, n := range idx {
		ids[i] = list[n].ID
	}
	coins, err := s.game.Sell(ids)
	if err != nil {
		return []string{describe(err)}
	}
	s.listing = nil
	return []string{telnet.Colorf(telnet.Green, "Sold %d item(s) for %s.", len(ids), inventory.FormatCoins(coins))}
}

func (s *session) sellAll(args []string) []string {
	f, err := command.ParseFilter(args, s.rarityID)
	if err != nil {
		return []string{describe(err)}
	}
	sold, coins, err := s.game.SellFiltered(f)
	if err != nil {
		return []string{describe(err)}
	}
	if sold == 0 {
		return []string{telnet.Colorize(telnet.Dim, "Nothing to sell.")}
	}
	s.listing = nil
	return []string{telnet.Colorf(telnet.Green, "Sold %d item(s) for %s.", sold, inventory.FormatCoins(coins))}
}

func (s *session) adventure(name string) []string {
	if name == "" {
		return usage("adventure <zone>")
	}
	zone, ok := s.game.Zones().Lookup(name)
	if !ok {
		return []string{RenderError(fmt.Sprintf("Unknown zone %q. Type 'zones' for a list.", name))}
	}
	if _, err := s.game.StartAdventure(zone.ID); err != nil {
		if errors.Is(err, combat.ErrLevelTooLow) {
			return []string{RenderError(fmt.Sprintf("Need level %d to enter %s!", zone.MinLevel, zone.Name))}
		}
		return []string{describe(err)}
	}
	return nil
}

func (s *session) upgrade() []string {
	if err := s.game.UpgradeAdventureSlots(); err != nil {
		return []string{describe(err)}
	}
	w := s.game.Snapshot().Wallet
	return []string{telnet.Colorf(telnet.Green, "You can now run %d adventures at once. The next slot costs %s.",
		w.MaxAdventures, inventory.FormatCoins(w.UpgradeCost))}
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
