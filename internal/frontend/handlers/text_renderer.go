package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/cory-johannsen/lootgame/internal/frontend/telnet"
	"github.com/cory-johannsen/lootgame/internal/game/command"
	"github.com/cory-johannsen/lootgame/internal/game/inventory"
	"github.com/cory-johannsen/lootgame/internal/game/rarity"
	"github.com/cory-johannsen/lootgame/internal/game/world"
	"github.com/cory-johannsen/lootgame/internal/gameserver"
)

// RenderItem formats a descriptor in its rarity color.
func RenderItem(d inventory.Descriptor, rarities *rarity.Table) string {
	r, _ := rarities.Get(d.Rarity)
	return telnet.Colorize(telnet.Hex(r.Color), d.String())
}

// RenderItems formats a numbered item list. Numbers are 1-based positions in
// items, which is the listing equip and sell refer to.
func RenderItems(title string, items []inventory.Descriptor, rarities *rarity.Table) []string {
	if len(items) == 0 {
		return []string{telnet.Colorize(telnet.Dim, "No items.")}
	}
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, telnet.Colorf(telnet.BrightWhite, "%s (%d):", title, len(items)))
	for i, d := range items {
		lines = append(lines, fmt.Sprintf("  %s%3d.%s %s", telnet.BrightBlack, i+1, telnet.Reset, RenderItem(d, rarities)))
	}
	return lines
}

// RenderStatus formats the character sheet, equipment, and wallet.
func RenderStatus(s gameserver.State, tiers []rarity.ChestTier, rarities *rarity.Table) []string {
	c := s.Character
	stats := c.Computed()
	lines := []string{
		telnet.Colorf(telnet.BrightYellow, "=== Level %d Adventurer ===", c.Level),
		fmt.Sprintf("Experience: %d/%d", c.Experience, c.ExperienceToNext),
		fmt.Sprintf("Health: %s  Attack: %d  Defense: %d",
			renderHealth(stats.Health, stats.MaxHealth), stats.Attack, stats.Defense),
		telnet.Colorize(telnet.Cyan, "Equipment:"),
	}
	for _, slot := range inventory.Slots() {
		label := telnet.PadRight(titleCase(string(slot))+":", 10)
		item, ok := c.Equipped(slot)
		if !ok {
			lines = append(lines, "  "+label+telnet.Colorize(telnet.Dim, "(empty)"))
			continue
		}
		lines = append(lines, "  "+label+RenderItem(item.Descriptor, rarities))
	}

	keys := make([]string, 0, len(tiers))
	for _, t := range tiers {
		keys = append(keys, fmt.Sprintf("%s %d", t.Name, s.Wallet.Keys[t.ID]))
	}
	lines = append(lines,
		telnet.Colorf(telnet.Yellow, "Coins: %s", inventory.FormatCoins(s.Wallet.Coins)),
		"Keys: "+strings.Join(keys, " | "),
		fmt.Sprintf("Adventures: %d/%d running, next slot costs %s",
			len(s.Adventures), s.Wallet.MaxAdventures, inventory.FormatCoins(s.Wallet.UpgradeCost)),
	)
	return lines
}

func renderHealth(health, maxHealth int) string {
	color := telnet.Green
	switch {
	case health <= 0:
		color = telnet.Red
	case health*4 <= maxHealth:
		color = telnet.Yellow
	}
	return telnet.Colorf(color, "%d/%d", health, maxHealth)
}

// RenderStats formats the lifetime counters.
func RenderStats(s gameserver.Stats, tiers []rarity.ChestTier, rarities *rarity.Table) []string {
	lines := []string{
		telnet.Colorize(telnet.BrightYellow, "=== Statistics ==="),
		fmt.Sprintf("Chests opened: %d", s.TotalChestsOpened),
	}
	for _, t := range tiers {
		lines = append(lines, fmt.Sprintf("  %s %d", telnet.PadRight(t.Name+":", 12), s.ChestsOpened[t.ID]))
	}
	lines = append(lines, "Rarities found:")
	for _, r := range rarities.All() {
		lines = append(lines, fmt.Sprintf("  %s %d",
			telnet.Colorize(telnet.Hex(r.Color), telnet.PadRight(r.Name+":", 12)), s.RaritiesFound[r.ID]))
	}
	lines = append(lines,
		fmt.Sprintf("Coins spent: %s", inventory.FormatCoins(s.CoinsSpent)),
		fmt.Sprintf("Coins earned: %s", inventory.FormatCoins(s.CoinsEarned)),
		fmt.Sprintf("Items sold: %d", s.ItemsSold),
		fmt.Sprintf("Adventures completed: %d", s.AdventuresCompleted),
		fmt.Sprintf("Adventures lost: %d", s.AdventuresLost),
		fmt.Sprintf("Enemies defeated: %d", s.TotalEnemiesDefeated),
		fmt.Sprintf("Experience earned: %d", s.TotalExpEarned),
	)
	return lines
}

// RenderOdds formats a tier's price and normalized drop chances.
func RenderOdds(tier rarity.ChestTier, dist *rarity.Distribution) []string {
	lines := []string{telnet.Colorf(telnet.BrightYellow, "%s chest (%s per key):", tier.Name, inventory.FormatCoins(tier.Price))}
	for _, w := range dist.Weights() {
		lines = append(lines, fmt.Sprintf("  %s %s",
			telnet.Colorize(telnet.Hex(w.Rarity.Color), telnet.PadRight(w.Rarity.Name, 10)), formatPercent(w.Probability)))
	}
	return lines
}

// formatPercent keeps tiny probabilities readable instead of rounding them to zero.
func formatPercent(p float64) string {
	pct := p * 100
	if pct >= 0.1 {
		return fmt.Sprintf("%.2f%%", pct)
	}
	return fmt.Sprintf("%.4f%%", pct)
}

// RenderZones formats the zone list, dimming zones above level.
func RenderZones(zones []*world.Zone, level int) []string {
	lines := []string{telnet.Colorize(telnet.BrightYellow, "Adventure zones:")}
	for _, z := range zones {
		line := fmt.Sprintf("  %s lvl %-3d %s coins, %s exp, %s",
			telnet.PadRight(z.Name, 16), z.MinLevel, z.CoinReward, z.ExpReward, z.Duration)
		if level < z.MinLevel {
			line = telnet.Colorize(telnet.Dim, line)
		}
		lines = append(lines, line)
	}
	return lines
}

// RenderAdventures formats the running adventures.
func RenderAdventures(views []gameserver.AdventureView) []string {
	if len(views) == 0 {
		return []string{telnet.Colorize(telnet.Dim, "No adventures running.")}
	}
	lines := []string{telnet.Colorf(telnet.BrightYellow, "Running adventures (%d):", len(views))}
	for _, v := range views {
		enemy := "searching..."
		if v.Enemy != nil && v.Enemy.Alive() {
			enemy = fmt.Sprintf("fighting %s (%d/%d HP)", v.Enemy.Name, v.Enemy.Health, v.Enemy.MaxHealth)
		}
		lines = append(lines, fmt.Sprintf("  %s %s left, %d defeated, %s",
			telnet.PadRight(v.ZoneName, 16), v.Remaining.Round(time.Second), v.EnemiesDefeated, enemy))
	}
	return lines
}

// RenderEvent formats a game event, or returns "" for events that carry no text.
func RenderEvent(e gameserver.Event) string {
	switch e.Kind {
	case gameserver.EventTick:
		return renderLogLine(e.Line)
	case gameserver.EventLevelUp:
		return telnet.Colorf(telnet.BrightYellow, "*** Level up! You are now level %d. ***", e.Level)
	}
	return ""
}

func renderLogLine(line string) string {
	switch {
	case strings.Contains(line, "You have been defeated"):
		return telnet.Colorize(telnet.Red, line)
	case strings.Contains(line, "deals"):
		return telnet.Colorize(telnet.Yellow, line)
	case strings.Contains(line, "Adventure Complete"), strings.Contains(line, "Earned:"):
		return telnet.Colorize(telnet.Green, line)
	}
	return line
}

// RenderHelp lists commands grouped by category.
func RenderHelp(registry *command.Registry) []string {
	lines := []string{telnet.Colorize(telnet.BrightWhite, "Available commands:")}
	byCategory := registry.CommandsByCategory()
	for _, cat := range command.CategoryOrder {
		cmds := byCategory[cat]
		if len(cmds) == 0 {
			continue
		}
		lines = append(lines, telnet.Colorf(telnet.BrightYellow, "  %s:", titleCase(cat)))
		for _, cmd := range cmds {
			usage := strings.TrimSpace(cmd.Name + " " + cmd.Usage)
			aliases := ""
			if len(cmd.Aliases) > 0 {
				aliases = " (" + strings.Join(cmd.Aliases, ", ") + ")"
			}
			lines = append(lines, "    "+telnet.Colorize(telnet.Green, telnet.PadRight(usage, 26))+cmd.Help+aliases)
		}
	}
	return lines
}

// RenderError formats a rejected command.
func RenderError(msg string) string {
	return telnet.Colorize(telnet.Red, msg)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
