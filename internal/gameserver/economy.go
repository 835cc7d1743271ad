package gameserver

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/lootgame/internal/game/inventory"
)

// BuyKeys buys amount keys of tierID at the tier's price each.
//
// Precondition: amount >= 1.
// Postcondition: on ErrInsufficientFunds or ErrInvalidSelection coins and keys
// are unchanged.
func (g *Game) BuyKeys(tierID string, amount int) error {
	return g.loop.Do(func() error {
		tier, ok := g.loot.Tier(tierID)
		if !ok {
			return g.reject("buy keys", fmt.Errorf("%w: unknown chest tier %q", ErrInvalidSelection, tierID))
		}
		if amount < 1 {
			return g.reject("buy keys", fmt.Errorf("%w: amount must be >= 1, got %d", ErrInvalidSelection, amount))
		}
		// Compare by division so a huge amount cannot wrap the total.
		if tier.Price > 0 && amount > g.wallet.Coins/tier.Price {
			cost := "more than " + inventory.FormatCoins(g.wallet.Coins)
			if amount <= math.MaxInt/tier.Price {
				cost = inventory.FormatCoins(tier.Price * amount)
			}
			return g.reject("buy keys", fmt.Errorf("%w: %d %s key(s) cost %s, have %s",
				ErrInsufficientFunds, amount, tier.Name, cost, inventory.FormatCoins(g.wallet.Coins)))
		}
		total := tier.Price * amount
		g.wallet.Coins -= total
		g.stats.CoinsSpent += total
		g.wallet.Keys[tier.ID] += amount
		g.logger.Info("bought keys",
			zap.String("tier", tier.ID),
			zap.Int("amount", amount),
			zap.Int("cost", total),
		)
		return nil
	})
}

// OpenChests spends amount keys of tierID and adds the rolled items to the
// inventory.
//
// Precondition: 1 <= amount <= MaxOpenAmount().
// Postcondition: returns exactly amount descriptors, or ErrInsufficientKeys /
// ErrInvalidSelection with keys and inventory unchanged.
func (g *Game) OpenChests(tierID string, amount int) ([]inventory.Descriptor, error) {
	var items []inventory.Descriptor
	err := g.loop.Do(func() error {
		tier, ok := g.loot.Tier(tierID)
		if !ok {
			return g.reject("open chests", fmt.Errorf("%w: unknown chest tier %q", ErrInvalidSelection, tierID))
		}
		if amount < 1 || amount > g.cfg.MaxOpenAmount {
			return g.reject("open chests", fmt.Errorf("%w: amount must be in 1-%d, got %d",
				ErrInvalidSelection, g.cfg.MaxOpenAmount, amount))
		}
		if g.wallet.Keys[tier.ID] < amount {
			return g.reject("open chests", fmt.Errorf("%w: need %d %s key(s), have %d",
				ErrInsufficientKeys, amount, tier.Name, g.wallet.Keys[tier.ID]))
		}
		rolled, err := g.loot.RollItems(amount, tier.ID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSelection, err)
		}
		g.wallet.Keys[tier.ID] -= amount
		g.inv.Add(rolled...)
		g.stats.ChestsOpened[tier.ID] += amount
		g.stats.TotalChestsOpened += amount
		for _, d := range rolled {
			g.stats.RaritiesFound[d.Rarity]++
		}
		g.logger.Info("opened chests",
			zap.String("tier", tier.ID),
			zap.Int("amount", amount),
		)
		items = rolled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Equip moves an inventory item into its slot. A displaced item returns to
// the end of the inventory.
//
// Postcondition: returns the slot filled, or ErrInvalidSelection with nothing changed.
func (g *Game) Equip(itemID string) (inventory.Slot, error) {
	var slot inventory.Slot
	err := g.loop.Do(func() error {
		idx, ok := g.inv.Find(itemID)
		if !ok {
			return g.reject("equip", fmt.Errorf("%w: %w: %q", ErrInvalidSelection, inventory.ErrItemNotFound, itemID))
		}
		d, _ := g.inv.At(idx)
		item, err := g.resolver.Materialize(d)
		if err != nil {
			return g.reject("equip", fmt.Errorf("%w: %w", ErrInvalidSelection, err))
		}
		if _, err := g.inv.RemoveAt(idx); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSelection, err)
		}
		displaced, had := g.char.Equip(item)
		if had {
			g.inv.Add(displaced.Descriptor)
		}
		slot = item.Slot()
		g.logger.Debug("equipped item",
			zap.String("item", d.String()),
			zap.String("slot", string(slot)),
		)
		return nil
	})
	return slot, err
}

// Unequip returns the item in slot to the inventory.
//
// Postcondition: returns the removed descriptor, or ErrInvalidSelection when
// the slot is empty.
func (g *Game) Unequip(slot inventory.Slot) (inventory.Descriptor, error) {
	var d inventory.Descriptor
	err := g.loop.Do(func() error {
		removed, ok := g.char.Unequip(slot)
		if !ok {
			return g.reject("unequip", fmt.Errorf("%w: nothing equipped in %s slot", ErrInvalidSelection, slot))
		}
		g.inv.Add(removed)
		d = removed
		return nil
	})
	return d, err
}

// Sell removes the given items and credits their rarity's sell value.
//
// Postcondition: either every item is sold or, on ErrInvalidSelection, none is.
func (g *Game) Sell(itemIDs []string) (int, error) {
	var coins int
	err := g.loop.Do(func() error {
		if len(itemIDs) == 0 {
			return g.reject("sell", fmt.Errorf("%w: no items selected", ErrInvalidSelection))
		}
		removed, err := g.inv.RemoveAll(itemIDs)
		if err != nil {
			return g.reject("sell", fmt.Errorf("%w: %w", ErrInvalidSelection, err))
		}
		coins = g.credit(removed)
		return nil
	})
	return coins, err
}

// SellFiltered sells every inventory item matching f. Selling nothing is not
// an error.
//
// Postcondition: returns the number of items sold and the coins earned.
func (g *Game) SellFiltered(f inventory.Filter) (int, int, error) {
	var sold, coins int
	err := g.loop.Do(func() error {
		entries := g.inv.Filter(f)
		if len(entries) == 0 {
			return nil
		}
		ids := make([]string, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.Item.ID)
		}
		removed, err := g.inv.RemoveAll(ids)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSelection, err)
		}
		sold = len(removed)
		coins = g.credit(removed)
		return nil
	})
	return sold, coins, err
}

// credit pays out the sell value of items.
func (g *Game) credit(items []inventory.Descriptor) int {
	total := 0
	for _, d := range items {
		v, _ := g.rarities.SellValue(d.Rarity)
		total += v
	}
	g.wallet.Coins += total
	g.stats.CoinsEarned += total
	g.stats.ItemsSold += len(items)
	g.logger.Info("sold items",
		zap.Int("count", len(items)),
		zap.Int("coins", total),
	)
	return total
}

// UpgradeAdventureSlots buys one more concurrent adventure slot. The next
// upgrade costs UpgradeGrowth times as much, floored.
func (g *Game) UpgradeAdventureSlots() error {
	return g.loop.Do(func() error {
		cost := g.wallet.UpgradeCost
		if g.wallet.Coins < cost {
			return g.reject("upgrade", fmt.Errorf("%w: upgrade costs %s, have %s",
				ErrInsufficientFunds, inventory.FormatCoins(cost), inventory.FormatCoins(g.wallet.Coins)))
		}
		g.wallet.Coins -= cost
		g.stats.CoinsSpent += cost
		g.wallet.MaxAdventures++
		g.wallet.UpgradeCost = int(math.Floor(float64(cost) * g.cfg.UpgradeGrowth))
		g.logger.Info("upgraded adventure slots",
			zap.Int("max_adventures", g.wallet.MaxAdventures),
			zap.Int("next_cost", g.wallet.UpgradeCost),
		)
		return nil
	})
}

// reject logs a refused command and returns err unchanged.
func (g *Game) reject(op string, err error) error {
	g.logger.Debug("rejected command", zap.String("op", op), zap.Error(err))
	return err
}
