package gameserver

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/lootgame/internal/game/combat"
)

// StartAdventure sends the character into zoneID. The adventure ticks every
// tick interval and expires after the zone's duration.
//
// Starting while no adventure is running restores the character to full
// health first.
//
// Postcondition: returns the new instance ID, or ErrInvalidSelection,
// combat.ErrConcurrencyCapReached, or combat.ErrLevelTooLow with nothing changed.
func (g *Game) StartAdventure(zoneID string) (string, error) {
	var id string
	err := g.loop.Do(func() error {
		zone, ok := g.zones.Lookup(zoneID)
		if !ok {
			return g.reject("start adventure", fmt.Errorf("%w: unknown zone %q", ErrInvalidSelection, zoneID))
		}
		idle := g.engine.Running() == 0
		now := g.loop.Now()
		adv, err := g.engine.Start(zone, g.char, g.wallet.MaxAdventures, now)
		if err != nil {
			return g.reject("start adventure", err)
		}
		if idle {
			g.char.Heal()
		}

		// Expiry is queued first so it wins a tie with a tick due at the same instant.
		expiry := g.loop.After(zone.Duration, func(at time.Time) { g.expire(adv.ID, at) })
		tick := g.loop.Every(g.cfg.TickInterval, func(at time.Time) { g.tick(adv.ID, at) })
		g.tasks[adv.ID] = adventureTasks{tick: tick, expiry: expiry}

		g.logger.Info("adventure started",
			zap.String("instance", adv.ID),
			zap.String("zone", zone.ID),
			zap.Time("expires_at", adv.ExpiresAt),
		)
		g.bus.publish(Event{
			Kind:       EventTick,
			At:         now,
			InstanceID: adv.ID,
			ZoneID:     zone.ID,
			Line:       fmt.Sprintf("Entering %s...", zone.Name),
		})
		id = adv.ID
		return nil
	})
	return id, err
}

// tick runs one exchange of adventure id. Runs on the loop.
func (g *Game) tick(id string, at time.Time) {
	adv, ok := g.engine.Get(id)
	if !ok {
		return
	}
	res := adv.Tick(g.char, g.spawner)
	for _, line := range res.Lines {
		g.bus.publish(Event{Kind: EventTick, At: at, InstanceID: id, ZoneID: adv.Zone.ID, Line: line})
	}
	if res.CharacterDefeated {
		g.defeat(adv, at)
	}
}

// defeat retires an adventure that dropped the character to zero health.
// Sibling adventures keep running on the shared character.
func (g *Game) defeat(adv *combat.Adventure, at time.Time) {
	g.retire(adv.ID)
	g.stats.AdventuresLost++
	// The enemy still standing is not counted.
	g.stats.TotalEnemiesDefeated += adv.EnemiesDefeated - 1
	g.logger.Info("character defeated",
		zap.String("instance", adv.ID),
		zap.String("zone", adv.Zone.ID),
		zap.Int("ticks", adv.Ticks),
	)
	g.bus.publish(Event{
		Kind:            EventCharacterDefeated,
		At:              at,
		InstanceID:      adv.ID,
		ZoneID:          adv.Zone.ID,
		EnemiesDefeated: adv.EnemiesDefeated,
	})
}

// expire completes adventure id and pays out its rewards. It is a no-op
// unless the adventure is still running. Runs on the loop.
func (g *Game) expire(id string, at time.Time) {
	adv, ok := g.engine.Get(id)
	if !ok || adv.Status != combat.StatusRunning {
		return
	}
	adv.Status = combat.StatusCompleted
	g.retire(id)

	rewards := combat.RollRewards(adv.Zone, adv.EnemiesDefeated, g.dice)
	g.wallet.Coins += rewards.Coins
	g.stats.CoinsEarned += rewards.Coins
	g.stats.AdventuresCompleted++
	g.stats.TotalEnemiesDefeated += adv.EnemiesDefeated
	g.stats.TotalExpEarned += rewards.Experience

	before := g.char.Level
	gained := g.char.GainExperience(rewards.Experience)
	g.char.Heal()

	g.logger.Info("adventure completed",
		zap.String("instance", id),
		zap.String("zone", adv.Zone.ID),
		zap.Int("enemies", adv.EnemiesDefeated),
		zap.Int("coins", rewards.Coins),
		zap.Int("exp", rewards.Experience),
	)

	tag := "[" + adv.Zone.Name + "]"
	for _, line := range []string{
		tag + " Adventure Complete!",
		fmt.Sprintf("%s Enemies Defeated: %d", tag, adv.EnemiesDefeated),
		fmt.Sprintf("%s Earned: %d coins and %d exp!", tag, rewards.Coins, rewards.Experience),
	} {
		g.bus.publish(Event{Kind: EventTick, At: at, InstanceID: id, ZoneID: adv.Zone.ID, Line: line})
	}
	g.bus.publish(Event{
		Kind:            EventAdventureCompleted,
		At:              at,
		InstanceID:      id,
		ZoneID:          adv.Zone.ID,
		Coins:           rewards.Coins,
		Experience:      rewards.Experience,
		EnemiesDefeated: adv.EnemiesDefeated,
	})
	for i := 1; i <= gained; i++ {
		g.logger.Info("level up", zap.Int("level", before+i))
		g.bus.publish(Event{Kind: EventLevelUp, At: at, InstanceID: id, Level: before + i})
	}
}

// retire cancels both scheduled tasks of id and drops it from the engine.
func (g *Game) retire(id string) {
	if t, ok := g.tasks[id]; ok {
		t.tick.Cancel()
		t.expiry.Cancel()
		delete(g.tasks, id)
	}
	g.engine.Remove(id)
}
