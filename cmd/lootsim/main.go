// Package main runs headless loot simulations: it opens a batch of chests
// and compares the rarity histogram with the tier's expected distribution,
// and can play one adventure on a simulated clock.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/lootgame/content"
	"github.com/cory-johannsen/lootgame/internal/config"
	"github.com/cory-johannsen/lootgame/internal/game/dice"
	"github.com/cory-johannsen/lootgame/internal/game/scheduler"
	"github.com/cory-johannsen/lootgame/internal/gameserver"
	"github.com/cory-johannsen/lootgame/internal/observability"
)

// options are the simulation parameters.
type options struct {
	Tier  string
	Count int
	Zone  string
}

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = defaults and environment only")
	contentDir := flag.String("content", "", "catalog directory (empty = embedded catalog)")
	tier := flag.String("tier", "basic", "chest tier to simulate")
	count := flag.Int("n", 10000, "number of chests to open")
	zone := flag.String("zone", "", "zone to run one adventure in after the chests (empty = none)")
	seed := flag.Int64("seed", 0, "random seed; overrides game.seed (0 = keep configured)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *contentDir != "" {
		cfg.Content.Dir = *contentDir
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	cat, err := content.LoadDir(cfg.Content.Dir)
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}

	opts := options{Tier: *tier, Count: *count, Zone: *zone}
	if err := simulate(os.Stdout, cfg.Game, cat, opts, logger); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}
}

// simulate runs the chest batch and the optional adventure against a fresh
// game on a manual clock, writing reports to w.
func simulate(w io.Writer, cfg config.GameConfig, cat *content.Catalog, opts options, logger *zap.Logger) error {
	loop := scheduler.NewLoop(time.Unix(0, 0).UTC())
	game, err := gameserver.NewGame(cfg, cat, loop, dice.NewSource(cfg.Seed), nil, logger)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	if err := histogram(w, game, opts.Tier, opts.Count); err != nil {
		return err
	}
	if opts.Zone == "" {
		return nil
	}
	return adventure(w, game, loop, opts.Zone)
}

func histogram(w io.Writer, game *gameserver.Game, tierID string, n int) error {
	dist, ok := game.Distribution(tierID)
	if !ok {
		return fmt.Errorf("%w: unknown chest tier %q", gameserver.ErrInvalidSelection, tierID)
	}
	items, err := game.RollItems(n, tierID)
	if err != nil {
		return fmt.Errorf("rolling %d items: %w", n, err)
	}
	counts := make(map[string]int)
	for _, d := range items {
		counts[d.Rarity]++
	}

	fmt.Fprintf(w, "Opened %d %s chests\n", n, tierID)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "rarity\tcount\tobserved\texpected")
	for _, r := range game.Rarities().All() {
		expected := dist.Probability(r.ID)
		if expected == 0 && counts[r.ID] == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%.4f%%\t%.4f%%\n",
			r.Name, counts[r.ID], 100*float64(counts[r.ID])/float64(n), 100*expected)
	}
	return tw.Flush()
}

func adventure(w io.Writer, game *gameserver.Game, loop *scheduler.Loop, zoneID string) error {
	zone, ok := game.Zones().Lookup(zoneID)
	if !ok {
		return fmt.Errorf("%w: unknown zone %q", gameserver.ErrInvalidSelection, zoneID)
	}
	events, cancel := game.Subscribe(4096)
	defer cancel()

	if _, err := game.StartAdventure(zone.ID); err != nil {
		return fmt.Errorf("starting adventure: %w", err)
	}
	loop.Advance(zone.Duration)

	for {
		select {
		case e := <-events:
			if e.Kind == gameserver.EventTick {
				fmt.Fprintf(w, "%6s  %s\n", e.At.Sub(time.Unix(0, 0)), e.Line)
			}
		default:
			return nil
		}
	}
}
