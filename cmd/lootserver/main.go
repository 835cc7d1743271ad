// Package main runs the loot game as a Telnet server backed by one headless
// game engine.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/lootgame/content"
	"github.com/cory-johannsen/lootgame/internal/config"
	"github.com/cory-johannsen/lootgame/internal/frontend/handlers"
	"github.com/cory-johannsen/lootgame/internal/frontend/telnet"
	"github.com/cory-johannsen/lootgame/internal/game/combat"
	"github.com/cory-johannsen/lootgame/internal/game/dice"
	"github.com/cory-johannsen/lootgame/internal/game/inventory"
	"github.com/cory-johannsen/lootgame/internal/game/rarity"
	"github.com/cory-johannsen/lootgame/internal/game/scheduler"
	"github.com/cory-johannsen/lootgame/internal/gameserver"
	"github.com/cory-johannsen/lootgame/internal/observability"
	"github.com/cory-johannsen/lootgame/internal/scripting"
	"github.com/cory-johannsen/lootgame/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file; empty = defaults and environment only")
	contentDir := flag.String("content", "", "catalog directory; overrides content.dir (empty = embedded catalog)")
	scriptDir := flag.String("scripts", "", "Lua script root; overrides content.script_dir (empty = scripting disabled)")
	resolution := flag.Duration("resolution", 50*time.Millisecond, "how often the scheduler catches up with the wall clock")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *contentDir != "" {
		cfg.Content.Dir = *contentDir
	}
	if *scriptDir != "" {
		cfg.Content.ScriptDir = *scriptDir
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting loot server",
		zap.String("telnet_addr", cfg.Telnet.Addr()),
		zap.Duration("tick_interval", cfg.Game.TickInterval),
	)

	catStart := time.Now()
	cat, err := content.LoadDir(cfg.Content.Dir)
	if err != nil {
		if errors.Is(err, rarity.ErrMisconfiguredRarityTable) {
			logger.Fatal("rarity table is misconfigured", zap.Error(err))
		}
		logger.Fatal("loading catalog", zap.String("dir", cfg.Content.Dir), zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.Int("rarities", cat.Rarities.Len()),
		zap.Int("chest_tiers", len(cat.Chests)),
		zap.Int("zones", len(cat.Zones)),
		zap.Duration("elapsed", time.Since(catStart)),
	)

	src := dice.NewSource(cfg.Game.Seed)

	var hook combat.StatsHook
	if cfg.Content.ScriptDir != "" {
		scriptMgr := scripting.NewManager(dice.NewLoggedRoller(src, logger.Named("lua-dice")), logger.Named("scripting"))
		defer scriptMgr.Close()
		loaded, err := scriptMgr.LoadTree(os.DirFS(cfg.Content.ScriptDir), cfg.Content.ScriptInstructionLimit)
		if err != nil {
			logger.Fatal("loading scripts", zap.String("dir", cfg.Content.ScriptDir), zap.Error(err))
		}
		logger.Info("scripts loaded", zap.Strings("zones", loaded))
		hook = combat.StatsHookFunc(func(zoneID, name string, level int) (inventory.Stats, bool) {
			s, ok := scriptMgr.EnemyStats(zoneID, name, level)
			if !ok {
				return inventory.Stats{}, false
			}
			return inventory.Stats{Health: s.Health, MaxHealth: s.MaxHealth, Attack: s.Attack, Defense: s.Defense}, true
		})
	}

	loop := scheduler.NewLoop(time.Now())
	game, err := gameserver.NewGame(cfg.Game, cat, loop, src, hook, logger.Named("game"))
	if err != nil {
		logger.Fatal("creating game", zap.Error(err))
	}

	driver := scheduler.NewDriver(loop, *resolution, logger.Named("scheduler"))
	journal := observability.NewJournal(game, cfg.Game.SubscriberBuffer, logger.Named("journal"))
	console := handlers.NewConsoleHandler(game, cfg.Game.SubscriberBuffer, logger.Named("console"))
	acceptor := telnet.NewAcceptor(cfg.Telnet, console, logger.Named("telnet"))

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("scheduler", driver)
	lifecycle.Add("journal", journal)
	lifecycle.Add("telnet", acceptor)

	logger.Info("loot server initialized", zap.Duration("startup", time.Since(start)))

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
}
