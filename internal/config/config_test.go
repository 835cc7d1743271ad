package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Telnet: TelnetConfig{
			Host:         "0.0.0.0",
			Port:         4000,
			ReadTimeout:  5 * time.Minute,
			WriteTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Game: GameConfig{
			TickInterval:     time.Second,
			StartingCoins:    2000,
			MaxAdventures:    1,
			UpgradeCost:      100000,
			UpgradeGrowth:    1.5,
			BulkAmount:       10,
			MaxOpenAmount:    10000,
			SubscriberBuffer: 64,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestTelnetAddr(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "0.0.0.0:4000", cfg.Telnet.Addr())
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, time.Second, cfg.Game.TickInterval)
	assert.Equal(t, 2000, cfg.Game.StartingCoins)
	assert.Equal(t, 1, cfg.Game.MaxAdventures)
	assert.Equal(t, 100000, cfg.Game.UpgradeCost)
	assert.InDelta(t, 1.5, cfg.Game.UpgradeGrowth, 1e-9)
	assert.Equal(t, 10, cfg.Game.BulkAmount)
	assert.Equal(t, int64(0), cfg.Game.Seed)
	assert.Empty(t, cfg.Content.Dir)
	assert.Equal(t, 4000, cfg.Telnet.Port)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
telnet:
  host: 127.0.0.1
  port: 4001
  read_timeout: 1m
  write_timeout: 10s
logging:
  level: debug
  format: console
game:
  tick_interval: 250ms
  starting_coins: 500
  seed: 42
content:
  script_dir: /tmp/scripts
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4001, cfg.Telnet.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Game.TickInterval)
	assert.Equal(t, 500, cfg.Game.StartingCoins)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, 10, cfg.Game.BulkAmount)
	assert.Equal(t, "/tmp/scripts", cfg.Content.ScriptDir)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LOOTGAME_GAME_STARTING_COINS", "77")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 77, cfg.Game.StartingCoins)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadFromViper_Invalid(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("game.max_adventures", 0)
	_, err := LoadFromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game.max_adventures")
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateTelnetPort(t *testing.T) {
	cfg := validConfig()
	cfg.Telnet.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateGame(t *testing.T) {
	cases := map[string]func(*GameConfig){
		"tick_interval":     func(g *GameConfig) { g.TickInterval = 0 },
		"starting_coins":    func(g *GameConfig) { g.StartingCoins = -1 },
		"max_adventures":    func(g *GameConfig) { g.MaxAdventures = 0 },
		"upgrade_cost":      func(g *GameConfig) { g.UpgradeCost = -5 },
		"upgrade_growth":    func(g *GameConfig) { g.UpgradeGrowth = 0.5 },
		"bulk_amount":       func(g *GameConfig) { g.BulkAmount = 0 },
		"subscriber_buffer": func(g *GameConfig) { g.SubscriberBuffer = 0 },
		"max_open_amount":   func(g *GameConfig) { g.MaxOpenAmount = 0 },
	}
	for key, mutate := range cases {
		t.Run(key, func(t *testing.T) {
			cfg := validConfig()
			mutate(&cfg.Game)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "game."+key)
		})
	}
}

func TestValidateGame_MaxOpenAmountUpperBound(t *testing.T) {
	cfg := validConfig()
	cfg.Game.MaxOpenAmount = 2_000_000
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game.max_open_amount must be in 1-1000000")
}

func TestValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Telnet.Port = 0
	cfg.Game.BulkAmount = 0
	cfg.Content.ScriptInstructionLimit = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telnet.port")
	assert.Contains(t, err.Error(), "game.bulk_amount")
	assert.Contains(t, err.Error(), "content.script_instruction_limit")
}

// Property-based tests

func TestPropertyValidPortRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		port := rapid.IntRange(1, 65535).Draw(t, "port")
		cfg := validConfig()
		cfg.Telnet.Port = port
		err := cfg.Validate()
		if err != nil {
			t.Fatalf("valid port %d rejected: %v", port, err)
		}
	})
}

func TestPropertyInvalidPortRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		port := rapid.OneOf(
			rapid.IntRange(-1000, 0),
			rapid.IntRange(65536, 100000),
		).Draw(t, "port")
		cfg := validConfig()
		cfg.Telnet.Port = port
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("invalid port %d accepted", port)
		}
	})
}

func TestPropertyMaxAdventuresPositive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(-100, 100).Draw(t, "max_adventures")
		cfg := validConfig()
		cfg.Game.MaxAdventures = n
		err := cfg.Validate()
		if (n >= 1) != (err == nil) {
			t.Fatalf("max_adventures %d: validate returned %v", n, err)
		}
	})
}
