// Package config provides Viper-based configuration loading for the loot game server.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// maxOpenLimit matches the largest batch the loot roller accepts.
const maxOpenLimit = 1_000_000

// TelnetConfig holds Telnet acceptor settings.
type TelnetConfig struct {
	// Host is the bind address for the Telnet listener.
	Host string `mapstructure:"host"`
	// Port is the TCP port for the Telnet listener.
	Port int `mapstructure:"port"`
	// ReadTimeout is the per-read timeout for Telnet connections.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the per-write timeout for Telnet connections.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns the "host:port" listen address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (t TelnetConfig) Addr() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// GameConfig holds the economy and timing knobs of a game.
type GameConfig struct {
	// TickInterval is the combat tick period of every adventure.
	TickInterval time.Duration `mapstructure:"tick_interval"`
	// StartingCoins is the wallet balance of a new game.
	StartingCoins int `mapstructure:"starting_coins"`
	// MaxAdventures is the initial concurrent adventure cap.
	MaxAdventures int `mapstructure:"max_adventures"`
	// UpgradeCost is the price of the first adventure slot upgrade.
	UpgradeCost int `mapstructure:"upgrade_cost"`
	// UpgradeGrowth multiplies the upgrade price after each purchase.
	UpgradeGrowth float64 `mapstructure:"upgrade_growth"`
	// BulkAmount is the count used by bulk buy and open commands.
	BulkAmount int `mapstructure:"bulk_amount"`
	// MaxOpenAmount caps the chests opened by one command.
	MaxOpenAmount int `mapstructure:"max_open_amount"`
	// SubscriberBuffer is the event channel capacity handed to each console.
	SubscriberBuffer int `mapstructure:"subscriber_buffer"`
	// Seed selects deterministic randomness when non-zero.
	Seed int64 `mapstructure:"seed"`
}

// ContentConfig locates catalog data and zone scripts.
type ContentConfig struct {
	// Dir overrides the embedded catalog when non-empty.
	Dir string `mapstructure:"dir"`
	// ScriptDir holds per-zone Lua scripts; empty disables scripting.
	ScriptDir string `mapstructure:"script_dir"`
	// ScriptInstructionLimit bounds a single hook call; 0 means unlimited.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Telnet  TelnetConfig  `mapstructure:"telnet"`
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
	Content ContentConfig `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateTelnet(c.Telnet); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateTelnet(t TelnetConfig) error {
	var errs []string
	if t.Port < 1 || t.Port > 65535 {
		errs = append(errs, fmt.Sprintf("telnet.port must be 1-65535, got %d", t.Port))
	}
	if t.ReadTimeout < 0 {
		errs = append(errs, "telnet.read_timeout must not be negative")
	}
	if t.WriteTimeout < 0 {
		errs = append(errs, "telnet.write_timeout must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.TickInterval <= 0 {
		errs = append(errs, fmt.Sprintf("game.tick_interval must be > 0, got %s", g.TickInterval))
	}
	if g.StartingCoins < 0 {
		errs = append(errs, fmt.Sprintf("game.starting_coins must be >= 0, got %d", g.StartingCoins))
	}
	if g.MaxAdventures < 1 {
		errs = append(errs, fmt.Sprintf("game.max_adventures must be >= 1, got %d", g.MaxAdventures))
	}
	if g.UpgradeCost < 0 {
		errs = append(errs, fmt.Sprintf("game.upgrade_cost must be >= 0, got %d", g.UpgradeCost))
	}
	if g.UpgradeGrowth < 1 {
		errs = append(errs, fmt.Sprintf("game.upgrade_growth must be >= 1, got %g", g.UpgradeGrowth))
	}
	if g.BulkAmount < 1 {
		errs = append(errs, fmt.Sprintf("game.bulk_amount must be >= 1, got %d", g.BulkAmount))
	}
	if g.MaxOpenAmount < 1 || g.MaxOpenAmount > maxOpenLimit {
		errs = append(errs, fmt.Sprintf("game.max_open_amount must be in 1-%d, got %d", maxOpenLimit, g.MaxOpenAmount))
	}
	if g.SubscriberBuffer < 1 {
		errs = append(errs, fmt.Sprintf("game.subscriber_buffer must be >= 1, got %d", g.SubscriberBuffer))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	if c.ScriptInstructionLimit < 0 {
		return fmt.Errorf("content.script_instruction_limit must be >= 0, got %d", c.ScriptInstructionLimit)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with LOOTGAME_ prefix
	v.SetEnvPrefix("LOOTGAME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("telnet.host", "0.0.0.0")
	v.SetDefault("telnet.port", 4000)
	v.SetDefault("telnet.read_timeout", "30m")
	v.SetDefault("telnet.write_timeout", "30s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("game.tick_interval", "1s")
	v.SetDefault("game.starting_coins", 2000)
	v.SetDefault("game.max_adventures", 1)
	v.SetDefault("game.upgrade_cost", 100000)
	v.SetDefault("game.upgrade_growth", 1.5)
	v.SetDefault("game.bulk_amount", 10)
	v.SetDefault("game.max_open_amount", 10000)
	v.SetDefault("game.subscriber_buffer", 64)
	v.SetDefault("game.seed", 0)

	v.SetDefault("content.dir", "")
	v.SetDefault("content.script_dir", "")
	v.SetDefault("content.script_instruction_limit", 100000)
}

// Defaults returns the default configuration.
//
// Postcondition: Returns a Config that passes Validate.
func Defaults() Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic(fmt.Sprintf("config: defaults are invalid: %v", err))
	}
	return cfg
}
