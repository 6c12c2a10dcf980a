// Package config reads runtime settings from DARKIDLE_* environment
// variables. cmd/darkidle loads a .env file first.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samdwyer/darkidle/internal/game"
)

// Config is the full runtime configuration.
type Config struct {
	Seed             int64         // DARKIDLE_SEED, 0 = random
	TickInterval     time.Duration // DARKIDLE_TICK_MS
	Profile          string        // DARKIDLE_PROFILE
	DBPath           string        // DARKIDLE_DB, local save database
	SyncDBPath       string        // DARKIDLE_SYNC_DB, shared database; empty disables sync
	AutosaveInterval time.Duration // DARKIDLE_AUTOSAVE_MS
	SyncInterval     time.Duration // DARKIDLE_SYNC_MS
	LogFile          string        // DARKIDLE_LOG_FILE
	LogLevel         slog.Level    // DARKIDLE_LOG_LEVEL
	Telemetry        bool          // DARKIDLE_TELEMETRY
	HealCostSouls    float64       // DARKIDLE_HEAL_COST, price for new sessions; 0 = game default
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		TickInterval:     game.DefaultTickInterval,
		Profile:          "default",
		DBPath:           "darkidle.db",
		AutosaveInterval: 5 * time.Second,
		SyncInterval:     5 * time.Second,
		LogFile:          "darkidle.log",
		LogLevel:         slog.LevelInfo,
	}
}

// Load reads the process environment.
func Load() (Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom reads configuration through lookup, starting from Default.
func LoadFrom(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	p := parser{lookup: lookup}

	p.integer("DARKIDLE_SEED", &cfg.Seed)
	p.millis("DARKIDLE_TICK_MS", &cfg.TickInterval)
	p.str("DARKIDLE_PROFILE", &cfg.Profile)
	p.str("DARKIDLE_DB", &cfg.DBPath)
	p.str("DARKIDLE_SYNC_DB", &cfg.SyncDBPath)
	p.millis("DARKIDLE_AUTOSAVE_MS", &cfg.AutosaveInterval)
	p.millis("DARKIDLE_SYNC_MS", &cfg.SyncInterval)
	p.str("DARKIDLE_LOG_FILE", &cfg.LogFile)
	p.level("DARKIDLE_LOG_LEVEL", &cfg.LogLevel)
	p.flag("DARKIDLE_TELEMETRY", &cfg.Telemetry)
	p.positive("DARKIDLE_HEAL_COST", &cfg.HealCostSouls)

	if p.err != nil {
		return Config{}, p.err
	}
	return cfg, nil
}

// Game returns the simulation settings.
func (c Config) Game() game.Config {
	return game.Config{Seed: c.Seed, TickInterval: c.TickInterval, HealCostSouls: c.HealCostSouls}
}

var errNotPositive = errors.New("must be positive")

// parser records the first error and skips the rest.
type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) get(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (p *parser) fail(key, v string, err error) {
	p.err = fmt.Errorf("config: %s=%q: %w", key, v, err)
}

func (p *parser) str(key string, dst *string) {
	if v, ok := p.get(key); ok {
		*dst = v
	}
}

func (p *parser) integer(key string, dst *int64) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = n
}

func (p *parser) millis(key string, dst *time.Duration) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	if n <= 0 {
		p.fail(key, v, errNotPositive)
		return
	}
	*dst = time.Duration(n) * time.Millisecond
}

func (p *parser) positive(key string, dst *float64) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	if f <= 0 || math.IsInf(f, 0) {
		p.fail(key, v, errNotPositive)
		return
	}
	*dst = f
}

func (p *parser) flag(key string, dst *bool) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = b
}

func (p *parser) level(key string, dst *slog.Level) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	if err := dst.UnmarshalText([]byte(v)); err != nil {
		p.fail(key, v, err)
	}
}
