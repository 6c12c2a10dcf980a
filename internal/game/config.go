package game

import "time"

// DefaultTickInterval is the nominal simulation period.
const DefaultTickInterval = time.Second

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible spawns and loot.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// TickInterval is the scheduler period. Zero means DefaultTickInterval.
	TickInterval time.Duration

	// HealCostSouls overrides the heal price for new sessions, applied with
	// Engine.WithHealCost. Zero keeps the default.
	HealCostSouls float64
}

func (c Config) tickInterval() time.Duration {
	if c.TickInterval <= 0 {
		return DefaultTickInterval
	}
	return c.TickInterval
}
