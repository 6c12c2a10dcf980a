package combat

import (
	"math"

	"github.com/samdwyer/darkidle/internal/entity"
	"github.com/samdwyer/darkidle/internal/gamedata"
)

// MaxAPS caps attacks per second.
const MaxAPS = 5

// strikeFactor is the share of DPS a manual strike deals.
const strikeFactor = 0.5

// Stats is the derived combat snapshot of the hero. It is never persisted;
// callers recompute it whenever hero or items may have changed.
type Stats struct {
	MaxHP       int
	DPS         float64
	LootMult    float64
	SoulsPerSec float64
	DR          int     // Flat damage reduction
	APS         float64 // Attacks per second
}

// ComputeStats folds the hero's base values and every owned item level into
// derived stats. Items with level <= 0 or an id missing from the catalog are
// skipped.
func ComputeStats(hero entity.Hero, items []entity.Item, catalog *gamedata.ItemRegistry) Stats {
	total := gamedata.Neutral()
	for _, it := range items {
		if it.Level <= 0 {
			continue
		}
		def := catalog.GetByID(it.ID)
		if def == nil {
			continue
		}
		total = total.Combine(def.Effect(it.Level))
	}

	return Stats{
		MaxHP:       int(math.Ceil((float64(hero.BaseMaxHP) + total.HPFlat) * total.HPMult)),
		DPS:         math.Max(0, (hero.BaseDPS+total.DPSFlat)*total.DPSMult),
		LootMult:    total.LootMult,
		SoulsPerSec: total.SoulsPerSec,
		DR:          int(math.Max(0, math.Floor(total.DRFlat))),
		APS:         math.Min(MaxAPS, 1+total.APSFlat),
	}
}

// TickDamage is the automatic damage dealt per tick: floor(dps * aps), at least 0.
func (s Stats) TickDamage() int {
	return int(math.Max(0, math.Floor(s.DPS*s.APS)))
}

// StrikeDamage is the damage of a manual strike: floor(dps * 0.5), at least 1.
func (s Stats) StrikeDamage() int {
	return int(math.Max(1, math.Floor(s.DPS*strikeFactor)))
}
