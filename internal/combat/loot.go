package combat

import (
	"fmt"
	"math"
	"strings"

	"github.com/samdwyer/darkidle/internal/entity"
	"github.com/samdwyer/darkidle/internal/gamedata"
)

// Loot is the reward for one kill.
type Loot struct {
	Bones   int
	Gloom   int
	Souls   int
	Crystal int
}

// Apply credits the loot to res.
func (l Loot) Apply(res entity.Resources) {
	res.Add(gamedata.Bones, float64(l.Bones))
	res.Add(gamedata.Gloom, float64(l.Gloom))
	res.Add(gamedata.Souls, float64(l.Souls))
	res.Add(gamedata.Crystal, float64(l.Crystal))
}

// String renders the non-zero parts for the loot log.
func (l Loot) String() string {
	var parts []string
	if l.Bones > 0 {
		parts = append(parts, fmt.Sprintf("🦴 +%d Bones", l.Bones))
	}
	if l.Gloom > 0 {
		parts = append(parts, fmt.Sprintf("🌑 +%d Gloom", l.Gloom))
	}
	if l.Souls > 0 {
		parts = append(parts, fmt.Sprintf("🕯️ +%d Souls", l.Souls))
	}
	if l.Crystal > 0 {
		suffix := ""
		if l.Crystal > 1 {
			suffix = "s"
		}
		parts = append(parts, fmt.Sprintf("💎 +%d Crystal%s", l.Crystal, suffix))
	}
	return strings.Join(parts, " • ")
}

// Loss is what a hero death costs. Crystal is never lost.
type Loss struct {
	Souls int
	Bones int
	Gloom int
}

// Apply debits the loss from res, clamping every kind at zero.
func (l Loss) Apply(res entity.Resources) {
	res.Lose(gamedata.Souls, float64(l.Souls))
	res.Lose(gamedata.Bones, float64(l.Bones))
	res.Lose(gamedata.Gloom, float64(l.Gloom))
}

// String renders the loss for the death log line.
func (l Loss) String() string {
	return fmt.Sprintf("🕯️-%d • 🦴-%d • 🌑-%d", l.Souls, l.Bones, l.Gloom)
}

// Reward table.
const (
	gloomChance       = 0.35
	gloomChanceBoss   = 0.45
	crystalChanceBoss = 0.35

	bonesBossMult = 5
	gloomBossMult = 3
	soulsBossMult = 4
)

// Death penalty table.
const (
	soulsLossRate = 0.2
	bonesLossRate = 0.1
	gloomLossRate = 0.05
	gloomLossOdds = 0.5
)

// RollLoot draws the reward for a kill. Rolls are taken in a fixed order
// (bones, gloom chance, gloom amount, souls, crystal) so a seeded source
// reproduces the same drops.
func RollLoot(rng Rand, lootMult float64, boss bool) Loot {
	bossMult := func(m float64) float64 {
		if boss {
			return m
		}
		return 1
	}

	var l Loot
	l.Bones = int(math.Ceil((3 + rng.Float64()*3) * lootMult * bossMult(bonesBossMult)))

	chance := gloomChance
	if boss {
		chance = gloomChanceBoss
	}
	if rng.Float64() < chance {
		l.Gloom = int(math.Ceil((1 + rng.Float64()*2) * lootMult * bossMult(gloomBossMult)))
	}

	l.Souls = int(math.Ceil((2 + rng.Float64()*4) * lootMult * bossMult(soulsBossMult)))

	if boss && rng.Float64() < crystalChanceBoss {
		l.Crystal = 1
	}
	return l
}

// RollDeathPenalty computes the resources lost on a hero death. Gloom is
// only lost on a coin flip.
func RollDeathPenalty(rng Rand, res entity.Resources) Loss {
	loss := Loss{
		Souls: int(math.Floor(res.Get(gamedata.Souls) * soulsLossRate)),
		Bones: int(math.Floor(res.Get(gamedata.Bones) * bonesLossRate)),
	}
	if rng.Float64() < gloomLossOdds {
		loss.Gloom = int(math.Floor(res.Get(gamedata.Gloom) * gloomLossRate))
	}
	return loss
}
