package combat

import (
	"math"

	"github.com/google/uuid"

	"github.com/samdwyer/darkidle/internal/entity"
	"github.com/samdwyer/darkidle/internal/gamedata"
)

// BossEvery is the kill cadence within a stage that summons a boss.
const BossEvery = 10

// Boss multipliers applied on top of the stage curve.
const (
	bossHPMult   = 6
	bossDPSBonus = 2
)

// IsBossSpawn reports whether the next enemy spawned with the given kill count
// for the current stage is a boss: every 10th kill, never the first spawn.
func IsBossSpawn(killsThisStage int) bool {
	return killsThisStage > 0 && killsThisStage%BossEvery == 0
}

// EnemyScaling returns max HP and DPS for an enemy at stage.
//
//	base  = floor(15 * stage^1.6 + 10)
//	maxHP = base * (boss ? 6 : 1)
//	dps   = max(1, floor(stage*0.7 + (boss ? 2 : 0)))
func EnemyScaling(stage int, isBoss bool) (maxHP, dps int) {
	base := math.Floor(15*math.Pow(float64(stage), 1.6) + 10)
	hpMult, dpsBonus := 1.0, 0.0
	if isBoss {
		hpMult, dpsBonus = bossHPMult, bossDPSBonus
	}
	maxHP = int(math.Floor(base * hpMult))
	dps = int(math.Max(1, math.Floor(float64(stage)*0.7+dpsBonus)))
	return maxHP, dps
}

// Spawner creates freshly scaled enemies with names from the roster.
type Spawner struct {
	roster *gamedata.EnemyRegistry
	rng    Rand
}

// NewSpawner creates a spawner drawing names and ids from rng.
func NewSpawner(roster *gamedata.EnemyRegistry, rng Rand) *Spawner {
	return &Spawner{roster: roster, rng: rng}
}

// ScaleEnemy produces a full-health enemy for stage.
func (s *Spawner) ScaleEnemy(stage int, isBoss bool) *entity.Enemy {
	maxHP, dps := EnemyScaling(stage, isBoss)

	name := "Nameless Dread"
	if def := s.roster.SpawnRandom(s.rng, isBoss); def != nil {
		name = def.Name
	}

	return entity.NewEnemy(s.newID(), name, maxHP, dps, isBoss)
}

// Next spawns the enemy that follows killsThisStage kills on stage,
// applying the boss cadence.
func (s *Spawner) Next(stage, killsThisStage int) *entity.Enemy {
	return s.ScaleEnemy(stage, IsBossSpawn(killsThisStage))
}

func (s *Spawner) newID() string {
	id, err := uuid.NewRandomFromReader(byteReader{rng: s.rng})
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
