// Package combat provides the hero's derived stats, enemy scaling and the
// per-exchange combat rules: strikes, retaliation, loot and death penalties.
package combat

import (
	"github.com/samdwyer/darkidle/internal/entity"
	"github.com/samdwyer/darkidle/internal/gamedata"
)

// ExchangeResult contains the outcome of one hero strike against the enemy.
type ExchangeResult struct {
	Damage int  // Damage actually dealt to the enemy
	Killed bool // Enemy HP reached 0 on this strike
}

// Resolver applies combat rules with a single injected random source shared
// by spawns, loot and penalties.
type Resolver struct {
	rng     Rand
	spawner *Spawner
}

// NewResolver creates a resolver over the enemy roster.
func NewResolver(roster *gamedata.EnemyRegistry, rng Rand) *Resolver {
	return &Resolver{
		rng:     rng,
		spawner: NewSpawner(roster, rng),
	}
}

// Spawn creates the next enemy for stage given the kills already made on it.
func (r *Resolver) Spawn(stage, killsThisStage int) *entity.Enemy {
	return r.spawner.Next(stage, killsThisStage)
}

// SpawnRegular creates a non-boss enemy for stage.
func (r *Resolver) SpawnRegular(stage int) *entity.Enemy {
	return r.spawner.ScaleEnemy(stage, false)
}

// Strike deals damage to the enemy. The enemy's HP never increases.
func (r *Resolver) Strike(enemy *entity.Enemy, damage int) ExchangeResult {
	dealt := enemy.TakeDamage(damage)
	return ExchangeResult{Damage: dealt, Killed: !enemy.IsAlive()}
}

// Retaliate applies the surviving enemy's hit to the hero and returns the
// damage taken. Armor that matches or exceeds the enemy's DPS absorbs it all.
func (r *Resolver) Retaliate(enemy *entity.Enemy, hero *entity.Hero, stats Stats) int {
	hit := Retaliation(enemy.DPS, stats.DR)
	if hit <= 0 {
		return 0
	}
	return hero.TakeDamage(hit, stats.MaxHP)
}

// RollLoot draws the reward for killing an enemy.
func (r *Resolver) RollLoot(lootMult float64, boss bool) Loot {
	return RollLoot(r.rng, lootMult, boss)
}

// RollDeathPenalty draws the losses for a hero death.
func (r *Resolver) RollDeathPenalty(res entity.Resources) Loss {
	return RollDeathPenalty(r.rng, res)
}

// Retaliation is the raw damage an enemy deals through damage reduction.
// Values <= 0 mean no damage.
func Retaliation(enemyDPS, dr int) int {
	return enemyDPS - dr
}
