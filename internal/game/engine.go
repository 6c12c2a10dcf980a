package game

import (
	"fmt"
	"strconv"

	"github.com/samdwyer/darkidle/internal/combat"
	"github.com/samdwyer/darkidle/internal/economy"
	"github.com/samdwyer/darkidle/internal/entity"
	"github.com/samdwyer/darkidle/internal/gamedata"
)

// Engine is the transition function over sessions. It holds only static data
// and the injected random source, so the same seed and event sequence yield
// the same sessions.
type Engine struct {
	catalog  *gamedata.ItemRegistry
	resolver *combat.Resolver
	settings Settings
}

// NewEngine creates an engine over the item catalog and enemy roster.
func NewEngine(catalog *gamedata.ItemRegistry, roster *gamedata.EnemyRegistry, rng combat.Rand) *Engine {
	return &Engine{
		catalog:  catalog,
		resolver: combat.NewResolver(roster, rng),
		settings: Settings{HealCostSouls: DefaultHealCostSouls},
	}
}

// WithHealCost sets the heal price used by NewSession.
func (e *Engine) WithHealCost(souls float64) *Engine {
	if souls > 0 {
		e.settings.HealCostSouls = souls
	}
	return e
}

// Catalog returns the item catalog the engine prices and aggregates against.
func (e *Engine) Catalog() *gamedata.ItemRegistry { return e.catalog }

// NewSession returns a default session carrying the engine's settings.
func (e *Engine) NewSession() Session {
	s := DefaultSession(e.catalog)
	s.Settings = e.settings
	return s
}

// DecodeSnapshot is the package DecodeSnapshot merged over NewSession, so a
// snapshot without settings picks up the engine's heal price.
func (e *Engine) DecodeSnapshot(data []byte) (Session, error) {
	return decodeOver(data, e.NewSession(), e.catalog)
}

// Apply runs one event against s and returns the next session. s is never
// modified. When the event is a no-op the returned session is s itself and
// Result.Applied is false.
func (e *Engine) Apply(s Session, ev Event) (Session, Result) {
	next := s.Clone()

	var res Result
	switch ev.Kind {
	case EventTick:
		res = e.tick(&next)
	case EventHit:
		res = e.hit(&next)
	case EventHeal:
		res = e.heal(&next)
	case EventCraft:
		res = e.craft(&next, ev.ItemID)
	case EventReset:
		res = e.reset(&next)
	}

	if !res.Applied {
		return s, res
	}
	return next, res
}

// tick: passive income, spawn into an empty slot, hero strikes first, then
// the surviving enemy retaliates. A kill short-circuits retaliation.
func (e *Engine) tick(s *Session) Result {
	res := Result{Applied: true}
	stats := s.Stats(e.catalog)

	s.Resources.Add(gamedata.Souls, stats.SoulsPerSec)

	if s.Enemy == nil {
		s.Enemy = e.resolver.Spawn(s.Stage, s.KillsThisStage)
		res.Spawned = true
		res.Outcome = OutcomeSpawned
	}

	ex := e.resolver.Strike(s.Enemy, stats.TickDamage())
	res.Damage = ex.Damage
	if ex.Killed {
		e.resolveKill(s, stats, &res)
		return res
	}

	res.Taken = e.resolver.Retaliate(s.Enemy, &s.Hero, stats)
	if !s.Hero.IsAlive() {
		e.resolveDeath(s, stats, &res)
	}
	return res
}

func (e *Engine) hit(s *Session) Result {
	if s.Enemy == nil || !s.Enemy.IsAlive() {
		return Result{}
	}
	stats := s.Stats(e.catalog)
	ex := e.resolver.Strike(s.Enemy, stats.StrikeDamage())

	res := Result{Applied: true, Damage: ex.Damage}
	if ex.Killed {
		e.resolveKill(s, stats, &res)
	}
	return res
}

// resolveKill is shared by tick and hit so a kill pays out exactly once.
func (e *Engine) resolveKill(s *Session, stats combat.Stats, res *Result) {
	slain := s.Enemy

	loot := e.resolver.RollLoot(stats.LootMult, slain.IsBoss)
	loot.Apply(s.Resources)
	res.Loot = loot

	s.TotalKills++
	s.KillsThisStage++

	if slain.IsBoss {
		s.AddLog(fmt.Sprintf("Boss down: %s! %s", slain.Name, loot))
		s.Stage++
		s.KillsThisStage = 0
		s.Hero.HealFull(stats.MaxHP)
		s.Enemy = e.resolver.Spawn(s.Stage, s.KillsThisStage)
		res.Outcome = OutcomeBossDefeated
		return
	}

	s.AddLog(fmt.Sprintf("Defeated %s. %s", slain.Name, loot))
	s.Enemy = e.resolver.Spawn(s.Stage, s.KillsThisStage)
	res.Outcome = OutcomeEnemyDefeated
}

func (e *Engine) resolveDeath(s *Session, stats combat.Stats, res *Result) {
	loss := e.resolver.RollDeathPenalty(s.Resources)
	loss.Apply(s.Resources)
	res.Loss = loss

	s.Stage = max(1, s.Stage-1)
	s.KillsThisStage = 0
	s.Hero.HealFull(stats.MaxHP)
	s.Enemy = e.resolver.SpawnRegular(s.Stage)
	s.AddLog(fmt.Sprintf("You died. Demoted to Stage %d. Lost %s. HR reminds you: diamonds are forever.", s.Stage, loss))
	res.Outcome = OutcomeHeroDefeated
}

func (e *Engine) heal(s *Session) Result {
	stats := s.Stats(e.catalog)
	price := entity.Resources{gamedata.Souls: s.Settings.HealCostSouls}
	if s.Hero.HP >= stats.MaxHP || !economy.CanAfford(s.Resources, price) {
		return Result{}
	}

	economy.Pay(s.Resources, price)
	s.Hero.HealFull(stats.MaxHP)
	s.AddLog(fmt.Sprintf("Bandaged wounds (-%s souls).", strconv.FormatFloat(s.Settings.HealCostSouls, 'f', -1, 64)))
	return Result{Applied: true, Outcome: OutcomeHealed}
}

func (e *Engine) craft(s *Session, id string) Result {
	i := s.itemIndex(id)
	if i < 0 || !economy.Craftable(e.catalog, s.Resources, s.Items[i]) {
		return Result{}
	}

	economy.Pay(s.Resources, economy.CostFor(e.catalog, id, s.Items[i].Level))
	s.Items[i].Level++
	s.AddLog(fmt.Sprintf("Crafted %s (Lv.%d). The smell of victory and rust.", e.catalog.GetByID(id).Name, s.Items[i].Level))
	return Result{Applied: true, Outcome: OutcomeCrafted}
}

// reset keeps the session's settings; everything else returns to defaults.
func (e *Engine) reset(s *Session) Result {
	settings := s.Settings
	*s = DefaultSession(e.catalog)
	s.Settings = settings
	return Result{Applied: true, Outcome: OutcomeReset}
}
