package game

import "github.com/samdwyer/darkidle/internal/combat"

// EventKind identifies a state transition.
type EventKind int

const (
	EventTick EventKind = iota
	EventHit
	EventHeal
	EventCraft
	EventReset
)

// String returns the event name used in logs and span names.
func (k EventKind) String() string {
	switch k {
	case EventTick:
		return "tick"
	case EventHit:
		return "hit"
	case EventHeal:
		return "heal"
	case EventCraft:
		return "craft"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event is one input to the transition function. ItemID is only read by
// EventCraft.
type Event struct {
	Kind   EventKind
	ItemID string
}

// Tick advances the simulation by one period.
func Tick() Event { return Event{Kind: EventTick} }

// Hit is a manual strike on the active enemy.
func Hit() Event { return Event{Kind: EventHit} }

// Heal buys a full heal with souls.
func Heal() Event { return Event{Kind: EventHeal} }

// Craft raises item id by one level.
func Craft(id string) Event { return Event{Kind: EventCraft, ItemID: id} }

// Reset reinitialises the session from defaults.
func Reset() Event { return Event{Kind: EventReset} }

// Outcome is the most significant thing an event caused.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSpawned
	OutcomeEnemyDefeated
	OutcomeBossDefeated
	OutcomeHeroDefeated
	OutcomeHealed
	OutcomeCrafted
	OutcomeReset
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeSpawned:
		return "spawned"
	case OutcomeEnemyDefeated:
		return "enemy_defeated"
	case OutcomeBossDefeated:
		return "boss_defeated"
	case OutcomeHeroDefeated:
		return "hero_defeated"
	case OutcomeHealed:
		return "healed"
	case OutcomeCrafted:
		return "crafted"
	case OutcomeReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Result describes what a transition did.
type Result struct {
	Applied bool    // False when the event was a no-op and the state is unchanged
	Outcome Outcome // Most significant effect
	Damage  int     // Damage dealt to enemies
	Taken   int     // Damage taken by the hero
	Loot    combat.Loot
	Loss    combat.Loss
	Spawned bool // An enemy was spawned into an empty slot at tick start
}
