// Package game owns the session state machine: the transition function over
// Tick, Hit, Heal, Craft and Reset events, the single-writer Game that
// serialises those transitions, the tick scheduler and the snapshot format.
package game

// Phase is the combat phase of a session, derived from the enemy slot.
type Phase int

const (
	// PhaseNoEnemy means the enemy slot is empty; the next tick spawns one.
	PhaseNoEnemy Phase = iota
	// PhaseEnemyActive means a living enemy occupies the slot.
	PhaseEnemyActive
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNoEnemy:
		return "no_enemy"
	case PhaseEnemyActive:
		return "enemy_active"
	default:
		return "unknown"
	}
}
