package entity

// Enemy is the single opponent occupying the enemy slot.
// It is created at full health and its HP only ever goes down.
type Enemy struct {
	ID     string `json:"id"`     // Instance id; distinguishes two enemies with the same name
	Name   string `json:"name"`   // Display name (e.g., "Gloomrat")
	MaxHP  int    `json:"maxHP"`  // Hit points at spawn
	HP     int    `json:"hp"`     // Current hit points
	DPS    int    `json:"dps"`    // Damage dealt to the hero per tick before reduction
	IsBoss bool   `json:"isBoss"` // Killing a boss advances the stage
}

// NewEnemy creates an enemy at full health.
func NewEnemy(id, name string, maxHP, dps int, isBoss bool) *Enemy {
	return &Enemy{
		ID:     id,
		Name:   name,
		MaxHP:  maxHP,
		HP:     maxHP,
		DPS:    dps,
		IsBoss: isBoss,
	}
}

// IsAlive returns true if the enemy has HP remaining.
func (e *Enemy) IsAlive() bool { return e.HP > 0 }

// TakeDamage reduces HP and returns actual damage taken.
// HP is clamped at 0 and never increases.
func (e *Enemy) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > e.HP {
		actual = e.HP
	}
	e.HP -= actual
	return actual
}

// Clone returns a copy of the enemy, or nil for a nil receiver.
func (e *Enemy) Clone() *Enemy {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}
