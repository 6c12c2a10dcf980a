// Package entity provides the hero, the enemy, owned items and resource wallets.
package entity

// Default hero base stats for a new game.
const (
	DefaultBaseMaxHP = 30
	DefaultBaseDPS   = 2
)

// Hero is the player's character. Only HP is mutable during play; the
// effective max HP is derived from items and passed in by callers.
type Hero struct {
	BaseMaxHP int     `json:"baseMaxHP"`
	BaseDPS   float64 `json:"baseDPS"`
	HP        int     `json:"hp"`
}

// NewHero creates a hero with the default base stats at full health.
func NewHero() Hero {
	return Hero{
		BaseMaxHP: DefaultBaseMaxHP,
		BaseDPS:   DefaultBaseDPS,
		HP:        DefaultBaseMaxHP,
	}
}

// IsAlive returns true if the hero has HP remaining.
func (h *Hero) IsAlive() bool { return h.HP > 0 }

// TakeDamage reduces HP, keeping it within [0, maxHP], and returns actual damage taken.
func (h *Hero) TakeDamage(amount, maxHP int) int {
	if amount <= 0 {
		return 0
	}
	before := h.HP
	h.HP = clamp(h.HP-amount, 0, maxHP)
	if before > h.HP {
		return before - h.HP
	}
	return 0
}

// HealFull restores HP to maxHP and returns the amount healed.
func (h *Hero) HealFull(maxHP int) int {
	healed := maxHP - h.HP
	h.HP = maxHP
	if healed < 0 {
		return 0
	}
	return healed
}

// ClampHP forces HP into [0, maxHP].
func (h *Hero) ClampHP(maxHP int) {
	h.HP = clamp(h.HP, 0, maxHP)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
