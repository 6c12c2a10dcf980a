package entity

import "github.com/samdwyer/darkidle/internal/gamedata"

// Resources maps a resource kind to an amount. Souls may be fractional from
// passive income; display code rounds down.
type Resources map[gamedata.Resource]float64

// NewResources returns a wallet with every known kind at zero.
func NewResources() Resources {
	r := make(Resources, len(gamedata.ResourceKinds))
	for _, k := range gamedata.ResourceKinds {
		r[k] = 0
	}
	return r
}

// Get returns the amount held of kind, treating a missing key as 0.
func (r Resources) Get(kind gamedata.Resource) float64 {
	return r[kind]
}

// Add credits amount to kind.
func (r Resources) Add(kind gamedata.Resource, amount float64) {
	r[kind] += amount
}

// Lose debits amount from kind, never going below zero, and returns the
// amount actually removed.
func (r Resources) Lose(kind gamedata.Resource, amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	have := r[kind]
	if amount > have {
		amount = have
	}
	r[kind] = have - amount
	return amount
}

// Clone returns an independent copy.
func (r Resources) Clone() Resources {
	c := make(Resources, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}
