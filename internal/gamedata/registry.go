package gamedata

import (
	"errors"
	"fmt"
)

// Intner is the slice of *rand.Rand the registries need for weighted picks.
type Intner interface {
	Intn(n int) int
}

// =============================================================================
// EnemyRegistry
// =============================================================================

// EnemyRegistry holds loaded enemy definitions and provides spawning utilities.
// Regular enemies and bosses are kept in separate pools.
type EnemyRegistry struct {
	regular pool
	bosses  pool
}

type pool struct {
	enemies     []EnemyDef
	totalWeight int
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	r := &EnemyRegistry{}
	for _, e := range enemies {
		p := &r.regular
		if e.Boss {
			p = &r.bosses
		}
		p.enemies = append(p.enemies, e)
		p.totalWeight += e.SpawnWeight
	}
	return r
}

// LoadEnemyRegistry loads and creates a registry from the embedded enemies.json.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	r := NewEnemyRegistry(enemies)
	if r.regular.totalWeight <= 0 {
		return nil, errors.New("no regular enemies loaded from enemies.json")
	}
	if r.bosses.totalWeight <= 0 {
		return nil, errors.New("no bosses loaded from enemies.json")
	}
	return r, nil
}

// MustLoadEnemyRegistry loads a registry, panicking on error.
func MustLoadEnemyRegistry() *EnemyRegistry {
	registry, err := LoadEnemyRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a random enemy definition of the requested kind using
// weighted probability. With equal weights the pick is uniform.
func (r *EnemyRegistry) SpawnRandom(rng Intner, boss bool) *EnemyDef {
	p := &r.regular
	if boss {
		p = &r.bosses
	}
	if p.totalWeight <= 0 || len(p.enemies) == 0 {
		return nil
	}

	roll := rng.Intn(p.totalWeight)

	cumulative := 0
	for i := range p.enemies {
		cumulative += p.enemies[i].SpawnWeight
		if roll < cumulative {
			return &p.enemies[i]
		}
	}

	return &p.enemies[0]
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	for _, p := range []*pool{&r.regular, &r.bosses} {
		for i := range p.enemies {
			if p.enemies[i].ID == id {
				return &p.enemies[i]
			}
		}
	}
	return nil
}

// Count returns the number of regular and boss enemy types.
func (r *EnemyRegistry) Count() (regular, bosses int) {
	return len(r.regular.enemies), len(r.bosses.enemies)
}

// =============================================================================
// ItemRegistry
// =============================================================================

// ItemRegistry is the read-only item catalog. Order is the catalog order used
// for display and for backfilling saves.
type ItemRegistry struct {
	items map[string]*ItemDef
	all   []ItemDef
}

// NewItemRegistry creates a registry from loaded item definitions.
func NewItemRegistry(items []ItemDef) *ItemRegistry {
	registry := &ItemRegistry{
		items: make(map[string]*ItemDef, len(items)),
		all:   items,
	}
	for i := range items {
		registry.items[items[i].ID] = &items[i]
	}
	return registry
}

// LoadItemRegistry loads, validates and creates a registry from the embedded items.json.
func LoadItemRegistry() (*ItemRegistry, error) {
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("no items loaded from items.json")
	}
	registry := NewItemRegistry(items)
	if err := registry.Validate(); err != nil {
		return nil, err
	}
	return registry, nil
}

// MustLoadItemRegistry loads a registry, panicking on error.
func MustLoadItemRegistry() *ItemRegistry {
	registry, err := LoadItemRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Validate checks the catalog invariants: unique ids, costScale > 1, a
// non-negative level cap, known resources and stats, and non-negative
// per-level effects so upgrade value never decreases with level.
func (r *ItemRegistry) Validate() error {
	if len(r.items) != len(r.all) {
		return errors.New("items: duplicate item id")
	}
	for i := range r.all {
		d := &r.all[i]
		if d.ID == "" {
			return fmt.Errorf("items: entry %d has no id", i)
		}
		if d.CostScale <= 1 {
			return fmt.Errorf("items: %s: costScale %v must be greater than 1", d.ID, d.CostScale)
		}
		if d.Max < 0 {
			return fmt.Errorf("items: %s: negative max level %d", d.ID, d.Max)
		}
		for res, amount := range d.BaseCost {
			if !res.Valid() {
				return fmt.Errorf("items: %s: unknown resource %q", d.ID, res)
			}
			if amount < 0 {
				return fmt.Errorf("items: %s: negative base cost for %s", d.ID, res)
			}
		}
		for _, e := range d.Effects {
			if !e.Stat.Valid() {
				return fmt.Errorf("items: %s: unknown stat %q", d.ID, e.Stat)
			}
			if e.PerLevel < 0 {
				return fmt.Errorf("items: %s: %s decreases with level", d.ID, e.Stat)
			}
		}
	}
	return nil
}

// GetByID returns the item definition with the given ID, or nil if not found.
func (r *ItemRegistry) GetByID(id string) *ItemDef {
	return r.items[id]
}

// IDs returns the item ids in catalog order.
func (r *ItemRegistry) IDs() []string {
	ids := make([]string, len(r.all))
	for i := range r.all {
		ids[i] = r.all[i].ID
	}
	return ids
}

// All returns all item definitions in catalog order.
func (r *ItemRegistry) All() []ItemDef {
	return r.all
}

// Count returns the number of items in the catalog.
func (r *ItemRegistry) Count() int {
	return len(r.all)
}
