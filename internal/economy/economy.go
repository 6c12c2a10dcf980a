// Package economy evaluates crafting costs and applies payments.
package economy

import (
	"math"

	"github.com/samdwyer/darkidle/internal/entity"
	"github.com/samdwyer/darkidle/internal/gamedata"
)

// CostFor returns the price of raising item id from level to level+1:
// ceil(baseCost * costScale^level) for each resource in the base cost.
// An id missing from the catalog costs nothing and returns an empty map.
func CostFor(catalog *gamedata.ItemRegistry, id string, level int) entity.Resources {
	cost := entity.Resources{}
	def := catalog.GetByID(id)
	if def == nil {
		return cost
	}
	if level < 0 {
		level = 0
	}
	scale := math.Pow(def.CostScale, float64(level))
	for res, base := range def.BaseCost {
		cost[res] = math.Ceil(base * scale)
	}
	return cost
}

// CanAfford reports whether res covers every entry in cost. Missing keys in
// res count as zero.
func CanAfford(res, cost entity.Resources) bool {
	for kind, amount := range cost {
		if res.Get(kind) < amount {
			return false
		}
	}
	return true
}

// Pay subtracts cost from res in place. It does not clamp: callers check
// CanAfford first.
func Pay(res, cost entity.Resources) {
	for kind, amount := range cost {
		res[kind] = res.Get(kind) - amount
	}
}

// Craftable reports whether item can be raised one level with res: the level
// is below the catalog cap and the next level is affordable.
func Craftable(catalog *gamedata.ItemRegistry, res entity.Resources, item entity.Item) bool {
	def := catalog.GetByID(item.ID)
	if def == nil || item.Level >= def.Max {
		return false
	}
	return CanAfford(res, CostFor(catalog, item.ID, item.Level))
}
