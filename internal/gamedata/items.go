package gamedata

// =============================================================================
// ITEM CATALOG
// =============================================================================
//
// Items are permanent upgrades bought with resources. Each definition carries
// a cost curve and a list of per-level effects:
//
// {
//   "id": "dagger",
//   "name": "Rusty Shiv of Regret",
//   "description": "+1 DPS per level.",
//   "baseCost": {"bones": 10},
//   "costScale": 1.35,
//   "max": 100,
//   "effects": [{"stat": "dpsFlat", "perLevel": 1}]
// }
//
// Flat stats contribute perLevel*level. Multiplier stats (dpsMult, hpMult,
// lootMult) contribute 1 + perLevel*level, so level 0 is always neutral.
// Cost at level L is ceil(baseCost * costScale^L) per resource.

// Stat names a derived-stat channel an item can contribute to.
type Stat string

const (
	StatDPSFlat     Stat = "dpsFlat"
	StatDPSMult     Stat = "dpsMult"
	StatHPFlat      Stat = "hpFlat"
	StatHPMult      Stat = "hpMult"
	StatLootMult    Stat = "lootMult"
	StatSoulsPerSec Stat = "soulsPerSec"
	StatDRFlat      Stat = "drFlat"
	StatAPSFlat     Stat = "apsFlat"
)

// IsMultiplier reports whether the stat composes by product rather than sum.
func (s Stat) IsMultiplier() bool {
	return s == StatDPSMult || s == StatHPMult || s == StatLootMult
}

// Valid reports whether s is a known stat.
func (s Stat) Valid() bool {
	switch s {
	case StatDPSFlat, StatDPSMult, StatHPFlat, StatHPMult,
		StatLootMult, StatSoulsPerSec, StatDRFlat, StatAPSFlat:
		return true
	default:
		return false
	}
}

// Contribution is the partial stat record an item yields at a given level.
// Flat fields are summed across items; Mult fields are multiplied.
type Contribution struct {
	DPSFlat     float64
	DPSMult     float64
	HPFlat      float64
	HPMult      float64
	LootMult    float64
	SoulsPerSec float64
	DRFlat      float64
	APSFlat     float64
}

// Neutral returns the contribution of an unowned item.
func Neutral() Contribution {
	return Contribution{DPSMult: 1, HPMult: 1, LootMult: 1}
}

// Combine folds other into c: flat values add, multipliers compose by product.
func (c Contribution) Combine(other Contribution) Contribution {
	return Contribution{
		DPSFlat:     c.DPSFlat + other.DPSFlat,
		DPSMult:     c.DPSMult * other.DPSMult,
		HPFlat:      c.HPFlat + other.HPFlat,
		HPMult:      c.HPMult * other.HPMult,
		LootMult:    c.LootMult * other.LootMult,
		SoulsPerSec: c.SoulsPerSec + other.SoulsPerSec,
		DRFlat:      c.DRFlat + other.DRFlat,
		APSFlat:     c.APSFlat + other.APSFlat,
	}
}

// EffectDef is one stat channel scaled by item level.
type EffectDef struct {
	Stat     Stat    `json:"stat"`
	PerLevel float64 `json:"perLevel"`
}

// ItemDef defines a craftable upgrade loaded from JSON.
type ItemDef struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	BaseCost    map[Resource]float64 `json:"baseCost"`
	CostScale   float64              `json:"costScale"`
	Max         int                  `json:"max"`
	Effects     []EffectDef          `json:"effects"`
}

// Effect returns the item's contribution at the given level.
// Levels at or below zero yield Neutral().
func (d *ItemDef) Effect(level int) Contribution {
	c := Neutral()
	if level <= 0 {
		return c
	}
	lvl := float64(level)
	for _, e := range d.Effects {
		v := e.PerLevel * lvl
		switch e.Stat {
		case StatDPSFlat:
			c.DPSFlat += v
		case StatDPSMult:
			c.DPSMult *= 1 + v
		case StatHPFlat:
			c.HPFlat += v
		case StatHPMult:
			c.HPMult *= 1 + v
		case StatLootMult:
			c.LootMult *= 1 + v
		case StatSoulsPerSec:
			c.SoulsPerSec += v
		case StatDRFlat:
			c.DRFlat += v
		case StatAPSFlat:
			c.APSFlat += v
		}
	}
	return c
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads item definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
