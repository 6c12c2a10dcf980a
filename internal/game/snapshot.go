package game

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/samdwyer/darkidle/internal/entity"
	"github.com/samdwyer/darkidle/internal/gamedata"
)

// EncodeSnapshot serialises s in the save format, stamped with CurrentVersion.
func EncodeSnapshot(s Session) ([]byte, error) {
	s.Version = CurrentVersion
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// ErrPartialSnapshot marks a snapshot that decoded with some ill-typed
// fields left at their defaults. The returned session is still usable.
var ErrPartialSnapshot = errors.New("snapshot partially decoded")

// DecodeSnapshot loads a possibly partial or older snapshot. Fields present in
// data override the defaults; everything is then normalised against the
// catalog. Empty data yields the default session.
//
// A field of the wrong type keeps its default and the rest of the snapshot is
// kept; the error then wraps ErrPartialSnapshot. Only data that is not JSON at
// all yields the default session together with the decode error.
func DecodeSnapshot(data []byte, catalog *gamedata.ItemRegistry) (Session, error) {
	return decodeOver(data, DefaultSession(catalog), catalog)
}

func decodeOver(data []byte, base Session, catalog *gamedata.ItemRegistry) (Session, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return base, nil
	}

	s := base.Clone()
	err := json.Unmarshal(data, &s)
	var typeErr *json.UnmarshalTypeError
	if err != nil && !errors.As(err, &typeErr) {
		return base, fmt.Errorf("decode snapshot: %w", err)
	}
	Normalize(&s, catalog)
	if err != nil {
		return s, fmt.Errorf("decode snapshot: %w: %w", ErrPartialSnapshot, err)
	}
	return s, nil
}

// Normalize repairs s in place so every session invariant holds: items
// backfilled in catalog order with levels in [0,max], resources non-negative,
// stage at least 1, hero and enemy HP within bounds, the log capped and the
// current version stamped.
func Normalize(s *Session, catalog *gamedata.ItemRegistry) {
	s.Version = CurrentVersion
	s.Stage = max(1, s.Stage)
	s.KillsThisStage = max(0, s.KillsThisStage)
	s.TotalKills = max(0, s.TotalKills)

	s.Resources = normalizeResources(s.Resources)
	s.Items = backfillItems(s.Items, catalog)

	if s.Hero.BaseMaxHP <= 0 {
		s.Hero.BaseMaxHP = entity.DefaultBaseMaxHP
	}
	if s.Hero.BaseDPS < 0 || math.IsNaN(s.Hero.BaseDPS) {
		s.Hero.BaseDPS = entity.DefaultBaseDPS
	}
	s.Hero.ClampHP(s.Stats(catalog).MaxHP)

	if e := s.Enemy; e != nil {
		if e.MaxHP <= 0 || e.HP <= 0 {
			s.Enemy = nil
		} else {
			e.HP = min(e.HP, e.MaxHP)
			e.DPS = max(0, e.DPS)
		}
	}

	if s.Log == nil {
		s.Log = []string{}
	}
	if len(s.Log) > MaxLogEntries {
		s.Log = s.Log[:MaxLogEntries]
	}

	if s.Settings.HealCostSouls < 0 || math.IsNaN(s.Settings.HealCostSouls) {
		s.Settings.HealCostSouls = DefaultHealCostSouls
	}
}

func normalizeResources(in entity.Resources) entity.Resources {
	out := entity.NewResources()
	for _, kind := range gamedata.ResourceKinds {
		v := in.Get(kind)
		if v > 0 && !math.IsInf(v, 1) {
			out[kind] = v
		}
	}
	return out
}

// backfillItems returns one entry per catalog item, in catalog order. Levels
// come from the first matching saved entry; unknown ids are dropped.
func backfillItems(saved []entity.Item, catalog *gamedata.ItemRegistry) []entity.Item {
	levels := make(map[string]int, len(saved))
	for _, it := range saved {
		if _, seen := levels[it.ID]; !seen {
			levels[it.ID] = it.Level
		}
	}

	all := catalog.All()
	items := make([]entity.Item, len(all))
	for i, def := range all {
		items[i] = entity.Item{ID: def.ID, Level: min(max(0, levels[def.ID]), def.Max)}
	}
	return items
}
