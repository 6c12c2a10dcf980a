package game

import (
	"github.com/samdwyer/darkidle/internal/combat"
	"github.com/samdwyer/darkidle/internal/entity"
	"github.com/samdwyer/darkidle/internal/gamedata"
)

// CurrentVersion is stamped on every encoded or decoded snapshot.
const CurrentVersion = 7

// MaxLogEntries bounds the session log.
const MaxLogEntries = 50

// DefaultHealCostSouls is the price of a full heal.
const DefaultHealCostSouls = 10

const openingLine = "You awake in a damp corridor. HR requests your immediate demise. Purely procedural."

// Settings is static per-session configuration.
type Settings struct {
	HealCostSouls float64 `json:"healCostSouls"`
}

// Session is the aggregate root of one game. Its JSON form is the save format.
type Session struct {
	Version        int              `json:"version"`
	Stage          int              `json:"stage"`
	KillsThisStage int              `json:"killsThisStage"`
	TotalKills     int              `json:"totalKills"`
	Hero           entity.Hero      `json:"hero"`
	Resources      entity.Resources `json:"resources"`
	Items          []entity.Item    `json:"items"`
	Enemy          *entity.Enemy    `json:"enemy"`
	Log            []string         `json:"log"` // Most recent first
	Settings       Settings         `json:"settings"`
}

// DefaultSession returns a fresh game: stage 1, default hero, no resources,
// every catalog item at level 0 and an empty enemy slot.
func DefaultSession(catalog *gamedata.ItemRegistry) Session {
	ids := catalog.IDs()
	items := make([]entity.Item, len(ids))
	for i, id := range ids {
		items[i] = entity.Item{ID: id}
	}
	return Session{
		Version:   CurrentVersion,
		Stage:     1,
		Hero:      entity.NewHero(),
		Resources: entity.NewResources(),
		Items:     items,
		Log:       []string{openingLine},
		Settings:  Settings{HealCostSouls: DefaultHealCostSouls},
	}
}

// Clone returns a deep copy that shares no mutable state with s.
func (s Session) Clone() Session {
	c := s
	c.Resources = s.Resources.Clone()
	c.Items = append([]entity.Item(nil), s.Items...)
	c.Enemy = s.Enemy.Clone()
	c.Log = append([]string(nil), s.Log...)
	return c
}

// AddLog records msg as the newest entry, evicting the oldest beyond the cap.
func (s *Session) AddLog(msg string) {
	n := len(s.Log) + 1
	if n > MaxLogEntries {
		n = MaxLogEntries
	}
	log := make([]string, n)
	log[0] = msg
	copy(log[1:], s.Log)
	s.Log = log
}

// Phase reports whether an enemy occupies the slot.
func (s *Session) Phase() Phase {
	if s.Enemy == nil {
		return PhaseNoEnemy
	}
	return PhaseEnemyActive
}

// ItemLevel returns the owned level of id, or 0.
func (s *Session) ItemLevel(id string) int {
	if i := s.itemIndex(id); i >= 0 {
		return s.Items[i].Level
	}
	return 0
}

func (s *Session) itemIndex(id string) int {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Stats computes the derived combat stats of s.
func (s *Session) Stats(catalog *gamedata.ItemRegistry) combat.Stats {
	return combat.ComputeStats(s.Hero, s.Items, catalog)
}

// StageProgress is the number of kills toward the next boss.
func (s *Session) StageProgress() int {
	return s.KillsThisStage % combat.BossEvery
}
