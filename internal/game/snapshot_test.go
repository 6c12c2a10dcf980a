package game

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/samdwyer/darkidle/internal/gamedata"
)

func TestDecodeSnapshotEmpty(t *testing.T) {
	catalog := gamedata.MustLoadItemRegistry()

	for _, in := range []string{"", "  \n"} {
		s, err := DecodeSnapshot([]byte(in), catalog)
		if err != nil {
			t.Errorf("DecodeSnapshot(%q) error = %v", in, err)
		}
		if !reflect.DeepEqual(s, DefaultSession(catalog)) {
			t.Errorf("DecodeSnapshot(%q) should return the default session", in)
		}
	}
}

func TestDecodeSnapshotMalformed(t *testing.T) {
	catalog := gamedata.MustLoadItemRegistry()

	s, err := DecodeSnapshot([]byte(`{"stage": "three"`), catalog)
	if err == nil {
		t.Error("DecodeSnapshot() should report malformed input")
	}
	if !reflect.DeepEqual(s, DefaultSession(catalog)) {
		t.Error("malformed input should fall back to the default session")
	}
}

func TestDecodeSnapshotIllTypedFieldKeepsRest(t *testing.T) {
	catalog := gamedata.MustLoadItemRegistry()
	data := `{"stage":9,"killsThisStage":3,"totalKills":120,
		"resources":{"souls":5000,"bones":"lots","gloom":40},
		"items":[{"id":"dagger","level":40}],
		"hero":{"baseMaxHP":30,"baseDPS":2,"hp":12.5},
		"settings":{"healCostSouls":"cheap"}}`

	s, err := DecodeSnapshot([]byte(data), catalog)
	if !errors.Is(err, ErrPartialSnapshot) {
		t.Fatalf("DecodeSnapshot() error = %v, want ErrPartialSnapshot", err)
	}

	if s.Stage != 9 || s.KillsThisStage != 3 || s.TotalKills != 120 {
		t.Errorf("stage/kills/total = %d/%d/%d, want 9/3/120", s.Stage, s.KillsThisStage, s.TotalKills)
	}
	if s.Resources.Get(gamedata.Souls) != 5000 || s.Resources.Get(gamedata.Gloom) != 40 {
		t.Errorf("resources = %v, want souls 5000 and gloom 40 kept", s.Resources)
	}
	if s.Resources.Get(gamedata.Bones) != 0 {
		t.Errorf("bones = %v, want 0 for an ill-typed amount", s.Resources.Get(gamedata.Bones))
	}
	if got := s.ItemLevel("dagger"); got != 40 {
		t.Errorf("dagger level = %d, want 40", got)
	}
	if s.Hero.HP < 0 || s.Hero.HP > s.Stats(catalog).MaxHP {
		t.Errorf("hero HP = %d, want within [0, %d]", s.Hero.HP, s.Stats(catalog).MaxHP)
	}
	if s.Settings.HealCostSouls != DefaultHealCostSouls {
		t.Errorf("heal cost = %v, want default %v", s.Settings.HealCostSouls, DefaultHealCostSouls)
	}
	if s.Version != CurrentVersion || len(s.Items) != catalog.Count() {
		t.Errorf("session not normalised: version %d, %d items", s.Version, len(s.Items))
	}
}

func TestEngineDecodeSnapshotUsesEngineSettings(t *testing.T) {
	e := newTestEngine(t, &scriptedRand{}).WithHealCost(25)

	s, err := e.DecodeSnapshot([]byte(`{"stage":2}`))
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if s.Stage != 2 || s.Settings.HealCostSouls != 25 {
		t.Errorf("stage %d, heal cost %v; want 2 and the engine's 25", s.Stage, s.Settings.HealCostSouls)
	}

	saved, _ := e.DecodeSnapshot([]byte(`{"settings":{"healCostSouls":12}}`))
	if saved.Settings.HealCostSouls != 12 {
		t.Errorf("heal cost = %v, want the saved 12", saved.Settings.HealCostSouls)
	}

	empty, _ := e.DecodeSnapshot(nil)
	if empty.Settings.HealCostSouls != 25 {
		t.Errorf("empty snapshot heal cost = %v, want 25", empty.Settings.HealCostSouls)
	}
}

func TestDecodeSnapshotPartial(t *testing.T) {
	catalog := gamedata.MustLoadItemRegistry()
	data := `{
		"version": 3,
		"stage": 0,
		"killsThisStage": -2,
		"resources": {"souls": -5, "bones": 12.5, "gold": 99},
		"items": [
			{"id": "grimoire", "level": 2},
			{"id": "dagger", "level": 500},
			{"id": "excalibur", "level": 3}
		]
	}`

	s, err := DecodeSnapshot([]byte(data), catalog)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}

	if s.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", s.Version, CurrentVersion)
	}
	if s.Stage != 1 || s.KillsThisStage != 0 {
		t.Errorf("stage/kills = %d/%d, want 1/0", s.Stage, s.KillsThisStage)
	}
	if s.Resources.Get(gamedata.Souls) != 0 || s.Resources.Get(gamedata.Bones) != 12.5 {
		t.Errorf("resources = %v, want souls 0 and bones 12.5", s.Resources)
	}
	if _, ok := s.Resources["gold"]; ok {
		t.Error("unknown resource kinds should be dropped")
	}

	if len(s.Items) != catalog.Count() {
		t.Fatalf("len(Items) = %d, want %d", len(s.Items), catalog.Count())
	}
	for i, id := range catalog.IDs() {
		if s.Items[i].ID != id {
			t.Errorf("Items[%d] = %q, want catalog order %q", i, s.Items[i].ID, id)
		}
	}
	if got := s.ItemLevel("dagger"); got != 100 {
		t.Errorf("dagger level = %d, want clamp to 100", got)
	}
	if got := s.ItemLevel("grimoire"); got != 2 {
		t.Errorf("grimoire level = %d, want 2", got)
	}
	if got := s.ItemLevel("helm"); got != 0 {
		t.Errorf("backfilled helm level = %d, want 0", got)
	}

	if s.Hero != DefaultSession(catalog).Hero {
		t.Errorf("hero = %+v, want defaults when absent", s.Hero)
	}
	if s.Settings.HealCostSouls != DefaultHealCostSouls {
		t.Errorf("heal cost = %v, want %v", s.Settings.HealCostSouls, DefaultHealCostSouls)
	}
}

func TestDecodeSnapshotClampsHP(t *testing.T) {
	catalog := gamedata.MustLoadItemRegistry()

	tests := []struct {
		name      string
		data      string
		wantHero  int
		wantEnemy int // -1 for no enemy
	}{
		{
			name:      "hero above max",
			data:      `{"hero": {"hp": 500}, "enemy": {"id": "a", "name": "Gloomrat", "maxHP": 25, "hp": 40, "dps": 1}}`,
			wantHero:  30,
			wantEnemy: 25,
		},
		{
			name:      "max raised by items",
			data:      `{"hero": {"hp": 40}, "items": [{"id": "helm", "level": 2}]}`,
			wantHero:  40,
			wantEnemy: -1,
		},
		{
			name:      "dead enemy dropped",
			data:      `{"hero": {"hp": -3}, "enemy": {"id": "a", "name": "Gloomrat", "maxHP": 25, "hp": 0, "dps": 1}}`,
			wantHero:  0,
			wantEnemy: -1,
		},
	}

	for _, tt := range tests {
		s, err := DecodeSnapshot([]byte(tt.data), catalog)
		if err != nil {
			t.Fatalf("%s: DecodeSnapshot() error = %v", tt.name, err)
		}
		if s.Hero.HP != tt.wantHero {
			t.Errorf("%s: hero HP = %d, want %d", tt.name, s.Hero.HP, tt.wantHero)
		}
		switch {
		case tt.wantEnemy < 0 && s.Enemy != nil:
			t.Errorf("%s: enemy = %+v, want none", tt.name, s.Enemy)
		case tt.wantEnemy >= 0 && (s.Enemy == nil || s.Enemy.HP != tt.wantEnemy):
			t.Errorf("%s: enemy = %+v, want HP %d", tt.name, s.Enemy, tt.wantEnemy)
		}
	}
}

func TestDecodeSnapshotCapsLog(t *testing.T) {
	catalog := gamedata.MustLoadItemRegistry()

	entries := make([]string, 70)
	for i := range entries {
		entries[i] = fmt.Sprintf("entry %d", i)
	}
	data, _ := json.Marshal(map[string]any{"log": entries})

	s, err := DecodeSnapshot(data, catalog)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if len(s.Log) != MaxLogEntries || s.Log[0] != "entry 0" {
		t.Errorf("log has %d entries starting %q, want %d starting with the newest", len(s.Log), s.Log[0], MaxLogEntries)
	}
}

func TestEncodeSnapshot(t *testing.T) {
	catalog := gamedata.MustLoadItemRegistry()
	s := DefaultSession(catalog)
	s.Version = 1
	s.Stage = 4
	s.Enemy = enemyWith(80, 3, true)

	data, err := EncodeSnapshot(s)
	if err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}
	for _, key := range []string{`"version":7`, `"killsThisStage"`, `"healCostSouls"`, `"baseMaxHP"`, `"isBoss":true`} {
		if !bytes.Contains(data, []byte(key)) {
			t.Errorf("encoded snapshot missing %s: %s", key, data)
		}
	}

	back, err := DecodeSnapshot(data, catalog)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	s.Version = CurrentVersion
	if !reflect.DeepEqual(back, s) {
		t.Errorf("decoded %+v, want %+v", back, s)
	}
}

func TestDecodeOriginalSaveShape(t *testing.T) {
	catalog := gamedata.MustLoadItemRegistry()
	data := `{"version":6,"stage":3,"killsThisStage":4,"totalKills":24,
		"hero":{"baseMaxHP":30,"baseDPS":2,"hp":18},
		"resources":{"souls":41.5,"bones":88,"gloom":7,"crystal":1},
		"items":[{"id":"dagger","level":4},{"id":"helm","level":1}],
		"enemy":{"name":"Mope Drake","maxHP":96,"hp":50,"dps":2,"isBoss":false},
		"log":["Defeated Gloomrat."],"settings":{"healCostSouls":10}}`

	s, err := DecodeSnapshot([]byte(data), catalog)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if s.Stage != 3 || s.TotalKills != 24 || s.Hero.HP != 18 || s.Enemy.HP != 50 {
		t.Errorf("decoded %+v", s)
	}
	if !strings.HasPrefix(s.Log[0], "Defeated") {
		t.Errorf("log = %v", s.Log)
	}
}
