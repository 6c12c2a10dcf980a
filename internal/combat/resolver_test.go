package combat

import (
	"math/rand"
	"testing"

	"github.com/samdwyer/darkidle/internal/entity"
	"github.com/samdwyer/darkidle/internal/gamedata"
)

// scriptedRand replays a fixed sequence of Float64 values. Intn always
// returns 0 so name and id draws do not consume the script.
type scriptedRand struct {
	floats []float64
	next   int
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	f := s.floats[s.next%len(s.floats)]
	s.next++
	return f
}

func (s *scriptedRand) Intn(n int) int { return 0 }

func TestComputeStatsDefaultHero(t *testing.T) {
	catalog := gamedata.MustLoadItemRegistry()

	got := ComputeStats(entity.NewHero(), nil, catalog)
	want := Stats{MaxHP: 30, DPS: 2, LootMult: 1, SoulsPerSec: 0, DR: 0, APS: 1}
	if got != want {
		t.Errorf("ComputeStats() = %+v, want %+v", got, want)
	}
}

func TestComputeStatsDagger(t *testing.T) {
	catalog := gamedata.MustLoadItemRegistry()

	items := []entity.Item{{ID: "dagger", Level: 3}}
	got := ComputeStats(entity.NewHero(), items, catalog)
	if got.DPS != 5 {
		t.Errorf("DPS = %v, want (2+3)*1 = 5", got.DPS)
	}
}

func TestComputeStatsCombinesItems(t *testing.T) {
	catalog := gamedata.MustLoadItemRegistry()

	items := []entity.Item{
		{ID: "dagger", Level: 2},   // +2 dps
		{ID: "grimoire", Level: 5}, // x1.5 dps
		{ID: "helm", Level: 2},     // +10 hp
		{ID: "banner", Level: 10},  // x2 hp
		{ID: "armor", Level: 3},    // 3 dr
		{ID: "totem", Level: 4},    // 2 souls/s
		{ID: "ink", Level: 0},      // ignored
	}
	got := ComputeStats(entity.NewHero(), items, catalog)

	if got.DPS != 6 {
		t.Errorf("DPS = %v, want (2+2)*1.5 = 6", got.DPS)
	}
	if got.MaxHP != 80 {
		t.Errorf("MaxHP = %d, want ceil((30+10)*2) = 80", got.MaxHP)
	}
	if got.DR != 3 {
		t.Errorf("DR = %d, want 3", got.DR)
	}
	if got.SoulsPerSec != 2 {
		t.Errorf("SoulsPerSec = %v, want 2", got.SoulsPerSec)
	}
	if got.LootMult != 1 {
		t.Errorf("LootMult = %v, want 1 for level 0 ink", got.LootMult)
	}
}

func TestComputeStatsSkipsUnknownItems(t *testing.T) {
	catalog := gamedata.MustLoadItemRegistry()

	items := []entity.Item{{ID: "excalibur", Level: 9}, {ID: "dagger", Level: -2}}
	got := ComputeStats(entity.NewHero(), items, catalog)
	if got.DPS != 2 || got.MaxHP != 30 {
		t.Errorf("ComputeStats() = %+v, want defaults", got)
	}
}

func TestComputeStatsAPSCap(t *testing.T) {
	catalog := gamedata.MustLoadItemRegistry()

	items := []entity.Item{{ID: "metronome", Level: 25}} // 1 + 5 = 6 before cap
	got := ComputeStats(entity.NewHero(), items, catalog)
	if got.APS != MaxAPS {
		t.Errorf("APS = %v, want cap %v", got.APS, MaxAPS)
	}
}

func TestStatsDamage(t *testing.T) {
	tests := []struct {
		stats  Stats
		tick   int
		strike int
	}{
		{Stats{DPS: 2, APS: 1}, 2, 1},
		{Stats{DPS: 5, APS: 1.4}, 7, 2},
		{Stats{DPS: 0, APS: 1}, 0, 1},
		{Stats{DPS: 0.9, APS: 1}, 0, 1},
		{Stats{DPS: 11, APS: 5}, 55, 5},
	}

	for _, tt := range tests {
		if got := tt.stats.TickDamage(); got != tt.tick {
			t.Errorf("%+v.TickDamage() = %d, want %d", tt.stats, got, tt.tick)
		}
		if got := tt.stats.StrikeDamage(); got != tt.strike {
			t.Errorf("%+v.StrikeDamage() = %d, want %d", tt.stats, got, tt.strike)
		}
	}
}

func TestEnemyScaling(t *testing.T) {
	tests := []struct {
		stage  int
		boss   bool
		wantHP int
		wantDP int
	}{
		{1, false, 25, 1},
		{1, true, 150, 2},
		{2, false, 55, 1},
		{3, false, 96, 2},
		{10, false, 607, 7},
		{10, true, 3642, 9},
	}

	for _, tt := range tests {
		hp, dps := EnemyScaling(tt.stage, tt.boss)
		if hp != tt.wantHP || dps != tt.wantDP {
			t.Errorf("EnemyScaling(%d, %v) = (%d, %d), want (%d, %d)",
				tt.stage, tt.boss, hp, dps, tt.wantHP, tt.wantDP)
		}
	}
}

func TestIsBossSpawn(t *testing.T) {
	tests := []struct {
		kills int
		want  bool
	}{
		{0, false},
		{1, false},
		{9, false},
		{10, true},
		{11, false},
		{20, true},
	}

	for _, tt := range tests {
		if got := IsBossSpawn(tt.kills); got != tt.want {
			t.Errorf("IsBossSpawn(%d) = %v, want %v", tt.kills, got, tt.want)
		}
	}
}

func TestSpawnerScaleEnemy(t *testing.T) {
	roster := gamedata.MustLoadEnemyRegistry()
	spawner := NewSpawner(roster, rand.New(rand.NewSource(1)))

	e := spawner.ScaleEnemy(1, false)
	if e.MaxHP != 25 || e.HP != 25 || e.DPS != 1 || e.IsBoss {
		t.Errorf("ScaleEnemy(1, false) = %+v, want 25/25 hp, 1 dps, not boss", e)
	}
	if e.Name == "" || e.ID == "" {
		t.Errorf("spawned enemy missing name or id: %+v", e)
	}

	boss := spawner.Next(1, 10)
	if !boss.IsBoss || boss.MaxHP != 150 {
		t.Errorf("Next(1, 10) = %+v, want a 150 hp boss", boss)
	}
	if boss.ID == e.ID {
		t.Error("two spawns share an id")
	}
}

func TestSpawnerDeterministic(t *testing.T) {
	roster := gamedata.MustLoadEnemyRegistry()
	s1 := NewSpawner(roster, rand.New(rand.NewSource(42)))
	s2 := NewSpawner(roster, rand.New(rand.NewSource(42)))

	for i := 0; i < 5; i++ {
		a, b := s1.ScaleEnemy(i+1, false), s2.ScaleEnemy(i+1, false)
		if *a != *b {
			t.Errorf("spawn %d mismatch: %+v != %+v", i, a, b)
		}
	}
}

func TestRollLoot(t *testing.T) {
	tests := []struct {
		name   string
		floats []float64
		mult   float64
		boss   bool
		want   Loot
	}{
		{
			name:   "regular no gloom",
			floats: []float64{0, 0.9, 0},
			mult:   1,
			want:   Loot{Bones: 3, Souls: 2},
		},
		{
			name:   "regular with gloom",
			floats: []float64{0.5, 0.1, 0.5, 0.5},
			mult:   1,
			want:   Loot{Bones: 5, Gloom: 2, Souls: 4}, // ceil(4.5), ceil(2), ceil(4)
		},
		{
			name:   "boss all drops",
			floats: []float64{0, 0.4, 0, 0, 0.1},
			mult:   1,
			boss:   true,
			want:   Loot{Bones: 15, Gloom: 3, Souls: 8, Crystal: 1},
		},
		{
			name:   "boss misses crystal",
			floats: []float64{0, 0.9, 0, 0.5},
			mult:   2,
			boss:   true,
			want:   Loot{Bones: 30, Souls: 16},
		},
	}

	for _, tt := range tests {
		got := RollLoot(&scriptedRand{floats: tt.floats}, tt.mult, tt.boss)
		if got != tt.want {
			t.Errorf("%s: RollLoot() = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestLootApplyAndString(t *testing.T) {
	res := entity.NewResources()
	l := Loot{Bones: 4, Souls: 3, Crystal: 1}
	l.Apply(res)

	if res.Get(gamedata.Bones) != 4 || res.Get(gamedata.Souls) != 3 || res.Get(gamedata.Crystal) != 1 {
		t.Errorf("resources after Apply = %v", res)
	}
	if got, want := l.String(), "🦴 +4 Bones • 🕯️ +3 Souls • 💎 +1 Crystal"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRollDeathPenalty(t *testing.T) {
	res := entity.Resources{gamedata.Souls: 100, gamedata.Bones: 50, gamedata.Gloom: 40, gamedata.Crystal: 3}

	loss := RollDeathPenalty(&scriptedRand{floats: []float64{0.2}}, res)
	if loss != (Loss{Souls: 20, Bones: 5, Gloom: 2}) {
		t.Errorf("RollDeathPenalty() = %+v, want 20/5/2", loss)
	}

	loss.Apply(res)
	if res.Get(gamedata.Souls) != 80 || res.Get(gamedata.Bones) != 45 || res.Get(gamedata.Gloom) != 38 {
		t.Errorf("resources after penalty = %v, want 80/45/38", res)
	}
	if res.Get(gamedata.Crystal) != 3 {
		t.Errorf("crystal = %v, must never be lost", res.Get(gamedata.Crystal))
	}

	spared := RollDeathPenalty(&scriptedRand{floats: []float64{0.7}}, res)
	if spared.Gloom != 0 {
		t.Errorf("gloom loss = %d on a failed roll, want 0", spared.Gloom)
	}
}

func TestRetaliate(t *testing.T) {
	roster := gamedata.MustLoadEnemyRegistry()
	r := NewResolver(roster, rand.New(rand.NewSource(1)))

	tests := []struct {
		enemyDPS int
		dr       int
		heroHP   int
		wantHP   int
	}{
		{3, 0, 30, 27},
		{3, 3, 30, 30}, // armor absorbs everything
		{3, 5, 30, 30},
		{50, 0, 30, 0},
	}

	for _, tt := range tests {
		hero := entity.Hero{BaseMaxHP: 30, BaseDPS: 2, HP: tt.heroHP}
		enemy := entity.NewEnemy("x", "Spite Wisp", 10, tt.enemyDPS, false)
		r.Retaliate(enemy, &hero, Stats{MaxHP: 30, DR: tt.dr})
		if hero.HP != tt.wantHP {
			t.Errorf("Retaliate(dps %d, dr %d) hero HP = %d, want %d", tt.enemyDPS, tt.dr, hero.HP, tt.wantHP)
		}
	}
}

func TestStrikeMonotonic(t *testing.T) {
	r := NewResolver(gamedata.MustLoadEnemyRegistry(), rand.New(rand.NewSource(1)))
	enemy := entity.NewEnemy("x", "Mope Drake", 10, 1, false)

	res := r.Strike(enemy, -4)
	if enemy.HP != 10 || res.Damage != 0 || res.Killed {
		t.Errorf("Strike(-4) = %+v, HP %d; want no change", res, enemy.HP)
	}

	res = r.Strike(enemy, 12)
	if enemy.HP != 0 || res.Damage != 10 || !res.Killed {
		t.Errorf("Strike(12) = %+v, HP %d; want kill for 10", res, enemy.HP)
	}
}
