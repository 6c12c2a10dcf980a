package game

import (
	"math/rand"
	"testing"

	"github.com/samdwyer/darkidle/internal/combat"
	"github.com/samdwyer/darkidle/internal/entity"
	"github.com/samdwyer/darkidle/internal/gamedata"
)

// scriptedRand cycles through floats; Intn always returns 0.
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

func (s *scriptedRand) Intn(int) int { return 0 }

func newTestEngine(t testing.TB, rng combat.Rand) *Engine {
	t.Helper()
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return NewEngine(gamedata.MustLoadItemRegistry(), gamedata.MustLoadEnemyRegistry(), rng)
}

func enemyWith(hp, dps int, boss bool) *entity.Enemy {
	return entity.NewEnemy("test-enemy", "Test Dummy", hp, dps, boss)
}
