package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnMonster_StopsAtCap(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := playing(nil, nil)

	for i := 0; i < 5; i++ {
		var ok bool
		s, _, ok = spawnMonster(s, DefaultSpawnRules, DefaultArena, rng)
		require.True(t, ok, "spawn %d", i+1)
	}
	require.Len(t, s.Monsters, 5)

	next, _, ok := spawnMonster(s, DefaultSpawnRules, DefaultArena, rng)
	assert.False(t, ok)
	assert.Len(t, next.Monsters, 5)
}

func TestSpawnMonster_VariantFollowsBossChance(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, m, ok := spawnMonster(playing(nil, nil), SpawnRules{Cap: 5, BossChance: 1}, DefaultArena, rng)
	require.True(t, ok)
	assert.Equal(t, VariantBoss, m.Variant)
	assert.Equal(t, 200, m.Health)
	assert.Equal(t, 200, m.MaxHealth)
	assert.Equal(t, 1.0, m.Speed)

	_, m, ok = spawnMonster(playing(nil, nil), SpawnRules{Cap: 5, BossChance: 0}, DefaultArena, rng)
	require.True(t, ok)
	assert.Equal(t, VariantBasic, m.Variant)
	assert.Equal(t, 80, m.Health)
	assert.Equal(t, 2.0, m.Speed)
}

func TestSpawnMonster_BossShareRoughlyTenPercent(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	rules := SpawnRules{Cap: 1, BossChance: 0.1, Margin: 50}

	bosses := 0
	const n = 5000
	for i := 0; i < n; i++ {
		_, m, _ := spawnMonster(playing(nil, nil), rules, DefaultArena, rng)
		if m.Variant == VariantBoss {
			bosses++
		}
	}
	assert.InDelta(t, 0.1, float64(bosses)/n, 0.02)
}

func TestSpawnMonster_InsideMargins(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	rules := SpawnRules{Cap: 1, BossChance: 0.1, Margin: 50}

	for i := 0; i < 500; i++ {
		_, m, _ := spawnMonster(playing(nil, nil), rules, DefaultArena, rng)
		assert.GreaterOrEqual(t, m.X, 50.0)
		assert.LessOrEqual(t, m.X, 750.0)
		assert.GreaterOrEqual(t, m.Y, 50.0)
		assert.LessOrEqual(t, m.Y, 550.0)
	}
}

func TestSpawnMonster_UniqueIDs(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s := playing(nil, nil)
	rules := SpawnRules{Cap: 50, BossChance: 0.1, Margin: 50}

	for i := 0; i < 50; i++ {
		s, _, _ = spawnMonster(s, rules, DefaultArena, rng)
	}

	seen := make(map[string]bool)
	for _, m := range s.Monsters {
		assert.False(t, seen[m.ID])
		seen[m.ID] = true
	}
}
