package world

import (
	"math/rand"
	"slices"
)

// SpawnRules bounds the monster spawner.
type SpawnRules struct {
	Cap        int     // no spawn once this many monsters exist
	BossChance float64 // probability a spawn is a boss
	Margin     float64 // distance kept from the arena edge
}

var DefaultSpawnRules = SpawnRules{Cap: 5, BossChance: 0.1, Margin: 50}

func (r SpawnRules) pickVariant(rng *rand.Rand) Variant {
	if rng.Float64() < r.BossChance {
		return VariantBoss
	}
	return VariantBasic
}

// spawnMonster appends one monster when the population is under the cap.
// ok is false when the cap was reached and prev is returned untouched.
func spawnMonster(prev GameState, rules SpawnRules, arena Arena, rng *rand.Rand) (next GameState, spawned Monster, ok bool) {
	if len(prev.Monsters) >= rules.Cap {
		return prev, Monster{}, false
	}

	v := rules.pickVariant(rng)
	spawned = newMonster(v, arena.RandomPosition(rng, rules.Margin))

	next = prev
	next.Monsters = append(slices.Clone(prev.Monsters), spawned)
	return next, spawned, true
}
