package world

import (
	"math"
	"math/rand"
	"time"

	"github.com/Scrimzay/cookiewarriors/internal/catalog"
	"github.com/google/uuid"
)

type Position struct {
	X float64
	Y float64
}

// DistanceTo is the Euclidean distance between two points.
func (p Position) DistanceTo(o Position) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

// Variant is the monster kind, fixed at creation.
type Variant string

const (
	VariantBasic Variant = "basic"
	VariantBoss  Variant = "boss"
)

func (v Variant) String() string {
	return string(v)
}

func (v Variant) Health() int {
	switch v {
	case VariantBoss:
		return 200

	default:
		return 80
	}
}

func (v Variant) Size() float64 {
	switch v {
	case VariantBoss:
		return 60

	default:
		return 45
	}
}

// Speed is the distance covered per movement tick.
func (v Variant) Speed() float64 {
	switch v {
	case VariantBoss:
		return 1

	default:
		return 2
	}
}

func (v Variant) Damage() int {
	switch v {
	case VariantBoss:
		return 30

	default:
		return 15
	}
}

// Cookie is a deployed player unit. Cookies never move; Direction is only a
// facing for the views.
type Cookie struct {
	ID        string
	Archetype *catalog.Archetype
	Position
	Health     int
	MaxHealth  int
	Selected   bool
	Direction  float64 // radians
	LastAttack time.Time
}

// Monster is an AI unit that walks toward the nearest cookie.
// Health, Damage and LastAttack are carried for the views; nothing applies
// damage yet.
type Monster struct {
	ID      string
	Variant Variant
	Position
	Health     int
	MaxHealth  int
	Size       float64
	Speed      float64
	Damage     int
	LastAttack time.Time
}

func newCookie(a *catalog.Archetype, pos Position, rng *rand.Rand) Cookie {
	return Cookie{
		ID:        "cookie-" + uuid.NewString(),
		Archetype: a,
		Position:  pos,
		Health:    a.Health,
		MaxHealth: a.Health,
		Direction: rng.Float64() * 2 * math.Pi,
	}
}

func newMonster(v Variant, pos Position) Monster {
	return Monster{
		ID:        "monster-" + uuid.NewString(),
		Variant:   v,
		Position:  pos,
		Health:    v.Health(),
		MaxHealth: v.Health(),
		Size:      v.Size(),
		Speed:     v.Speed(),
		Damage:    v.Damage(),
	}
}
