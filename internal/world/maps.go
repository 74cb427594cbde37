package world

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/Scrimzay/cookiewarriors/internal/catalog"
)

// Arena is the playfield rectangle, origin top-left.
type Arena struct {
	Width  float64
	Height float64
}

var DefaultArena = Arena{Width: 800, Height: 600}

// Contains reports whether p lies inside the arena, edges included.
func (a Arena) Contains(p Position) bool {
	return p.X >= 0 && p.X <= a.Width && p.Y >= 0 && p.Y <= a.Height
}

// RandomPosition picks a point uniformly inside the arena shrunk by margin on
// every side. An axis too short for its margins yields its midpoint.
func (a Arena) RandomPosition(rng *rand.Rand, margin float64) Position {
	return Position{
		X: spread(rng, a.Width, margin),
		Y: spread(rng, a.Height, margin),
	}
}

func spread(rng *rand.Rand, length, margin float64) float64 {
	if span := length - margin*2; span > 0 {
		return rng.Float64()*span + margin
	}
	return length / 2
}

// Placement is one cookie a layout puts down when a session starts.
type Placement struct {
	ArchetypeID string
	Position
}

// Layout is the opening setup of a session.
type Layout struct {
	Name          string
	SpawnMargin   float64 // keeps random spawns off the arena edge
	Cookies       []Placement
	OpeningBasics int // basic monsters present at start
}

var layouts = map[string]Layout{
	"classic": {
		Name:        "classic",
		SpawnMargin: 50,
		Cookies: []Placement{
			{ArchetypeID: "fire-cookie", Position: Position{X: 150, Y: 300}},
			{ArchetypeID: "ice-cookie", Position: Position{X: 200, Y: 250}},
			{ArchetypeID: "lightning-cookie", Position: Position{X: 100, Y: 350}},
		},
		OpeningBasics: 2,
	},
	"forest": {
		Name:        "forest",
		SpawnMargin: 100,
		Cookies: []Placement{
			{ArchetypeID: "fire-cookie", Position: Position{X: 250, Y: 300}},
			{ArchetypeID: "ice-cookie", Position: Position{X: 300, Y: 250}},
			{ArchetypeID: "lightning-cookie", Position: Position{X: 200, Y: 350}},
		},
		OpeningBasics: 2,
	},
}

// LayoutByName returns a named layout.
func LayoutByName(name string) (Layout, error) {
	l, ok := layouts[name]
	if !ok {
		return Layout{}, fmt.Errorf("unknown layout %q (have %v)", name, LayoutNames())
	}
	return l, nil
}

func LayoutNames() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// openingState builds the state a fresh session starts from. Placements whose
// archetype is missing from the catalog are skipped.
func openingState(l Layout, arena Arena, rng *rand.Rand) ([]Cookie, []Monster) {
	cookies := make([]Cookie, 0, len(l.Cookies))
	for _, p := range l.Cookies {
		a, ok := catalog.Lookup(p.ArchetypeID)
		if !ok {
			continue
		}
		cookies = append(cookies, newCookie(a, p.Position, rng))
	}

	monsters := make([]Monster, 0, l.OpeningBasics)
	for i := 0; i < l.OpeningBasics; i++ {
		monsters = append(monsters, newMonster(VariantBasic, arena.RandomPosition(rng, l.SpawnMargin)))
	}

	return cookies, monsters
}
