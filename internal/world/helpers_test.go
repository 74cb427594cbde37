package world

import (
	"math/rand"
	"testing"
	"time"

	"github.com/Scrimzay/cookiewarriors/internal/catalog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func newTestWorld(t *testing.T, opts Options) *World {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(42))
	}
	if opts.MeterProvider == nil {
		opts.MeterProvider = noop.NewMeterProvider()
	}
	// Long intervals keep the scheduler out of the way unless a test asks for it.
	if opts.MoveInterval == 0 {
		opts.MoveInterval = time.Hour
	}
	if opts.SpawnInterval == 0 {
		opts.SpawnInterval = time.Hour
	}
	opts.Logger = zerolog.Nop()

	w := New(opts)
	t.Cleanup(func() { _ = w.ReturnToMenu() })
	return w
}

func testCookie(t *testing.T, id string, x, y float64) Cookie {
	t.Helper()
	a, ok := catalog.Lookup(catalog.DefaultID)
	require.True(t, ok)
	return Cookie{ID: id, Archetype: a, Position: Position{X: x, Y: y}, Health: a.Health, MaxHealth: a.Health}
}

func testMonster(id string, v Variant, x, y float64) Monster {
	m := newMonster(v, Position{X: x, Y: y})
	m.ID = id
	return m
}

func playing(cookies []Cookie, monsters []Monster) GameState {
	return GameState{
		Status:            StatusPlaying,
		Wave:              1,
		SelectedArchetype: catalog.DefaultID,
		Cookies:           cookies,
		Monsters:          monsters,
	}
}
