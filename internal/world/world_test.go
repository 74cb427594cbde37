package world

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestWorld_StartsInMenu(t *testing.T) {
	w := newTestWorld(t, Options{})

	s := w.Snapshot()
	assert.Equal(t, StatusMenu, s.Status)
	assert.Equal(t, "fire-cookie", s.SelectedArchetype)
	assert.Empty(t, s.Cookies)
	assert.Empty(t, s.Monsters)
	assert.False(t, w.Running())
}

func TestWorld_StartGameSeedsFreshSession(t *testing.T) {
	w := newTestWorld(t, Options{})

	require.NoError(t, w.StartGame())
	s := w.Snapshot()

	assert.Equal(t, StatusPlaying, s.Status)
	assert.NotEmpty(t, s.Session)
	assert.Len(t, s.Cookies, 3)
	assert.Len(t, s.Monsters, 2)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 1, s.Wave)
	assert.True(t, w.Running())
}

func TestWorld_StartGameTwiceIsInvalid(t *testing.T) {
	w := newTestWorld(t, Options{})

	require.NoError(t, w.StartGame())
	session := w.Snapshot().Session

	require.ErrorIs(t, w.StartGame(), ErrInvalidTransition)
	assert.Equal(t, session, w.Snapshot().Session)
}

func TestWorld_ReturnToMenuDiscardsSession(t *testing.T) {
	w := newTestWorld(t, Options{})
	require.NoError(t, w.StartGame())
	w.SetSelectedArchetype("ice-cookie")
	_, err := w.Deploy(400, 300)
	require.NoError(t, err)

	require.NoError(t, w.ReturnToMenu())

	s := w.Snapshot()
	assert.Equal(t, StatusMenu, s.Status)
	assert.Empty(t, s.Session)
	assert.Empty(t, s.Cookies)
	assert.Empty(t, s.Monsters)
	assert.Equal(t, "ice-cookie", s.SelectedArchetype)
	assert.False(t, w.Running())

	// idempotent from the menu
	require.NoError(t, w.ReturnToMenu())
}

func TestWorld_RestartReplacesState(t *testing.T) {
	w := newTestWorld(t, Options{})

	require.NoError(t, w.StartGame())
	_, err := w.Deploy(10, 10)
	require.NoError(t, err)
	first := w.Snapshot().Session

	require.NoError(t, w.ReturnToMenu())
	require.NoError(t, w.StartGame())

	s := w.Snapshot()
	assert.NotEqual(t, first, s.Session)
	assert.Len(t, s.Cookies, 3)
}

func TestWorld_DeployAndReject(t *testing.T) {
	w := newTestWorld(t, Options{})

	_, err := w.Deploy(100, 100)
	require.ErrorIs(t, err, ErrNotPlaying)

	require.NoError(t, w.StartGame())
	before := len(w.Snapshot().Cookies)

	c, err := w.Deploy(100, 100)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 100, Y: 100}, c.Position)
	assert.Len(t, w.Snapshot().Cookies, before+1)

	w.SetSelectedArchetype("cake-cookie")
	version := w.Snapshot().Version
	_, err = w.Deploy(100, 100)
	require.ErrorIs(t, err, ErrArchetypeNotFound)
	assert.Len(t, w.Snapshot().Cookies, before+1)
	assert.Equal(t, version, w.Snapshot().Version)
}

func TestWorld_Select(t *testing.T) {
	w := newTestWorld(t, Options{})
	require.NoError(t, w.StartGame())

	target := w.Snapshot().Cookies[1].ID
	w.Select(target)

	got, ok := w.Snapshot().SelectedCookie()
	require.True(t, ok)
	assert.Equal(t, target, got.ID)

	w.Select("missing")
	_, ok = w.Snapshot().SelectedCookie()
	assert.False(t, ok)
}

func TestWorld_SpawnTickHonoursCap(t *testing.T) {
	w := newTestWorld(t, Options{})
	require.NoError(t, w.StartGame())
	// start from an empty arena
	w.store.Update(func(prev GameState) GameState {
		prev.Monsters = nil
		return prev
	})

	for i := 0; i < 5; i++ {
		_, ok := w.SpawnTick()
		require.True(t, ok, "spawn %d", i+1)
	}
	_, ok := w.SpawnTick()
	assert.False(t, ok)
	assert.Len(t, w.Snapshot().Monsters, 5)
}

func TestWorld_TicksIgnoredOutsidePlay(t *testing.T) {
	w := newTestWorld(t, Options{})

	_, ok := w.SpawnTick()
	assert.False(t, ok)
	assert.Equal(t, 0, w.MoveTick())
	assert.Equal(t, uint64(0), w.Snapshot().Version)
}

func TestWorld_MoveTickMovesTowardCookies(t *testing.T) {
	w := newTestWorld(t, Options{})
	require.NoError(t, w.StartGame())

	before := w.Snapshot()
	moved := w.MoveTick()
	after := w.Snapshot()

	assert.Equal(t, len(before.Monsters), moved)
	for i := range before.Monsters {
		assert.LessOrEqual(t, before.Monsters[i].DistanceTo(after.Monsters[i].Position), before.Monsters[i].Speed+1e-9)
	}
}

func TestWorld_SchedulerDrivesSimulation(t *testing.T) {
	w := newTestWorld(t, Options{
		MoveInterval:  10 * time.Millisecond,
		SpawnInterval: 20 * time.Millisecond,
	})
	require.NoError(t, w.StartGame())
	start := w.Snapshot()

	require.Eventually(t, func() bool {
		s := w.Snapshot()
		return len(s.Monsters) == 5 && s.Monsters[0].Position != start.Monsters[0].Position
	}, 2*time.Second, 5*time.Millisecond)
}

func TestWorld_NoCommitsAfterReturnToMenu(t *testing.T) {
	w := newTestWorld(t, Options{
		MoveInterval:  10 * time.Millisecond,
		SpawnInterval: 10 * time.Millisecond,
	})
	require.NoError(t, w.StartGame())
	require.Eventually(t, func() bool { return w.Snapshot().Version > 3 }, time.Second, 5*time.Millisecond)

	require.NoError(t, w.ReturnToMenu())
	version := w.Snapshot().Version

	time.Sleep(60 * time.Millisecond)
	s := w.Snapshot()
	assert.Equal(t, version, s.Version)
	assert.Empty(t, s.Monsters)
}

func TestWorld_SetSpeed(t *testing.T) {
	w := newTestWorld(t, Options{})

	require.NoError(t, w.SetSpeed(2))
	assert.Equal(t, 2.0, w.Speed())
	require.ErrorIs(t, w.SetSpeed(0), ErrInvalidSpeed)
	require.ErrorIs(t, w.SetSpeed(-1), ErrInvalidSpeed)
	assert.Equal(t, 2.0, w.Speed())
}

func TestWorld_Metrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	w := newTestWorld(t, Options{MeterProvider: mp, BossChance: 0})
	require.NoError(t, w.StartGame())

	_, err := w.Deploy(50, 50)
	require.NoError(t, err)
	_, err = w.Deploy(5000, 50)
	require.ErrorIs(t, err, ErrOutOfArena)
	_, ok := w.SpawnTick()
	require.True(t, ok)
	w.MoveTick()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := map[string]int64{}
	gauges := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					sums[m.Name] += dp.Value
				}
			case metricdata.Gauge[int64]:
				for _, dp := range data.DataPoints {
					kind, _ := dp.Attributes.Value("kind")
					gauges[kind.AsString()] = dp.Value
				}
			}
		}
	}

	assert.Equal(t, int64(1), sums["cookiewarriors.cookies.deployed"])
	assert.Equal(t, int64(1), sums["cookiewarriors.actions.rejected"])
	assert.Equal(t, int64(1), sums["cookiewarriors.monsters.spawned"])
	assert.Equal(t, int64(2), sums["cookiewarriors.ticks"])
	assert.Equal(t, int64(4), gauges["cookie"])
	assert.Equal(t, int64(3), gauges["monster"])
}
