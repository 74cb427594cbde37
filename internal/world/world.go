package world

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/Scrimzay/cookiewarriors/internal/catalog"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type Status string

const (
	StatusMenu    Status = "menu"
	StatusPlaying Status = "playing"
	// Declared for the views; no transition reaches them yet.
	StatusPaused  Status = "paused"
	StatusVictory Status = "victory"
	StatusDefeat  Status = "defeat"
)

// GameState is one immutable snapshot of a game.
// Score and Wave are carried for the views; nothing advances them.
type GameState struct {
	Session           string // empty outside a session
	Cookies           []Cookie
	Monsters          []Monster
	Score             int
	Wave              int
	Status            Status
	SelectedArchetype string
	Version           uint64 // set by the store on commit
}

// MenuState is the state shown before a session starts.
func MenuState(selected string) GameState {
	return GameState{
		Status:            StatusMenu,
		Wave:              1,
		SelectedArchetype: selected,
	}
}

const (
	taskMove  = "move"
	taskSpawn = "spawn"
)

type Options struct {
	Arena         Arena
	Layout        Layout
	MoveInterval  time.Duration
	SpawnInterval time.Duration
	MonsterCap    int
	BossChance    float64
	Rand          *rand.Rand
	MeterProvider metric.MeterProvider
	Logger        zerolog.Logger
}

func (o *Options) setDefaults() {
	if o.Arena.Width <= 0 || o.Arena.Height <= 0 {
		o.Arena = DefaultArena
	}
	if o.Layout.Name == "" {
		o.Layout = layouts["classic"]
	}
	if o.MoveInterval <= 0 {
		o.MoveInterval = 50 * time.Millisecond
	}
	if o.SpawnInterval <= 0 {
		o.SpawnInterval = 3 * time.Second
	}
	if o.MonsterCap <= 0 {
		o.MonsterCap = DefaultSpawnRules.Cap
	}
	if o.BossChance < 0 {
		o.BossChance = 0
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.MeterProvider == nil {
		o.MeterProvider = otel.GetMeterProvider()
	}
}

// World is the session controller. It owns the store and the two periodic
// simulation tasks, and is the only way views change the game.
type World struct {
	store *Store
	sched *Scheduler

	arena  Arena
	layout Layout
	spawn  SpawnRules

	// rng is only touched inside store transforms, which the store serializes.
	rng *rand.Rand

	// lifecycle serializes StartGame/ReturnToMenu so scheduler teardown and
	// state reset never interleave with a new start.
	lifecycle sync.Mutex

	metrics *metrics
	log     zerolog.Logger
}

func New(opts Options) *World {
	opts.setDefaults()

	w := &World{
		store:  NewStore(MenuState(catalog.DefaultID)),
		arena:  opts.Arena,
		layout: opts.Layout,
		spawn: SpawnRules{
			Cap:        opts.MonsterCap,
			BossChance: opts.BossChance,
			Margin:     opts.Layout.SpawnMargin,
		},
		rng: opts.Rand,
		log: opts.Logger.With().Str("component", "world").Logger(),
	}
	w.metrics = newMetrics(opts.MeterProvider, w.store, w.log)
	w.sched = NewScheduler(
		opts.Logger.With().Str("component", "scheduler").Logger(),
		Task{Name: taskMove, Interval: opts.MoveInterval, Run: func() { w.MoveTick() }},
		Task{Name: taskSpawn, Interval: opts.SpawnInterval, Run: func() { w.SpawnTick() }},
	)

	return w
}

func (w *World) Arena() Arena {
	return w.arena
}

func (w *World) Layout() Layout {
	return w.layout
}

// Snapshot returns the latest committed state.
func (w *World) Snapshot() GameState {
	return w.store.Snapshot()
}

// OnChange subscribes fn to every committed state; see Store.OnChange.
func (w *World) OnChange(fn func(GameState)) (cancel func()) {
	return w.store.OnChange(fn)
}

// Running reports whether the simulation tasks are active.
func (w *World) Running() bool {
	return w.sched.Running()
}

// StartGame replaces the state with a freshly seeded session and starts the
// simulation tasks.
func (w *World) StartGame() error {
	w.lifecycle.Lock()
	defer w.lifecycle.Unlock()

	next, err := w.store.TryUpdate(func(prev GameState) (GameState, error) {
		if prev.Status != StatusMenu {
			return prev, ErrInvalidTransition
		}

		cookies, monsters := openingState(w.layout, w.arena, w.rng)
		return GameState{
			Session:           uuid.NewString(),
			Cookies:           cookies,
			Monsters:          monsters,
			Score:             0,
			Wave:              1,
			Status:            StatusPlaying,
			SelectedArchetype: prev.SelectedArchetype,
		}, nil
	})
	if err != nil {
		w.metrics.reject("start_game", reason(err))
		return err
	}

	w.sched.Start()
	w.log.Info().
		Str("session", next.Session).
		Str("layout", w.layout.Name).
		Int("cookies", len(next.Cookies)).
		Int("monsters", len(next.Monsters)).
		Msg("session started")
	return nil
}

// ReturnToMenu stops the simulation, waits for any running tick, then discards
// the session. Calling it from the menu is a no-op.
func (w *World) ReturnToMenu() error {
	w.lifecycle.Lock()
	defer w.lifecycle.Unlock()

	w.sched.Stop()

	prev := w.store.Snapshot()
	if prev.Status == StatusMenu {
		return nil
	}

	w.store.Update(func(prev GameState) GameState {
		return MenuState(prev.SelectedArchetype)
	})
	w.log.Info().
		Str("session", prev.Session).
		Int("cookies", len(prev.Cookies)).
		Int("monsters", len(prev.Monsters)).
		Msg("session ended")
	return nil
}

// Deploy places a cookie of the selected archetype at (x, y).
func (w *World) Deploy(x, y float64) (Cookie, error) {
	var deployed Cookie
	_, err := w.store.TryUpdate(func(prev GameState) (GameState, error) {
		next, c, err := deployCookie(prev, Position{X: x, Y: y}, w.arena, w.rng)
		deployed = c
		return next, err
	})
	if err != nil {
		w.metrics.reject("deploy", reason(err))
		w.log.Debug().Err(err).Float64("x", x).Float64("y", y).Msg("deploy rejected")
		return Cookie{}, err
	}

	w.metrics.deploy(deployed.Archetype.ID)
	w.log.Debug().Str("cookie", deployed.ID).Str("archetype", deployed.Archetype.ID).Msg("cookie deployed")
	return deployed, nil
}

// Select makes id the only selected cookie. Unknown ids deselect everything.
func (w *World) Select(id string) {
	w.store.Update(func(prev GameState) GameState {
		return selectCookie(prev, id)
	})
}

// SetSelectedArchetype chooses the archetype for the next deployment. The id
// is not checked here; an unknown id makes later deployments fail.
func (w *World) SetSelectedArchetype(id string) {
	if _, ok := catalog.Lookup(id); !ok {
		w.log.Warn().Str("archetype", id).Msg("selected archetype is not in the catalog")
	}
	w.store.Update(func(prev GameState) GameState {
		next := prev
		next.SelectedArchetype = id
		return next
	})
}

// SetSpeed changes how fast simulation ticks fire.
func (w *World) SetSpeed(multiplier float64) error {
	if err := w.sched.SetSpeed(multiplier); err != nil {
		w.metrics.reject("set_speed", reason(err))
		return err
	}
	return nil
}

func (w *World) Speed() float64 {
	return w.sched.Speed()
}

// MoveTick runs one movement step. It reports how many monsters moved.
func (w *World) MoveTick() int {
	w.metrics.tick(taskMove)

	moved := 0
	_, _ = w.store.TryUpdate(func(prev GameState) (GameState, error) {
		if prev.Status != StatusPlaying {
			return prev, ErrNotPlaying
		}
		next, n := stepMonsters(prev)
		if n == 0 {
			return prev, errNoChange
		}
		moved = n
		return next, nil
	})
	return moved
}

// SpawnTick runs one spawn decision and returns the new monster, if any.
func (w *World) SpawnTick() (Monster, bool) {
	w.metrics.tick(taskSpawn)

	var spawned Monster
	_, err := w.store.TryUpdate(func(prev GameState) (GameState, error) {
		if prev.Status != StatusPlaying {
			return prev, ErrNotPlaying
		}
		next, m, ok := spawnMonster(prev, w.spawn, w.arena, w.rng)
		if !ok {
			return prev, errNoChange
		}
		spawned = m
		return next, nil
	})
	if err != nil {
		return Monster{}, false
	}

	w.metrics.spawn(spawned.Variant)
	w.log.Debug().Str("monster", spawned.ID).Str("variant", spawned.Variant.String()).Msg("monster spawned")
	return spawned, true
}

// reason is the metric label for a rejected action.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrNotPlaying):
		return "not_playing"
	case errors.Is(err, ErrArchetypeNotFound):
		return "archetype_not_found"
	case errors.Is(err, ErrOutOfArena):
		return "out_of_arena"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrInvalidSpeed):
		return "invalid_speed"
	default:
		return "other"
	}
}
