package world

import (
	"math"
	"runtime/debug"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	minTickInterval = 10 * time.Millisecond
	maxTickInterval = 10 * time.Second
)

// Task is one periodic job owned by a Scheduler.
type Task struct {
	Name     string
	Interval time.Duration // at 1x speed
	Run      func()
}

// run is one Start..Stop lifetime of the scheduler.
type run struct {
	stop   chan struct{}
	retune []chan struct{}
	done   sync.WaitGroup
}

// Scheduler runs a fixed set of tasks on their own tickers between Start and
// Stop. Once Stop returns no task body is executing and none will run again
// until the next Start.
type Scheduler struct {
	tasks []Task
	log   zerolog.Logger

	mu      sync.Mutex
	speed   float64
	current *run
}

func NewScheduler(log zerolog.Logger, tasks ...Task) *Scheduler {
	return &Scheduler{
		tasks: tasks,
		log:   log,
		speed: 1.0,
	}
}

// Start launches every task. Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return
	}

	r := &run{stop: make(chan struct{})}
	for _, t := range s.tasks {
		retune := make(chan struct{}, 1) // buffered so SetSpeed never blocks
		r.retune = append(r.retune, retune)
		r.done.Add(1)
		go s.loop(t, r, retune)
	}
	s.current = r
	s.log.Debug().Int("tasks", len(s.tasks)).Float64("speed", s.speed).Msg("scheduler started")
}

// Stop cancels every task and waits for in-flight ticks to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	r := s.current
	s.current = nil
	s.mu.Unlock()

	if r == nil {
		return
	}

	close(r.stop)
	r.done.Wait()
	s.log.Debug().Msg("scheduler stopped")
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

func (s *Scheduler) Speed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speed
}

// SetSpeed rescales every task interval by 1/multiplier. Running tasks pick
// up the new interval without a restart.
func (s *Scheduler) SetSpeed(multiplier float64) error {
	if multiplier <= 0 || math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		return ErrInvalidSpeed
	}

	s.mu.Lock()
	s.speed = multiplier
	r := s.current
	s.mu.Unlock()

	if r != nil {
		for _, ch := range r.retune {
			select {
			case ch <- struct{}{}:
			default:
				// Already pending, skip
			}
		}
	}

	s.log.Info().Float64("speed", multiplier).Msg("simulation speed changed")
	return nil
}

// Interval is the effective period of t at the current speed. Scaling is
// clamped to 10ms..10s, widened to include t.Interval so the configured
// period is always reachable at 1x.
func (s *Scheduler) Interval(t Task) time.Duration {
	s.mu.Lock()
	speed := s.speed
	s.mu.Unlock()

	lo, hi := minTickInterval, max(maxTickInterval, t.Interval)
	if t.Interval > 0 && t.Interval < lo {
		lo = t.Interval
	}

	interval := time.Duration(float64(t.Interval) / speed)
	if interval < lo {
		interval = lo // Min for high speeds (avoid overload)
	} else if interval > hi {
		interval = hi
	}
	return interval
}

func (s *Scheduler) loop(t Task, r *run, retune <-chan struct{}) {
	defer r.done.Done()

	ticker := time.NewTicker(s.Interval(t))
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return

		case <-retune:
			interval := s.Interval(t)
			ticker.Reset(interval)
			s.log.Debug().Str("task", t.Name).Dur("interval", interval).Msg("ticker reset")

		case <-ticker.C:
			// select picks randomly among ready cases; never tick after a stop
			select {
			case <-r.stop:
				return
			default:
			}
			s.runTick(t)
		}
	}
}

func (s *Scheduler) runTick(t Task) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error().
				Str("task", t.Name).
				Interface("panic", rec).
				Str("stack", string(debug.Stack())).
				Msg("panic in scheduled task")
		}
	}()

	t.Run()
}
