package world

import (
	"errors"
	"sync"
)

// errNoChange lets a transform decline to commit without it being a failure.
var errNoChange = errors.New("no change")

type subscriber struct {
	id int
	fn func(GameState)
}

// Store holds the authoritative GameState. Every mutation goes through Update
// or TryUpdate; transforms run one at a time against the latest committed
// snapshot and must treat their input as read-only (copy slices before
// appending or editing).
type Store struct {
	mu      sync.Mutex
	state   GameState
	subs    []subscriber
	nextSub int
}

func NewStore(initial GameState) *Store {
	return &Store{state: initial}
}

// Snapshot returns the latest committed state. Its slices are shared with the
// store and must not be modified.
func (s *Store) Snapshot() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update commits fn(previous) as the new snapshot and returns it.
func (s *Store) Update(fn func(GameState) GameState) GameState {
	next, _ := s.TryUpdate(func(prev GameState) (GameState, error) {
		return fn(prev), nil
	})
	return next
}

// TryUpdate is Update for transforms that can refuse. A non-nil error leaves
// the snapshot untouched, notifies nobody and is returned to the caller
// alongside the unchanged snapshot.
func (s *Store) TryUpdate(fn func(GameState) (GameState, error)) (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.state)
	if err != nil {
		return s.state, err
	}

	next.Version = s.state.Version + 1
	s.state = next

	// Subscribers run under the lock so they see commits in order.
	for _, sub := range s.subs {
		sub.fn(next)
	}

	return next, nil
}

// OnChange registers fn to be called with every committed snapshot. fn runs
// while the store is locked and must not call back into the store.
func (s *Store) OnChange(fn func(GameState)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
