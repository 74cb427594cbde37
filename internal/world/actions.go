package world

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/Scrimzay/cookiewarriors/internal/catalog"
)

var (
	ErrNotPlaying        = errors.New("game is not being played")
	ErrArchetypeNotFound = errors.New("archetype not found")
	ErrOutOfArena        = errors.New("position outside the arena")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidSpeed      = errors.New("speed multiplier must be positive")
)

// deployCookie appends a cookie of the selected archetype at pos.
func deployCookie(prev GameState, pos Position, arena Arena, rng *rand.Rand) (GameState, Cookie, error) {
	if prev.Status != StatusPlaying {
		return prev, Cookie{}, ErrNotPlaying
	}

	if !arena.Contains(pos) {
		return prev, Cookie{}, fmt.Errorf("deploy at (%.1f, %.1f): %w", pos.X, pos.Y, ErrOutOfArena)
	}

	a, ok := catalog.Lookup(prev.SelectedArchetype)
	if !ok {
		return prev, Cookie{}, fmt.Errorf("deploy %q: %w", prev.SelectedArchetype, ErrArchetypeNotFound)
	}

	c := newCookie(a, pos, rng)
	next := prev
	next.Cookies = append(slices.Clone(prev.Cookies), c)
	return next, c, nil
}

// selectCookie marks id as the only selected cookie. An unknown id leaves
// every cookie deselected.
func selectCookie(prev GameState, id string) GameState {
	next := prev
	next.Cookies = make([]Cookie, len(prev.Cookies))
	for i, c := range prev.Cookies {
		c.Selected = c.ID == id
		next.Cookies[i] = c
	}
	return next
}

// SelectedCookie returns the selected cookie, if any.
func (s GameState) SelectedCookie() (Cookie, bool) {
	for _, c := range s.Cookies {
		if c.Selected {
			return c, true
		}
	}
	return Cookie{}, false
}
