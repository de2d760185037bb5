package store

import (
	"sync/atomic"
	"time"

	"github.com/daas/portwatch/internal/maneuver"
)

// State is an immutable view of the store at one point in time.
// Callers must not modify the slice or map they receive.
type State struct {
	// Snapshot is the full listing seen by the last successful poll.
	Snapshot []maneuver.Maneuver

	// Index maps lowercased vessel names to the last record seen for them.
	// Entries are never removed.
	Index map[string]maneuver.Maneuver

	// CheckedAt is the time of the last successful poll.
	CheckedAt time.Time
}

// Store is the shared snapshot holder. Apply must only be called from one goroutine.
type Store struct {
	state atomic.Pointer[State]
}

// New creates an empty store in the pre-first-check state.
func New() *Store {
	s := &Store{}
	s.state.Store(&State{
		Snapshot: []maneuver.Maneuver{},
		Index:    map[string]maneuver.Maneuver{},
	})
	return s
}

// Current returns the latest published state.
func (s *Store) Current() *State {
	return s.state.Load()
}

// Previous returns the snapshot the next poll should be compared against.
func (s *Store) Previous() []maneuver.Maneuver {
	return s.Current().Snapshot
}

// Apply replaces the snapshot with current and merges its records into the index.
// The new state is built aside and swapped in at once.
func (s *Store) Apply(current []maneuver.Maneuver, at time.Time) *State {
	old := s.Current()

	index := make(map[string]maneuver.Maneuver, len(old.Index)+len(current))
	for k, v := range old.Index {
		index[k] = v
	}
	for _, m := range current {
		index[m.Key()] = m
	}

	snapshot := make([]maneuver.Maneuver, len(current))
	copy(snapshot, current)

	next := &State{
		Snapshot:  snapshot,
		Index:     index,
		CheckedAt: at,
	}
	s.state.Store(next)
	return next
}

// Checked reports whether at least one successful poll has populated the snapshot.
func (s *Store) Checked() bool {
	return len(s.Current().Snapshot) > 0
}

// Lookup finds a vessel by name, ignoring case.
func (s *Store) Lookup(name string) (maneuver.Maneuver, bool) {
	m, ok := s.Current().Index[maneuver.NormalizeName(name)]
	return m, ok
}
