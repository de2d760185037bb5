package store

import (
	"time"

	"github.com/daas/portwatch/internal/maneuver"
)

// DefaultStatusLimit caps the number of snapshot entries listed in a status report.
const DefaultStatusLimit = 30

// Status summarizes the store for the status query.
type Status struct {
	// Checked is false until the first successful poll.
	Checked bool `json:"checked"`

	// CheckedAt is the time of the last successful poll.
	CheckedAt time.Time `json:"checked_at,omitempty"`

	// TotalVessels counts distinct vessels ever indexed.
	TotalVessels int `json:"total_vessels"`

	// Current is the number of maneuvers in the latest snapshot.
	Current int `json:"current"`

	// Maneuvers holds at most limit entries of the latest snapshot, in listing order.
	Maneuvers []maneuver.Maneuver `json:"maneuvers"`
}

// Truncated reports whether the listing was cut to the limit.
func (st Status) Truncated() bool {
	return len(st.Maneuvers) < st.Current
}

// Status reports the store state with at most limit listed maneuvers.
// A non-positive limit falls back to DefaultStatusLimit.
func (s *Store) Status(limit int) Status {
	if limit <= 0 {
		limit = DefaultStatusLimit
	}

	state := s.Current()
	if len(state.Snapshot) == 0 {
		return Status{Maneuvers: []maneuver.Maneuver{}}
	}

	listed := state.Snapshot
	if len(listed) > limit {
		listed = listed[:limit]
	}

	return Status{
		Checked:      true,
		CheckedAt:    state.CheckedAt,
		TotalVessels: len(state.Index),
		Current:      len(state.Snapshot),
		Maneuvers:    listed,
	}
}
