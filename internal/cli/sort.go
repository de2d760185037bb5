package cli

import (
	"sort"
	"time"

	"github.com/daas/portwatch/internal/maneuver"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByListing SortOrder = "listing"
	SortByDate    SortOrder = "date"
	SortByBerth   SortOrder = "berth"
	SortByName    SortOrder = "name"
)

// sortManeuvers sorts maneuvers in place. SortByListing keeps the page order.
func sortManeuvers(maneuvers []maneuver.Maneuver, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(maneuvers, func(i, j int) bool {
			return compareBySchedule(maneuvers[i], maneuvers[j])
		})
	case SortByBerth:
		sort.SliceStable(maneuvers, func(i, j int) bool {
			if maneuvers[i].Berth != maneuvers[j].Berth {
				return maneuvers[i].Berth < maneuvers[j].Berth
			}
			// If berths are equal, sort by schedule
			return compareBySchedule(maneuvers[i], maneuvers[j])
		})
	case SortByName:
		sort.SliceStable(maneuvers, func(i, j int) bool {
			return maneuvers[i].Key() < maneuvers[j].Key()
		})
	}
}

// compareBySchedule returns true if i is scheduled before j.
// Records with a readable schedule come first.
func compareBySchedule(i, j maneuver.Maneuver) bool {
	ti, okI := i.Scheduled(time.UTC)
	tj, okJ := j.Scheduled(time.UTC)

	if okI && okJ {
		return ti.Before(tj)
	}
	if okI {
		return true
	}
	if okJ {
		return false
	}
	return i.Key() < j.Key()
}
