// Package filter narrows a maneuver listing by berth, type, agency, flag and date.
//
// Text criteria are case-insensitive substring matches; a criterion with several
// values matches when any value does. All active criteria must match.
//
// Example usage:
//
//	f := filter.NewFilter()
//	f.Berths = []string{"TECON"}
//	f.Types = []string{"Atracação"}
//
//	filtered := f.Apply(maneuvers)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/daas/portwatch/internal/maneuver"
)

// Filter represents maneuver filtering criteria
type Filter struct {
	// Date range filtering, inclusive, on the scheduled day
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	Berths   []string `json:"berths,omitempty"`
	Types    []string `json:"types,omitempty"`
	Agencies []string `json:"agencies,omitempty"`
	Flags    []string `json:"flags,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all maneuvers until criteria are added.
func NewFilter() *Filter {
	return &Filter{
		Berths:   []string{},
		Types:    []string{},
		Agencies: []string{},
		Flags:    []string{},
	}
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		len(f.Berths) == 0 &&
		len(f.Types) == 0 &&
		len(f.Agencies) == 0 &&
		len(f.Flags) == 0
}

// Matches checks if a maneuver matches all active filter criteria.
// A maneuver whose date cannot be read never matches a date range.
func (f *Filter) Matches(m maneuver.Maneuver) bool {
	if f.IsEmpty() {
		return true
	}

	if f.DateFrom != nil || f.DateTo != nil {
		day, err := ParseDay(m.Date)
		if err != nil {
			return false
		}
		if f.DateFrom != nil && day.Before(truncateDay(*f.DateFrom)) {
			return false
		}
		if f.DateTo != nil && day.After(truncateDay(*f.DateTo)) {
			return false
		}
	}

	return containsAny(m.Berth, f.Berths) &&
		containsAny(m.Type, f.Types) &&
		containsAny(m.Agency, f.Agencies) &&
		containsAny(m.Flag, f.Flags)
}

// Apply returns the maneuvers matching the filter, preserving order.
// If the filter is empty, returns the original list unchanged.
func (f *Filter) Apply(maneuvers []maneuver.Maneuver) []maneuver.Maneuver {
	if f.IsEmpty() {
		return maneuvers
	}

	filtered := make([]maneuver.Maneuver, 0, len(maneuvers))
	for _, m := range maneuvers {
		if f.Matches(m) {
			filtered = append(filtered, m)
		}
	}

	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Format: "From: 18/10/2026 | To: 25/10/2026 | Berths: TECON"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DateFrom.Format(maneuver.DateLayout)))
	}
	if f.DateTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DateTo.Format(maneuver.DateLayout)))
	}
	if len(f.Berths) > 0 {
		parts = append(parts, fmt.Sprintf("Berths: %s", strings.Join(f.Berths, ", ")))
	}
	if len(f.Types) > 0 {
		parts = append(parts, fmt.Sprintf("Types: %s", strings.Join(f.Types, ", ")))
	}
	if len(f.Agencies) > 0 {
		parts = append(parts, fmt.Sprintf("Agencies: %s", strings.Join(f.Agencies, ", ")))
	}
	if len(f.Flags) > 0 {
		parts = append(parts, fmt.Sprintf("Flags: %s", strings.Join(f.Flags, ", ")))
	}

	return strings.Join(parts, " | ")
}

// containsAny reports whether value contains one of needles, ignoring case.
// No needles means no constraint.
func containsAny(value string, needles []string) bool {
	if len(needles) == 0 {
		return true
	}
	lower := strings.ToLower(value)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(strings.TrimSpace(n))) {
			return true
		}
	}
	return false
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
