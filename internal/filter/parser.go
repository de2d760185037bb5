package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/daas/portwatch/internal/maneuver"
)

// dayLayouts are the accepted spellings of a single day.
var dayLayouts = []string{maneuver.DateLayout, "2006-01-02"}

// ParseDay parses "18/10/2026" or "2026-10-18" into midnight UTC.
func ParseDay(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use DD/MM/YYYY or YYYY-MM-DD)", input)
}

// ParseDateRange parses a date range string into start and end days.
//
// Supported formats:
//   - "18/10/2026" - a single day
//   - "18/10/2026-25/10/2026" or "18/10/2026 - 25/10/2026" - an inclusive range
//   - "2026-10-18..2026-10-25" - ISO days
func ParseDateRange(input string) (*time.Time, *time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, fmt.Errorf("date range cannot be empty")
	}

	from, to, found := strings.Cut(input, "..")
	if !found {
		from, to, found = cutDayRange(input)
	}
	if !found {
		from, to = input, input
	}

	start, err := ParseDay(from)
	if err != nil {
		return nil, nil, err
	}
	end, err := ParseDay(to)
	if err != nil {
		return nil, nil, err
	}

	if start.After(end) {
		return nil, nil, fmt.Errorf("start date must be before end date")
	}

	return &start, &end, nil
}

// cutDayRange splits "DD/MM/YYYY-DD/MM/YYYY". ISO days contain dashes
// themselves, so only a dash between two slash-separated days is a separator.
func cutDayRange(input string) (string, string, bool) {
	if !strings.Contains(input, "/") {
		return "", "", false
	}
	from, to, found := strings.Cut(input, "-")
	return strings.TrimSpace(from), strings.TrimSpace(to), found
}
