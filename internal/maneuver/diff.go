package maneuver

// Diff contains the result of comparing a fresh listing against the previous one.
type Diff struct {
	// New holds records of the current listing absent from the previous one,
	// in the current listing's order.
	New []Maneuver

	// Baseline is set when there was no previous listing to compare against.
	// New is always empty in that case.
	Baseline bool
}

// Detect compares current against previous and returns the records that are new.
//
// Equality is full structural equality on every field. A record that disappears
// from the listing is not reported; only additions are. When previous is empty
// the call establishes the baseline instead of reporting every record as new.
func Detect(previous, current []Maneuver) Diff {
	if len(previous) == 0 {
		return Diff{Baseline: true}
	}

	seen := make(map[Maneuver]struct{}, len(previous))
	for _, m := range previous {
		seen[m] = struct{}{}
	}

	diff := Diff{New: make([]Maneuver, 0)}
	for _, m := range current {
		if _, exists := seen[m]; !exists {
			diff.New = append(diff.New, m)
		}
	}

	return diff
}
