package maneuver

import "testing"

func TestDetect(t *testing.T) {
	a := Maneuver{Name: "ALPHA", Type: "Entrada", Berth: "101"}
	b := Maneuver{Name: "BRAVO", Type: "Saída", Berth: "102"}
	c := Maneuver{Name: "CHARLIE", Type: "Mudança", Berth: "103"}

	tests := []struct {
		name         string
		previous     []Maneuver
		current      []Maneuver
		wantBaseline bool
		wantNew      []Maneuver
	}{
		{
			name:         "empty previous establishes baseline",
			previous:     nil,
			current:      []Maneuver{a, b},
			wantBaseline: true,
		},
		{
			name:     "identical listings yield nothing",
			previous: []Maneuver{a, b},
			current:  []Maneuver{a, b},
		},
		{
			name:     "added record is reported",
			previous: []Maneuver{a},
			current:  []Maneuver{a, b},
			wantNew:  []Maneuver{b},
		},
		{
			name:     "replaced record reports only the addition",
			previous: []Maneuver{a},
			current:  []Maneuver{b},
			wantNew:  []Maneuver{b},
		},
		{
			name:     "current order is preserved",
			previous: []Maneuver{b},
			current:  []Maneuver{c, b, a},
			wantNew:  []Maneuver{c, a},
		},
		{
			name:     "removals are not reported",
			previous: []Maneuver{a, b, c},
			current:  []Maneuver{b},
		},
		{
			name:     "empty current after baseline",
			previous: []Maneuver{a},
			current:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := Detect(tt.previous, tt.current)

			if diff.Baseline != tt.wantBaseline {
				t.Errorf("Baseline = %v, want %v", diff.Baseline, tt.wantBaseline)
			}
			if len(diff.New) != len(tt.wantNew) {
				t.Fatalf("got %d new records, want %d: %+v", len(diff.New), len(tt.wantNew), diff.New)
			}
			for i := range tt.wantNew {
				if diff.New[i] != tt.wantNew[i] {
					t.Errorf("New[%d] = %+v, want %+v", i, diff.New[i], tt.wantNew[i])
				}
			}
		})
	}
}

func TestDetect_SingleFieldChange(t *testing.T) {
	before := Maneuver{Name: "ALPHA", Berth: "101", Time: "10:00"}
	after := before
	after.Time = "11:00"

	diff := Detect([]Maneuver{before}, []Maneuver{after})
	if len(diff.New) != 1 || diff.New[0] != after {
		t.Errorf("expected the rescheduled record to be new, got %+v", diff.New)
	}
}

func TestDetect_NoNormalization(t *testing.T) {
	before := Maneuver{Name: "ALPHA", Berth: "101"}

	tests := []struct {
		name  string
		after Maneuver
	}{
		{"case differs", Maneuver{Name: "alpha", Berth: "101"}},
		{"trailing space", Maneuver{Name: "ALPHA ", Berth: "101"}},
		{"accent differs", Maneuver{Name: "ALPHA", Berth: "101", Type: "Saida"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := Detect([]Maneuver{before}, []Maneuver{tt.after})
			if len(diff.New) != 1 {
				t.Errorf("expected exact matching to report %+v as new", tt.after)
			}
		})
	}
}
