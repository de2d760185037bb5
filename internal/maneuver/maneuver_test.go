package maneuver

import (
	"testing"
	"time"
)

func sampleColumns() []string {
	return []string{
		"MSC AURORA", "Panamá", "3FXY9", "12.5", "65000", "9301234", "294", "32",
		"Wilson Sons", "2", "18/10/2026", "14:30", "Atracação", "Fundeadouro", "TECON 1",
	}
}

func TestFromColumns(t *testing.T) {
	m, ok := FromColumns(sampleColumns())
	if !ok {
		t.Fatal("FromColumns() rejected a 15 column row")
	}

	checks := map[string][2]string{
		"Name":       {m.Name, "MSC AURORA"},
		"Flag":       {m.Flag, "Panamá"},
		"CallSign":   {m.CallSign, "3FXY9"},
		"Draft":      {m.Draft, "12.5"},
		"Deadweight": {m.Deadweight, "65000"},
		"IMO":        {m.IMO, "9301234"},
		"LOA":        {m.LOA, "294"},
		"Beam":       {m.Beam, "32"},
		"Agency":     {m.Agency, "Wilson Sons"},
		"Tugs":       {m.Tugs, "2"},
		"Date":       {m.Date, "18/10/2026"},
		"Time":       {m.Time, "14:30"},
		"Type":       {m.Type, "Atracação"},
		"Origin":     {m.Origin, "Fundeadouro"},
		"Berth":      {m.Berth, "TECON 1"},
	}
	for field, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %q, want %q", field, c[0], c[1])
		}
	}
}

func TestFromColumns_Short(t *testing.T) {
	if _, ok := FromColumns(sampleColumns()[:14]); ok {
		t.Error("FromColumns() accepted a 14 column row")
	}
	if _, ok := FromColumns(nil); ok {
		t.Error("FromColumns() accepted an empty row")
	}
}

func TestFromColumns_ExtraColumnsIgnored(t *testing.T) {
	cols := append(sampleColumns(), "extra", "cells")
	m, ok := FromColumns(cols)
	if !ok {
		t.Fatal("FromColumns() rejected a 17 column row")
	}
	if m.Berth != "TECON 1" {
		t.Errorf("Berth = %q, want TECON 1", m.Berth)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"MV Example", "mv example"},
		{"mv example", "mv example"},
		{"  Padded  ", "  padded  "},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Maneuver{Name: tt.name}
			if got := m.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScheduled(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		time   string
		want   time.Time
		wantOK bool
	}{
		{"date and time", "18/10/2026", "14:30", time.Date(2026, 10, 18, 14, 30, 0, 0, time.UTC), true},
		{"padded values", " 18/10/2026 ", " 07:05", time.Date(2026, 10, 18, 7, 5, 0, 0, time.UTC), true},
		{"time to be confirmed", "18/10/2026", "a confirmar", time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), true},
		{"no date", "", "14:30", time.Time{}, false},
		{"month first", "10/18/2026", "14:30", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Maneuver{Date: tt.date, Time: tt.time}.Scheduled(time.UTC)
			if ok != tt.wantOK {
				t.Fatalf("Scheduled() ok = %v, want %v", ok, tt.wantOK)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Scheduled() = %v, want %v", got, tt.want)
			}
		})
	}
}
