package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/daas/portwatch/internal/maneuver"
)

func TestWriteOutput(t *testing.T) {
	result := &OutputResult{
		CheckedAt: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
		Source:    "https://example.com",
		Count:     1,
		Maneuvers: []maneuver.Maneuver{
			{Name: "MSC AURORA", Type: "Atracação", Berth: "TECON 1", Date: "18/10/2026", Time: "14:30", IMO: "9300000"},
		},
	}

	tests := []struct {
		name     string
		format   OutputFormat
		verbose  bool
		contains []string
		absent   []string
	}{
		{
			name:     "text",
			format:   FormatText,
			contains: []string{"MSC AURORA | Atracação | Berço: TECON 1 | 18/10/2026 14:30", "Total: 1 maneuvers"},
			absent:   []string{"IMO"},
		},
		{
			name:     "verbose text",
			format:   FormatText,
			verbose:  true,
			contains: []string{"IMO: 9300000"},
		},
		{
			name:     "json",
			format:   FormatJSON,
			contains: []string{`"nome": "MSC AURORA"`, `"count": 1`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteOutput(&buf, result, tt.format, tt.verbose); err != nil {
				t.Fatalf("WriteOutput() error = %v", err)
			}
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(out, unwanted) {
					t.Errorf("output should not contain %q:\n%s", unwanted, out)
				}
			}
		})
	}
}

func TestWriteOutput_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, &OutputResult{}, FormatText, false); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}
	if buf.String() != "No maneuvers found.\n" {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	if err := WriteOutput(&buf, &OutputResult{Maneuvers: []maneuver.Maneuver{}}, FormatJSON, false); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Errorf("invalid JSON: %v", err)
	}
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	if err := WriteOutput(&bytes.Buffer{}, &OutputResult{}, "xml", false); err == nil {
		t.Error("WriteOutput() expected error for unknown format")
	}
}
