package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/daas/portwatch/internal/calendar"
	"github.com/daas/portwatch/internal/maneuver"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatICS  OutputFormat = "ics"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt time.Time           `json:"checked_at"`
	Source    string              `json:"source"`
	Count     int                 `json:"count"`
	Maneuvers []maneuver.Maneuver `json:"maneuvers"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	case FormatICS:
		_, err := io.WriteString(w, calendar.GenerateICS(result.Maneuvers, result.CheckedAt))
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.Count == 0 {
		fmt.Fprintln(w, "No maneuvers found.")
		return nil
	}

	for _, m := range result.Maneuvers {
		fmt.Fprintf(w, "%s | %s | Berço: %s | %s %s\n", m.Name, m.Type, m.Berth, m.Date, m.Time)
		if verbose {
			fmt.Fprintf(w, "     Bandeira: %s  IMO: %s  Indicativo: %s\n", m.Flag, m.IMO, m.CallSign)
			fmt.Fprintf(w, "     LOA: %s m  Boca: %s m  Calado: %s m  DWT: %s\n", m.LOA, m.Beam, m.Draft, m.Deadweight)
			fmt.Fprintf(w, "     Agência: %s  Rebocadores: %s  De: %s\n", m.Agency, m.Tugs, m.Origin)
		}
	}
	fmt.Fprintf(w, "\nTotal: %d maneuvers\n", result.Count)

	return nil
}
