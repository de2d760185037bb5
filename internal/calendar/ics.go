// Package calendar renders scheduled maneuvers as an iCalendar feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daas/portwatch/internal/maneuver"
)

// ManeuverDuration is the length given to each calendar entry.
const ManeuverDuration = time.Hour

// uidNamespace scopes the name-based UIDs so the same maneuver keeps its UID across feeds.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://portwatch.daas/maneuvers"))

// GenerateICS generates an iCalendar (.ics) document with one event per maneuver.
// Maneuvers whose date cannot be read are skipped. Times are floating local
// times, as listed on the source page.
func GenerateICS(maneuvers []maneuver.Maneuver, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//DAAS//PortWatch//PT\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("X-WR-CALNAME:Manobras previstas\r\n")

	stamp := formatICSTime(now)
	for _, m := range maneuvers {
		start, ok := m.Scheduled(time.UTC)
		if !ok {
			continue
		}
		writeEvent(&ics, m, start, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeEvent(ics *strings.Builder, m maneuver.Maneuver, start time.Time, stamp string) {
	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s@portwatch\r\n", UID(m)))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", stamp))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatFloating(start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatFloating(start.Add(ManeuverDuration))))

	summary := fmt.Sprintf("%s - %s", m.Name, m.Type)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := fmt.Sprintf("Bandeira: %s\nIMO: %s\nAgência: %s\nRebocadores: %s\nDe: %s",
		m.Flag, m.IMO, m.Agency, m.Tugs, m.Origin)
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))
	ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS("Berço "+m.Berth)))

	ics.WriteString("STATUS:TENTATIVE\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// UID derives a stable identifier from the fields that identify a maneuver slot.
func UID(m maneuver.Maneuver) string {
	key := strings.Join([]string{m.Key(), m.Type, m.Date, m.Time, m.Berth}, "|")
	return uuid.NewSHA1(uidNamespace, []byte(key)).String()
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// formatFloating formats a wall-clock time without a zone designator
func formatFloating(t time.Time) string {
	return t.Format("20060102T150405")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
