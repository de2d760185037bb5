package maneuver

import (
	"strings"
	"time"
)

// Layouts of the date and time columns.
const (
	DateLayout     = "02/01/2006"
	ScheduleLayout = DateLayout + " 15:04"
)

// Columns is the minimum number of table cells a row needs to form a Maneuver.
const Columns = 15

// Maneuver represents one scheduled vessel maneuver as listed on the source page.
// All values are kept exactly as scraped (trimmed only).
type Maneuver struct {
	Name       string `json:"nome" msgpack:"nome"`
	Flag       string `json:"bandeira" msgpack:"bandeira"`
	CallSign   string `json:"indicativo" msgpack:"indicativo"`
	Draft      string `json:"calado" msgpack:"calado"`
	Deadweight string `json:"dwt" msgpack:"dwt"`
	IMO        string `json:"imo" msgpack:"imo"`
	LOA        string `json:"loa" msgpack:"loa"`
	Beam       string `json:"boca" msgpack:"boca"`
	Agency     string `json:"agencia" msgpack:"agencia"`
	Tugs       string `json:"rebocadores" msgpack:"rebocadores"`
	Date       string `json:"data" msgpack:"data"`
	Time       string `json:"hora" msgpack:"hora"`
	Type       string `json:"tipo" msgpack:"tipo"`
	Origin     string `json:"de" msgpack:"de"`
	Berth      string `json:"berco" msgpack:"berco"`
}

// FromColumns maps table cells positionally onto a Maneuver.
// It returns false when fewer than Columns cells are given; extra cells are ignored.
func FromColumns(cols []string) (Maneuver, bool) {
	if len(cols) < Columns {
		return Maneuver{}, false
	}
	return Maneuver{
		Name:       cols[0],
		Flag:       cols[1],
		CallSign:   cols[2],
		Draft:      cols[3],
		Deadweight: cols[4],
		IMO:        cols[5],
		LOA:        cols[6],
		Beam:       cols[7],
		Agency:     cols[8],
		Tugs:       cols[9],
		Date:       cols[10],
		Time:       cols[11],
		Type:       cols[12],
		Origin:     cols[13],
		Berth:      cols[14],
	}, true
}

// Key returns the Detail Index key for the maneuver: the lowercased vessel name.
func (m Maneuver) Key() string {
	return NormalizeName(m.Name)
}

// NormalizeName turns a user supplied vessel name into a Detail Index key.
func NormalizeName(name string) string {
	return strings.ToLower(name)
}

// Scheduled parses the date and time columns as a wall-clock time in loc.
// A missing or unreadable time falls back to midnight; an unreadable date returns false.
func (m Maneuver) Scheduled(loc *time.Location) (time.Time, bool) {
	date := strings.TrimSpace(m.Date)
	if t, err := time.ParseInLocation(ScheduleLayout, date+" "+strings.TrimSpace(m.Time), loc); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(DateLayout, date, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}
