package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/daas/portwatch/internal/calendar"
	"github.com/daas/portwatch/internal/filter"
	"github.com/daas/portwatch/internal/maneuver"
	"github.com/daas/portwatch/internal/store"
)

// Content types served besides JSON.
const (
	MIMEMsgpack  = "application/msgpack"
	MIMECalendar = "text/calendar; charset=utf-8"
)

// Handler holds the HTTP handlers
type Handler struct {
	store       *store.Store
	statusLimit int
}

// NewHandler creates handlers reading from st
func NewHandler(st *store.Store, statusLimit int) *Handler {
	return &Handler{store: st, statusLimit: statusLimit}
}

type errorResponse struct {
	Error string `json:"error"`
}

// ManeuversResponse is the body of GET /api/maneuvers
type ManeuversResponse struct {
	Checked   bool                `json:"checked" msgpack:"checked"`
	CheckedAt string              `json:"checked_at,omitempty" msgpack:"checked_at,omitempty"`
	Count     int                 `json:"count" msgpack:"count"`
	Maneuvers []maneuver.Maneuver `json:"maneuvers" msgpack:"maneuvers"`
}

// HandleHealth returns server health status.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// HandleStatus returns the same summary as the /status chat command.
func (h *Handler) HandleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Status(h.statusLimit))
}

// HandleVessel returns the last record seen for a vessel name, ignoring case.
func (h *Handler) HandleVessel(c echo.Context) error {
	name := c.Param("name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	name = strings.TrimSpace(name)
	m, ok := h.store.Lookup(name)
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "vessel not found"})
	}
	return c.JSON(http.StatusOK, m)
}

// HandleManeuvers returns the latest snapshot, as msgpack when the client asks for it.
// The berth, type, agency, flag and dates query parameters narrow the listing.
func (h *Handler) HandleManeuvers(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	state := h.store.Current()
	listed := f.Apply(state.Snapshot)

	resp := ManeuversResponse{
		Checked:   len(state.Snapshot) > 0,
		Count:     len(listed),
		Maneuvers: listed,
	}
	if resp.Checked {
		resp.CheckedAt = state.CheckedAt.Format(time.RFC3339)
	}

	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), MIMEMsgpack) {
		data, err := msgpack.Marshal(resp)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to encode msgpack"})
		}
		return c.Blob(http.StatusOK, MIMEMsgpack, data)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleCalendar returns the latest snapshot as an iCalendar feed.
func (h *Handler) HandleCalendar(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	ics := calendar.GenerateICS(f.Apply(h.store.Current().Snapshot), time.Now())
	return c.Blob(http.StatusOK, MIMECalendar, []byte(ics))
}

// filterFromQuery builds a filter from repeated or comma-separated query parameters.
func filterFromQuery(c echo.Context) (*filter.Filter, error) {
	query := c.QueryParams()
	f := filter.NewFilter()
	f.Berths = splitValues(query["berth"])
	f.Types = splitValues(query["type"])
	f.Agencies = splitValues(query["agency"])
	f.Flags = splitValues(query["flag"])

	if dates := strings.TrimSpace(query.Get("dates")); dates != "" {
		from, to, err := filter.ParseDateRange(dates)
		if err != nil {
			return nil, err
		}
		f.DateFrom, f.DateTo = from, to
	}

	return f, nil
}

func splitValues(raw []string) []string {
	values := []string{}
	for _, r := range raw {
		for _, v := range strings.Split(r, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}
