// Package monitor runs the poll cycle: fetch the listing, diff it against the
// previous snapshot, notify new maneuvers and publish the new state.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/daas/portwatch/internal/logger"
	"github.com/daas/portwatch/internal/maneuver"
	"github.com/daas/portwatch/internal/metrics"
	"github.com/daas/portwatch/internal/notifier"
	"github.com/daas/portwatch/internal/store"
)

// DefaultInterval is the pause between two poll cycles.
const DefaultInterval = 600 * time.Second

// ErrNoData means the cycle produced no records and the previous state was kept.
var ErrNoData = errors.New("no maneuvers extracted")

// Fetcher retrieves the current maneuver listing
type Fetcher interface {
	FetchManeuvers(ctx context.Context) ([]maneuver.Maneuver, error)
}

// CheckResult summarizes one poll cycle
type CheckResult struct {
	CycleID  string
	Fetched  int
	New      []maneuver.Maneuver
	Baseline bool
}

// Monitor owns the write side of the store
type Monitor struct {
	fetcher  Fetcher
	store    *store.Store
	notifier notifier.Notifier
	interval time.Duration
	now      func() time.Time
}

// New creates a monitor. A non-positive interval falls back to DefaultInterval.
func New(fetcher Fetcher, st *store.Store, n notifier.Notifier, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		fetcher:  fetcher,
		store:    st,
		notifier: n,
		interval: interval,
		now:      time.Now,
	}
}

// Check runs exactly one poll cycle.
//
// A fetch error or an empty extraction leaves the store untouched. Delivery
// errors are returned after the new state has been published, so a failed
// alert is not retried on the next cycle.
func (m *Monitor) Check(ctx context.Context) (CheckResult, error) {
	start := m.now()
	result := CheckResult{CycleID: uuid.NewString()}
	defer func() {
		metrics.PollDuration.Observe(time.Since(start).Seconds())
	}()

	current, err := m.fetcher.FetchManeuvers(ctx)
	if err != nil {
		metrics.PollsTotal.WithLabelValues(metrics.PollFetchError).Inc()
		return result, fmt.Errorf("fetching maneuvers: %w", err)
	}

	result.Fetched = len(current)
	if len(current) == 0 {
		metrics.PollsTotal.WithLabelValues(metrics.PollEmpty).Inc()
		return result, ErrNoData
	}

	diff := maneuver.Detect(m.store.Previous(), current)
	result.New = diff.New
	result.Baseline = diff.Baseline

	var notifyErr error
	if len(diff.New) > 0 {
		logger.Info("new maneuvers detected", logger.Fields{
			"cycle_id": result.CycleID,
			"count":    len(diff.New),
		})
		notifyErr = m.notifier.Notify(ctx, diff.New)
	}

	state := m.store.Apply(current, m.now())

	metrics.SnapshotSize.Set(float64(len(state.Snapshot)))
	metrics.IndexSize.Set(float64(len(state.Index)))
	metrics.LastSuccess.Set(float64(state.CheckedAt.Unix()))
	if diff.Baseline {
		metrics.PollsTotal.WithLabelValues(metrics.PollBaseline).Inc()
	} else {
		metrics.PollsTotal.WithLabelValues(metrics.PollOK).Inc()
	}

	if notifyErr != nil {
		return result, fmt.Errorf("notifying %s: %w", m.notifier.Name(), notifyErr)
	}
	return result, nil
}

// Run polls until ctx is cancelled. Errors and panics in one cycle are logged
// and the loop carries on with the next one.
func (m *Monitor) Run(ctx context.Context) {
	logger.Info("monitor started", logger.Fields{
		"interval": m.interval.String(),
		"notifier": m.notifier.Name(),
	})

	for {
		m.cycle(ctx)

		timer := time.NewTimer(m.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("monitor stopped", nil)
			return
		case <-timer.C:
		}
	}
}

// cycle runs Check with panic recovery and logs its outcome.
func (m *Monitor) cycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			metrics.PollsTotal.WithLabelValues(metrics.PollPanic).Inc()
			logger.Error("poll cycle panic", logger.Fields{
				"correlation_id": correlationID,
				"stack":          string(debug.Stack()),
			}, fmt.Errorf("%v", r))
		}
	}()

	result, err := m.Check(ctx)
	fields := logger.Fields{
		"cycle_id": result.CycleID,
		"fetched":  result.Fetched,
		"new":      len(result.New),
		"baseline": result.Baseline,
	}

	switch {
	case errors.Is(err, ErrNoData):
		logger.Warn("no data this cycle", fields)
	case err != nil:
		logger.Error("poll cycle failed", fields, err)
	default:
		logger.Info("poll cycle completed", fields)
	}
}
