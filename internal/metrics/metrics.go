// Package metrics exposes operational counters for the poll loop and the notifier.
//
// Collectors live in a dedicated registry so tests and the HTTP API can serve them
// without touching the process-wide default registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Poll outcomes used as the "result" label of PollsTotal.
const (
	PollOK         = "ok"
	PollBaseline   = "baseline"
	PollFetchError = "fetch_error"
	PollEmpty      = "empty"
	PollPanic      = "panic"
)

// Delivery outcomes used as the "status" label of NotificationsTotal.
const (
	DeliverySent   = "sent"
	DeliveryFailed = "failed"
)

var (
	// Registry holds every PortWatch collector plus Go runtime metrics.
	Registry = prometheus.NewRegistry()

	PollsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portwatch",
		Name:      "polls_total",
		Help:      "Number of poll cycles by result",
	}, []string{"result"})

	PollDuration = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "portwatch",
		Name:      "poll_duration_seconds",
		Help:      "Time spent fetching, diffing and notifying in one cycle",
	})

	NotificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portwatch",
		Name:      "notifications_total",
		Help:      "Number of maneuver alerts by delivery status",
	}, []string{"notifier", "status"})

	SnapshotSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "portwatch",
		Name:      "snapshot_maneuvers",
		Help:      "Maneuvers listed in the latest snapshot",
	})

	IndexSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "portwatch",
		Name:      "indexed_vessels",
		Help:      "Distinct vessels seen since start",
	})

	LastSuccess = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "portwatch",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last successful poll",
	})

	CommandsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portwatch",
		Name:      "commands_total",
		Help:      "Chat commands handled by command name",
	}, []string{"command"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		PollsTotal, PollDuration,
		NotificationsTotal,
		SnapshotSize, IndexSize, LastSuccess,
		CommandsTotal,
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
