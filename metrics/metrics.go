// Package metrics exposes tracker activity to Prometheus. A Collector is an
// ircstate.Observer, so it only has to be set on the trackers it watches.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gissleh/ircstate"
)

// A Collector counts dispatched messages and keeps the size of the state
// as gauges. Every collector has its own registry.
type Collector struct {
	Registry *prometheus.Registry

	// Dispatches counts messages by command and whether any handler took them.
	Dispatches *prometheus.CounterVec

	// Errors counts messages that were malformed, by command.
	Errors *prometheus.CounterVec

	Users    prometheus.Gauge
	Channels prometheus.Gauge
}

// New creates a collector. The session name is added to every metric as a
// constant label.
func New(session string) *Collector {
	registry := prometheus.NewRegistry()
	labels := prometheus.Labels{"session": session}

	return &Collector{
		Registry: registry,
		Dispatches: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name:        "ircstate_dispatches_total",
				Help:        "Total number of messages dispatched by command",
				ConstLabels: labels,
			},
			[]string{"command", "handled"},
		),
		Errors: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name:        "ircstate_dispatch_errors_total",
				Help:        "Total number of malformed messages by command",
				ConstLabels: labels,
			},
			[]string{"command"},
		),
		Users: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name:        "ircstate_users",
				Help:        "Number of known users",
				ConstLabels: labels,
			},
		),
		Channels: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name:        "ircstate_channels",
				Help:        "Number of joined channels",
				ConstLabels: labels,
			},
		),
	}
}

// ObserveDispatch counts a dispatched message. Numerics are counted by
// their name when it's known.
func (collector *Collector) ObserveDispatch(command string, handled bool, err error) {
	label := ircstate.NumericName(command)

	collector.Dispatches.WithLabelValues(label, strconv.FormatBool(handled)).Inc()
	if err != nil {
		collector.Errors.WithLabelValues(label).Inc()
	}
}

// ObserveState sets the gauges.
func (collector *Collector) ObserveState(users, channels int) {
	collector.Users.Set(float64(users))
	collector.Channels.Set(float64(channels))
}

// Handler serves the collector's registry.
func (collector *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(
		collector.Registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		},
	)
}

var _ ircstate.Observer = (*Collector)(nil)
