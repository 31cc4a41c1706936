// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry is the registry served on /metrics.
var Registry = prometheus.NewRegistry()

var registerOnce sync.Once

// Register adds the runtime collectors and every collector of this package to Registry. Calling
// it more than once is a no-op.
func Register() error {
	var err error
	registerOnce.Do(func() {
		err = register(Registry)
	})
	return err
}

func register(registry *prometheus.Registry) error {
	cs := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequestsTotal,
		HTTPRequestDuration,
		HTTPRequestsInFlight,
		AdminServiceRequestsTotal,
		AdminServiceRequestDuration,
		EventsPublishedTotal,
	}
	for _, c := range cs {
		if err := registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "channel_admin_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "channel_admin_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "channel_admin_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

var (
	// AdminServiceRequestsTotal counts invocations of cluster admin services by service name and
	// result. The result is "ok", "fault" or "error".
	AdminServiceRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "channel_admin_admin_service_requests_total",
			Help: "Total number of admin service invocations",
		},
		[]string{"service", "result"},
	)

	AdminServiceRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "channel_admin_admin_service_request_duration_seconds",
			Help:    "Admin service invocation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)
)

// EventsPublishedTotal counts change events by type and sink.
var EventsPublishedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "channel_admin_events_published_total",
		Help: "Total number of published change events",
	},
	[]string{"type", "sink", "result"},
)
