// Package metrics holds the prometheus collectors the service exposes on
// its debug server.
package metrics

import (
	"runtime"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes of a tenant resolution pass.
const (
	OutcomeResolved   = "resolved"
	OutcomeUnresolved = "unresolved"
	OutcomeRejected   = "rejected"
)

var (
	requests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autonet_requests_total",
		Help: "Total number of HTTP requests handled.",
	})

	errors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autonet_errors_total",
		Help: "Total number of requests that ended in an error.",
	})

	panics = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autonet_panics_total",
		Help: "Total number of recovered panics.",
	})

	goroutines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "autonet_goroutines",
		Help: "Number of goroutines, sampled every 1000 requests.",
	})

	isolation = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autonet_tenant_isolation_errors_total",
		Help: "Tenant isolation errors by kind.",
	}, []string{"kind"})

	resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autonet_tenant_resolutions_total",
		Help: "Tenant resolution passes by source and outcome.",
	}, []string{"source", "outcome"})
)

// requestCount mirrors the requests counter so callers can sample work
// every N requests without reading the collector back.
var requestCount atomic.Int64

// AddRequests increments the request count by 1 and returns the running
// total.
func AddRequests() int64 {
	requests.Inc()
	return requestCount.Add(1)
}

// AddErrors increments the errors count by 1.
func AddErrors() {
	errors.Inc()
}

// AddPanics increments the panics count by 1.
func AddPanics() {
	panics.Inc()
}

// AddGoroutines refreshes the goroutine gauge.
func AddGoroutines() {
	goroutines.Set(float64(runtime.NumGoroutine()))
}

// AddIsolationError counts a tenant isolation error of the specified kind.
func AddIsolationError(kind string) {
	isolation.WithLabelValues(kind).Inc()
}

// AddResolution counts a tenant resolution pass. Source is empty when no
// candidate produced a tenant.
func AddResolution(source string, outcome string) {
	if source == "" {
		source = "none"
	}
	resolutions.WithLabelValues(source, outcome).Inc()
}
