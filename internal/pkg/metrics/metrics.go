// Package metrics defines the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gasfill"

// Values of the "result" label of Assignments.
const (
	ResultAssigned = "assigned"
	ResultNoRider  = "no_rider"
	ResultConflict = "conflict"
	ResultError    = "error"
)

// Values of the "result" label of EventsPublished.
const (
	PublishOK     = "ok"
	PublishFailed = "failed"
)

// Metrics groups the collectors. Each instance registers on its own registerer
// so tests can use a fresh prometheus.NewRegistry().
type Metrics struct {
	Assignments         *prometheus.CounterVec
	ExpiredAssignments  prometheus.Counter
	StatusTransitions   *prometheus.CounterVec
	EventsPublished     *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Assignments: factory.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "assignments_total", Help: "Assignment attempts by result"},
			[]string{"result"},
		),
		ExpiredAssignments: factory.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "expired_assignments_total", Help: "Assignments reverted by the expiry sweep"},
		),
		StatusTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "order_status_transitions_total", Help: "Committed order status changes"},
			[]string{"from", "to"},
		),
		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "events_published_total", Help: "Order events handed to the publisher"},
			[]string{"result"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distribution",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "code"},
		),
	}
}
