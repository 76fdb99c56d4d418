package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewParcelsBookedTotal returns a Prometheus counter for the number of parcels booked
func NewParcelsBookedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "parcels_booked_total",
		Help: "Total number of parcels booked",
	})
}

// NewAssignmentConflictsTotal returns a Prometheus counter for the number of rider assignments rejected by the admission guard
func NewAssignmentConflictsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assignment_conflicts_total",
		Help: "Total number of rider assignments rejected by the admission guard",
	})
}

// NewPaymentEventsTotal returns a Prometheus counter vector for consumed payment events, labeled by result
func NewPaymentEventsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_events_total",
		Help: "Total number of payment events consumed from the broker",
	}, []string{"result"})
}

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed by gateways
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by gateways",
	})
}
