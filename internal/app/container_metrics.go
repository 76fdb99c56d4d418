package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"profast-parcel-service/internal/metrics"
)

type metricsOut struct {
	dig.Out
	ParcelsBookedTotal       prometheus.Counter `name:"parcels_booked_total"`
	AssignmentConflictsTotal prometheus.Counter `name:"assignment_conflicts_total"`
	RateLimitExceededTotal   prometheus.Counter `name:"rate_limit_exceeded_total"`
	GatewayRetriesTotal      prometheus.Counter `name:"gateway_retries_total"`
}

// provideMetrics registers the service counters with the default registerer.
// A counter that is already registered is reused, so rebuilding the container
// inside one process does not fail.
func provideMetrics() (metricsOut, error) {
	booked, err := registerCounter("parcels_booked_total", metrics.NewParcelsBookedTotal())
	if err != nil {
		return metricsOut{}, err
	}
	conflicts, err := registerCounter("assignment_conflicts_total", metrics.NewAssignmentConflictsTotal())
	if err != nil {
		return metricsOut{}, err
	}
	rateLimited, err := registerCounter("rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal())
	if err != nil {
		return metricsOut{}, err
	}
	retries, err := registerCounter("gateway_retries_total", metrics.NewGatewayRetriesTotal())
	if err != nil {
		return metricsOut{}, err
	}
	return metricsOut{
		ParcelsBookedTotal:       booked,
		AssignmentConflictsTotal: conflicts,
		RateLimitExceededTotal:   rateLimited,
		GatewayRetriesTotal:      retries,
	}, nil
}

func registerCounter(name string, c prometheus.Counter) (prometheus.Counter, error) {
	if err := prometheus.DefaultRegisterer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(prometheus.Counter), nil
		}
		return nil, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}
