package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"profast-parcel-service/internal/config"
	"profast-parcel-service/internal/logx"
	"profast-parcel-service/internal/metrics"
	"profast-parcel-service/internal/transport/kafka"
)

// cacheCloser releases the locality cache connection when the worker stops.
type cacheCloser func() error

// MustBuildWorkerContainer builds the DI container for the payment worker
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

// MustBuildWorker builds and returns a new worker dig container
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerKafka(container); err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}
	return container, nil
}

type paymentEventsOut struct {
	dig.Out
	Events *prometheus.CounterVec `name:"payment_events_total"`
}

func providePaymentEventsTotal() (paymentEventsOut, error) {
	vec := metrics.NewPaymentEventsTotal()
	if err := prometheus.DefaultRegisterer.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return paymentEventsOut{Events: are.ExistingCollector.(*prometheus.CounterVec)}, nil
		}
		return paymentEventsOut{}, fmt.Errorf("register payment_events_total: %w", err)
	}
	return paymentEventsOut{Events: vec}, nil
}

type consumerIn struct {
	dig.In
	Cfg    *config.Config
	Logger logx.Logger
	Events *prometheus.CounterVec `name:"payment_events_total"`
	Handle kafka.HandleFunc
}

func newPaymentsConsumer(in consumerIn) (*kafka.Consumer, error) {
	return kafka.NewConsumer(
		in.Logger,
		in.Cfg.Kafka.Brokers,
		in.Cfg.Kafka.GroupID,
		in.Cfg.Kafka.PaymentsTopic,
		in.Events,
		in.Handle,
	)
}

func registerKafka(container *dig.Container) error {
	return provideAll(container,
		providePaymentEventsTotal,
		makePaymentsKafka,
		newPaymentsConsumer,
		func(rdb *redis.Client) cacheCloser { return rdb.Close },
	)
}
