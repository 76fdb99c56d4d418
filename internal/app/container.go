package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v74/client"
	"go.uber.org/dig"

	"profast-parcel-service/internal/config"
	stripegw "profast-parcel-service/internal/gateway/stripe"
	"profast-parcel-service/internal/http/handlers"
	"profast-parcel-service/internal/http/middleware/ratelimit"
	"profast-parcel-service/internal/http/pprofserver"
	"profast-parcel-service/internal/http/router"
	"profast-parcel-service/internal/logx"
	"profast-parcel-service/internal/repository"
	"profast-parcel-service/internal/service/assignment"
	"profast-parcel-service/internal/service/booking"
	"profast-parcel-service/internal/service/earnings"
	"profast-parcel-service/internal/service/matching"
	"profast-parcel-service/internal/service/payments"
	"profast-parcel-service/internal/service/pricing"
	"profast-parcel-service/internal/service/riders"
	"profast-parcel-service/internal/service/tracking"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
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
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, provideMetrics)
}

type bookingIn struct {
	dig.In
	Parcels    *repository.ParcelRepo
	Localities *repository.CachedLocalityStore
	Engine     *pricing.Engine
	Booked     prometheus.Counter `name:"parcels_booked_total"`
	Timeout    time.Duration
	Logger     logx.Logger
}

type assignmentIn struct {
	dig.In
	Parcels   *repository.ParcelRepo
	Riders    *repository.RiderRepo
	Policy    earnings.Policy
	Conflicts prometheus.Counter `name:"assignment_conflicts_total"`
	Timeout   time.Duration
	Logger    logx.Logger
}

type paymentGatewayIn struct {
	dig.In
	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

func newPaymentGateway(in paymentGatewayIn) *stripegw.RetryingGateway {
	api := &client.API{}
	api.Init(in.Cfg.Stripe.APIKey, nil)

	gw := stripegw.NewGateway(api.PaymentIntents, in.Cfg.Stripe.Currency)
	return stripegw.NewRetryingGateway(gw, in.Logger, in.Retries, stripegw.RetryConfig{
		MaxAttempts: in.Cfg.Stripe.MaxAttempts,
		BaseDelay:   in.Cfg.Stripe.BaseDelay,
		MaxDelay:    in.Cfg.Stripe.MaxDelay,
	})
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewParcelRepo,
		repository.NewRiderRepo,
		repository.NewLocalityRepo,
		repository.NewTrackingRepo,
		func(cfg *config.Config) *redis.Client {
			return redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		},
		func(src *repository.LocalityRepo, rdb *redis.Client, cfg *config.Config, logger logx.Logger) *repository.CachedLocalityStore {
			return repository.NewCachedLocalityStore(src, rdb, cfg.Redis.TTL, logger)
		},
		func() time.Duration { return 3 * time.Second },
		func(cfg *config.Config) (pricing.RateCard, error) {
			return pricing.LoadRateCard(cfg.Policy.PricingPath)
		},
		pricing.NewEngine,
		func(cfg *config.Config) (earnings.Policy, error) {
			return earnings.LoadPolicy(cfg.Policy.EarningsPath)
		},
		func(in bookingIn) *booking.Service {
			return booking.NewService(in.Parcels, in.Localities, in.Engine, in.Booked, in.Timeout, in.Logger)
		},
		func(rs *repository.RiderRepo, ls *repository.CachedLocalityStore, timeout time.Duration, logger logx.Logger) *matching.Service {
			return matching.NewService(rs, ls, timeout, logger)
		},
		func(rs *repository.RiderRepo, ls *repository.CachedLocalityStore, timeout time.Duration) *riders.Service {
			return riders.NewService(rs, ls, timeout)
		},
		func(in assignmentIn) *assignment.Service {
			return assignment.NewService(in.Parcels, in.Riders, in.Policy, in.Conflicts, in.Timeout, in.Logger)
		},
		func(ps *repository.ParcelRepo, ts *repository.TrackingRepo, timeout time.Duration) *tracking.Service {
			return tracking.NewService(ps, ts, timeout)
		},
		newPaymentGateway,
		func(ps *repository.ParcelRepo, gw *stripegw.RetryingGateway, cfg *config.Config, timeout time.Duration, logger logx.Logger) *payments.Service {
			return payments.NewService(ps, gw, cfg.Stripe.Currency, timeout, logger)
		},
	)
}

type routerIn struct {
	dig.In
	Logger    logx.Logger
	Base      *handlers.Handlers
	Parcels   *handlers.ParcelHandler
	Riders    *handlers.RiderHandler
	Dispatch  *handlers.DispatchHandler
	Tracking  *handlers.TrackingHandler
	Payments  *handlers.PaymentHandler
	RateLimit *ratelimit.Middleware
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Deps{
		Logger:    in.Logger,
		Base:      in.Base,
		Parcels:   in.Parcels,
		Riders:    in.Riders,
		Dispatch:  in.Dispatch,
		Tracking:  in.Tracking,
		Payments:  in.Payments,
		RateLimit: in.RateLimit,
	})
}

type pprofOut struct {
	dig.Out
	Server *http.Server `name:"pprof_server"`
}

func newPprofServer(cfg *config.Config) pprofOut {
	if !cfg.Pprof.Enabled {
		return pprofOut{}
	}
	return pprofOut{Server: &http.Server{
		Addr: cfg.Pprof.Addr,
		Handler: pprofserver.Handler(pprofserver.Config{
			User: cfg.Pprof.User,
			Pass: cfg.Pprof.Pass,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewBookingUsecase,
		handlers.NewQuoteUsecase,
		handlers.NewParcelHandler,
		handlers.NewRiderUsecase,
		handlers.NewRiderHandler,
		handlers.NewDispatchUsecase,
		handlers.NewMatchUsecase,
		handlers.NewDispatchHandler,
		handlers.NewTrackingUsecase,
		handlers.NewTrackingHandler,
		handlers.NewPaymentUsecase,
		handlers.NewPaymentHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouter,
		newPprofServer,
		serverProvider,
	)
}
