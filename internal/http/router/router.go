package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"profast-parcel-service/internal/http/handlers"
	appmw "profast-parcel-service/internal/http/middleware"
	"profast-parcel-service/internal/http/middleware/ratelimit"
	"profast-parcel-service/internal/logx"
)

// Deps carries everything the router mounts.
type Deps struct {
	Logger    logx.Logger
	Base      *handlers.Handlers
	Parcels   *handlers.ParcelHandler
	Riders    *handlers.RiderHandler
	Dispatch  *handlers.DispatchHandler
	Tracking  *handlers.TrackingHandler
	Payments  *handlers.PaymentHandler
	RateLimit *ratelimit.Middleware
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appmw.Observability(d.Logger))
	if d.RateLimit != nil {
		r.Use(d.RateLimit.Handler())
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/parcels", func(r chi.Router) {
		r.Post("/", d.Parcels.Book)
		r.Get("/", d.Parcels.List)
		r.Get("/{id}", d.Parcels.GetByID)
	})
	r.Post("/pricing/quote", d.Parcels.Quote)
	r.Get("/regions", d.Parcels.Regions)

	r.Route("/riders", func(r chi.Router) {
		r.Post("/", d.Riders.Apply)
		r.Get("/", d.Riders.List)
		r.Patch("/", d.Riders.Update)
		r.Get("/{id}", d.Riders.GetByID)
		r.Post("/{id}/approve", d.Riders.Approve)
		r.Post("/{id}/reject", d.Riders.Reject)
		r.Get("/{id}/earnings", d.Riders.Earnings)
	})

	r.Route("/dispatch", func(r chi.Router) {
		r.Get("/assignable", d.Dispatch.Assignable)
		r.Post("/candidates", d.Dispatch.Candidates)
		r.Post("/assign", d.Dispatch.Confirm)
		r.Post("/delivered", d.Dispatch.Delivered)
		r.Post("/failed", d.Dispatch.Failed)
	})

	r.Route("/track", func(r chi.Router) {
		r.Get("/{code}", d.Tracking.Track)
		r.Post("/{code}/events", d.Tracking.AddEvent)
	})

	r.Route("/payments", func(r chi.Router) {
		r.Post("/checkout", d.Payments.Checkout)
		r.Post("/confirm", d.Payments.Confirm)
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
