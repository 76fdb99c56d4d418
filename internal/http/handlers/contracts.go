package handlers

import (
	"context"

	"profast-parcel-service/internal/domain"
	"profast-parcel-service/internal/service/assignment"
	"profast-parcel-service/internal/service/booking"
	"profast-parcel-service/internal/service/matching"
	"profast-parcel-service/internal/service/payments"
	"profast-parcel-service/internal/service/pricing"
	"profast-parcel-service/internal/service/riders"
	"profast-parcel-service/internal/service/tracking"
)

type bookingUsecase interface {
	Book(ctx context.Context, r booking.Request) (*domain.Parcel, pricing.Quote, error)
	Get(ctx context.Context, id int64) (*domain.Parcel, error)
	ListByCreator(ctx context.Context, createdBy string) ([]domain.Parcel, error)
	Regions(ctx context.Context) (domain.LocalityTable, error)
}

// NewBookingUsecase wires a booking Service into a bookingUsecase.
func NewBookingUsecase(svc *booking.Service) bookingUsecase {
	return svc
}

type quoteUsecase interface {
	Quote(in pricing.Input) (pricing.Quote, error)
}

// NewQuoteUsecase wires a pricing Engine into a quoteUsecase.
func NewQuoteUsecase(e *pricing.Engine) quoteUsecase {
	return e
}

type riderUsecase interface {
	Apply(ctx context.Context, r *domain.Rider) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Rider, error)
	List(ctx context.Context, limit, offset *int) ([]domain.Rider, error)
	Approve(ctx context.Context, id int64) error
	Reject(ctx context.Context, id int64) error
	UpdatePartial(ctx context.Context, u domain.PartialRiderUpdate) (bool, error)
	Earnings(ctx context.Context, id int64) (int64, error)
}

// NewRiderUsecase wires a riders Service into a riderUsecase.
func NewRiderUsecase(svc *riders.Service) riderUsecase {
	return svc
}

type dispatchUsecase interface {
	ListAssignable(ctx context.Context) ([]domain.Parcel, error)
	Confirm(ctx context.Context, parcelID, riderID int64) (domain.AssignmentResult, error)
	MarkDelivered(ctx context.Context, parcelID, riderID int64) (domain.DeliveryResult, error)
	MarkFailed(ctx context.Context, parcelID, riderID int64) (domain.DeliveryResult, error)
}

// NewDispatchUsecase wires an assignment Service into a dispatchUsecase.
func NewDispatchUsecase(svc *assignment.Service) dispatchUsecase {
	return svc
}

type matchUsecase interface {
	Match(ctx context.Context, target domain.Locality) ([]domain.Rider, error)
	Roster(ctx context.Context) ([]domain.Rider, error)
}

// NewMatchUsecase wires a matching Service into a matchUsecase.
func NewMatchUsecase(svc *matching.Service) matchUsecase {
	return svc
}

type trackingUsecase interface {
	Track(ctx context.Context, code string) (tracking.Timeline, error)
	AddEvent(ctx context.Context, code string, riderID int64, location, notes string) (*domain.TrackingEvent, error)
}

// NewTrackingUsecase wires a tracking Service into a trackingUsecase.
func NewTrackingUsecase(svc *tracking.Service) trackingUsecase {
	return svc
}

type paymentUsecase interface {
	CreateCheckout(ctx context.Context, parcelID int64) (payments.CheckoutSession, error)
	VerifyAndSettle(ctx context.Context, trackingCode, intentID, paidBy string) error
}

// NewPaymentUsecase wires a payments Service into a paymentUsecase.
func NewPaymentUsecase(svc *payments.Service) paymentUsecase {
	return svc
}
