package parceltx

import (
	"context"

	"profast-parcel-service/internal/domain"
)

// Repository is the transactional view of the parcel store. Every method runs
// inside the transaction opened by Runner.WithTx.
type Repository interface {
	GetParcelForUpdate(ctx context.Context, id int64) (*domain.Parcel, error)
	AssignRider(ctx context.Context, parcelID, riderID int64) (bool, error)
	AdvanceDelivery(ctx context.Context, parcelID int64, from, to domain.DeliveryStatus) (bool, error)
	MarkPaid(ctx context.Context, parcelID int64) (bool, error)
	UpdateRiderStatus(ctx context.Context, id int64, from, to domain.RiderStatus) (bool, error)
	InsertTrackingEvent(ctx context.Context, e *domain.TrackingEvent) error
	InsertEarning(ctx context.Context, e *domain.Earning) error
	InsertPayment(ctx context.Context, p *domain.Payment) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
