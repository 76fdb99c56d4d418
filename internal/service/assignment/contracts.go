package assignment

import (
	"context"

	"profast-parcel-service/internal/domain"
	"profast-parcel-service/internal/ports/parceltx"
)

// parcelRepository defines storage operations required by the coordinator.
type parcelRepository interface {
	Get(ctx context.Context, id int64) (*domain.Parcel, error)
	ListAssignable(ctx context.Context) ([]domain.Parcel, error)
	WithTx(ctx context.Context, fn func(tx parceltx.Repository) error) error
}

// riderSource resolves riders outside the parcel transaction.
type riderSource interface {
	Get(ctx context.Context, id int64) (*domain.Rider, error)
}

// earningsPolicy prices the rider's cut of a delivered parcel.
type earningsPolicy interface {
	Amount(p *domain.Parcel) int64
}
