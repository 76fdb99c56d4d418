package booking

import (
	"context"

	"profast-parcel-service/internal/domain"
	"profast-parcel-service/internal/service/pricing"
)

// parcelStore defines storage operations required by the booking layer.
type parcelStore interface {
	Create(ctx context.Context, p *domain.Parcel) error
	Get(ctx context.Context, id int64) (*domain.Parcel, error)
	GetByTrackingCode(ctx context.Context, code string) (*domain.Parcel, error)
	ListByCreator(ctx context.Context, createdBy string) ([]domain.Parcel, error)
}

// localityStore serves the coverage reference table.
type localityStore interface {
	ListAll(ctx context.Context) (domain.LocalityTable, error)
}

// quoter prices a parcel before it is persisted.
type quoter interface {
	Quote(in pricing.Input) (pricing.Quote, error)
}
