package payments

import (
	"context"

	"profast-parcel-service/internal/domain"
	stripegw "profast-parcel-service/internal/gateway/stripe"
	"profast-parcel-service/internal/ports/parceltx"
)

// parcelRepository defines storage operations required by the payment layer.
type parcelRepository interface {
	Get(ctx context.Context, id int64) (*domain.Parcel, error)
	GetByTrackingCode(ctx context.Context, code string) (*domain.Parcel, error)
	WithTx(ctx context.Context, fn func(tx parceltx.Repository) error) error
}

// paymentGateway opens payment intents with the provider.
type paymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, trackingCode string) (*stripegw.Intent, error)
	GetIntent(ctx context.Context, id string) (*stripegw.Intent, error)
}
