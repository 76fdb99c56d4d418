package matching

import (
	"context"

	"profast-parcel-service/internal/domain"
)

// riderSource defines storage operations required by the matcher.
type riderSource interface {
	ListActive(ctx context.Context) ([]domain.Rider, error)
	ListActiveByDistrict(ctx context.Context, district string) ([]domain.Rider, error)
	ListActiveByRegion(ctx context.Context, region string) ([]domain.Rider, error)
}

// localityStore serves the coverage reference table.
type localityStore interface {
	ListAll(ctx context.Context) (domain.LocalityTable, error)
}
