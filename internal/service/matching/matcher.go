package matching

import (
	"context"
	"time"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/domain"
	"profast-parcel-service/internal/logx"
)

// Service finds candidate riders for a parcel's destination. Matching runs in
// two tiers: riders based in the exact district first, then riders elsewhere
// in the same region whose district the coverage table confirms. The result
// is deduplicated and its order is stable for identical inputs.
type Service struct {
	riders           riderSource
	localities       localityStore
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates and configures a matching Service.
func NewService(riders riderSource, localities localityStore, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		riders:           riders,
		localities:       localities,
		operationTimeout: timeout,
		logger:           logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Roster returns the full active roster in id order. Dispatchers fall back to
// it when Match comes back empty.
func (s *Service) Roster(ctx context.Context) ([]domain.Rider, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.riders.ListActive(ctx)
}

// Match returns candidate riders for a destination. An empty result is a
// valid answer; a missing or unresolvable coverage table is not.
func (s *Service) Match(ctx context.Context, target domain.Locality) ([]domain.Rider, error) {
	if target.Zero() || target.Region == "" || target.District == "" {
		return nil, apperr.Invalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	table, err := s.localities.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, apperr.MissingLocality
	}
	if !table.HasRegion(target.Region) {
		return nil, apperr.MissingLocality
	}

	exact, err := s.riders.ListActiveByDistrict(ctx, target.District)
	if err != nil {
		return nil, err
	}

	regional, err := s.riders.ListActiveByRegion(ctx, target.Region)
	if err != nil {
		return nil, err
	}

	covered := make(map[string]struct{})
	for _, d := range table.DistrictsInRegion(target.Region) {
		covered[d] = struct{}{}
	}

	seen := make(map[int64]struct{}, len(exact)+len(regional))
	out := make([]domain.Rider, 0, len(exact)+len(regional))

	for _, r := range exact {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}

	for _, r := range regional {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		if _, ok := covered[r.Locality.District]; !ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}

	s.logger.Debug("riders matched",
		logx.String("region", target.Region),
		logx.String("district", target.District),
		logx.Int("candidates", len(out)),
	)

	return out, nil
}
