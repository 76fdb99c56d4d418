package riders

import (
	"context"
	"strings"
	"time"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/domain"
)

// Service coordinates rider onboarding and profile management.
type Service struct {
	repo             riderRepository
	localities       localityStore
	operationTimeout time.Duration
}

// NewService creates and configures a rider Service.
func NewService(r riderRepository, localities localityStore, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, localities: localities, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// validateApplication validates a rider application.
func validateApplication(r *domain.Rider) error {
	if r == nil {
		return apperr.Invalid
	}
	if strings.TrimSpace(r.Name) == "" {
		return apperr.Invalid
	}
	if !strings.Contains(r.Email, "@") {
		return apperr.Invalid
	}
	if !domain.ValidContact(r.Contact) {
		return apperr.Invalid
	}
	if r.Locality.Region == "" || r.Locality.District == "" {
		return apperr.Invalid
	}
	return nil
}

func validateUpdate(u *domain.PartialRiderUpdate) error {
	if u.ID <= 0 {
		return apperr.Invalid
	}
	if u.Name == nil && u.Contact == nil && u.Warehouse == nil && u.Status == nil {
		return apperr.Invalid
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return apperr.Invalid
	}
	if u.Contact != nil && !domain.ValidContact(*u.Contact) {
		return apperr.Invalid
	}
	if u.Status != nil && !u.Status.Valid() {
		return apperr.Invalid
	}
	return nil
}

// Apply registers a rider application. The applicant's base must be inside
// the coverage table; the application starts in pending until reviewed.
func (s *Service) Apply(ctx context.Context, r *domain.Rider) (int64, error) {
	if err := validateApplication(r); err != nil {
		return 0, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	table, err := s.localities.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(table) == 0 {
		return 0, apperr.MissingLocality
	}
	if !table.Contains(r.Locality) {
		return 0, apperr.MissingLocality
	}

	r.Status = domain.RiderPending
	return s.repo.Create(ctx, r)
}

// Get retrieves a rider by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Rider, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperr.NotFound
	}
	return r, nil
}

// List returns riders with optional pagination
func (s *Service) List(ctx context.Context, limit, offset *int) ([]domain.Rider, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, limit, offset)
}

// Approve activates a pending rider application.
func (s *Service) Approve(ctx context.Context, id int64) error {
	return s.review(ctx, id, domain.RiderActive)
}

// Reject declines a pending rider application.
func (s *Service) Reject(ctx context.Context, id int64) error {
	return s.review(ctx, id, domain.RiderRejected)
}

func (s *Service) review(ctx context.Context, id int64, verdict domain.RiderStatus) error {
	if id <= 0 {
		return apperr.Invalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return apperr.NotFound
	}
	if r.Status != domain.RiderPending {
		return apperr.Conflict
	}

	ok, err := s.repo.UpdatePartial(ctx, domain.PartialRiderUpdate{ID: id, Status: &verdict})
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound
	}
	return nil
}

// UpdatePartial applies a partial update to a rider. It returns true if a row was updated.
func (s *Service) UpdatePartial(ctx context.Context, u domain.PartialRiderUpdate) (bool, error) {
	if err := validateUpdate(&u); err != nil {
		return false, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdatePartial(ctx, u)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, apperr.NotFound
	}
	return true, nil
}

// Earnings returns a rider's accumulated earnings in cents.
func (s *Service) Earnings(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	if r == nil {
		return 0, apperr.NotFound
	}
	return s.repo.SumEarnings(ctx, id)
}
