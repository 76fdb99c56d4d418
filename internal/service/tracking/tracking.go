package tracking

import (
	"context"
	"strings"
	"time"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/domain"
	"profast-parcel-service/internal/ports/parceltx"
)

// parcelSource defines parcel storage operations required by tracking.
type parcelSource interface {
	GetByTrackingCode(ctx context.Context, code string) (*domain.Parcel, error)
	WithTx(ctx context.Context, fn func(tx parceltx.Repository) error) error
}

// eventSource reads the persisted timeline.
type eventSource interface {
	ListByTrackingCode(ctx context.Context, code string) ([]domain.TrackingEvent, error)
}

// Timeline is a parcel together with its delivery history.
type Timeline struct {
	Parcel *domain.Parcel
	Events []domain.TrackingEvent
}

// Service serves public tracking lookups and rider timeline updates.
type Service struct {
	parcels          parcelSource
	events           eventSource
	operationTimeout time.Duration
}

// NewService creates and configures a tracking Service.
func NewService(parcels parcelSource, events eventSource, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{parcels: parcels, events: events, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Track returns the parcel and its timeline for a public tracking code.
func (s *Service) Track(ctx context.Context, code string) (Timeline, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Timeline{}, apperr.Invalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.parcels.GetByTrackingCode(ctx, code)
	if err != nil {
		return Timeline{}, err
	}
	if p == nil {
		return Timeline{}, apperr.NotFound
	}

	events, err := s.events.ListByTrackingCode(ctx, code)
	if err != nil {
		return Timeline{}, err
	}

	return Timeline{Parcel: p, Events: events}, nil
}

// AddEvent lets the assigned rider append a manual location update while the
// parcel is in transit. Status transitions never happen here; those go
// through the assignment coordinator.
func (s *Service) AddEvent(ctx context.Context, code string, riderID int64, location, notes string) (*domain.TrackingEvent, error) {
	code = strings.TrimSpace(code)
	if code == "" || riderID <= 0 || strings.TrimSpace(location) == "" {
		return nil, apperr.Invalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.parcels.GetByTrackingCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound
	}
	if p.DeliveryStatus != domain.DeliveryInTransit {
		return nil, apperr.Conflict
	}
	if p.AssignedRiderID == nil || *p.AssignedRiderID != riderID {
		return nil, apperr.Conflict
	}

	event := &domain.TrackingEvent{
		TrackingCode: code,
		Status:       domain.TrackingInTransit,
		Location:     strings.TrimSpace(location),
		Notes:        strings.TrimSpace(notes),
		RecordedBy:   "rider",
	}

	err = s.parcels.WithTx(ctx, func(tx parceltx.Repository) error {
		return tx.InsertTrackingEvent(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}
