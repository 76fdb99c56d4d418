package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/domain"
	"profast-parcel-service/internal/logx"
	"profast-parcel-service/internal/service/pricing"
)

// Request describes a booking submission.
type Request struct {
	Title               string
	Kind                domain.ParcelKind
	WeightKg            float64
	SenderName          string
	SenderContact       string
	SenderLocality      domain.Locality
	SenderAddress       string
	SenderInstruction   string
	ReceiverName        string
	ReceiverContact     string
	ReceiverLocality    domain.Locality
	ReceiverAddress     string
	ReceiverInstruction string
	CreatedBy           string
}

// Service books parcels: it verifies coverage, prices the shipment and
// persists the parcel in its initial pending/pending state.
type Service struct {
	parcels          parcelStore
	localities       localityStore
	pricer           quoter
	booked           prometheus.Counter
	operationTimeout time.Duration
	logger           logx.Logger
	newTrackingCode  func() string
}

// NewService creates and configures a booking Service.
func NewService(parcels parcelStore, localities localityStore, pricer quoter, booked prometheus.Counter, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		parcels:          parcels,
		localities:       localities,
		pricer:           pricer,
		booked:           booked,
		operationTimeout: timeout,
		logger:           logger,
		newTrackingCode:  func() string { return "PFT-" + uuid.NewString() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateRequest(r *Request) error {
	if strings.TrimSpace(r.Title) == "" {
		return apperr.Invalid
	}
	if strings.TrimSpace(r.SenderName) == "" || strings.TrimSpace(r.ReceiverName) == "" {
		return apperr.Invalid
	}
	if !domain.ValidContact(r.SenderContact) || !domain.ValidContact(r.ReceiverContact) {
		return apperr.Invalid
	}
	if strings.TrimSpace(r.SenderAddress) == "" || strings.TrimSpace(r.ReceiverAddress) == "" {
		return apperr.Invalid
	}
	if strings.TrimSpace(r.CreatedBy) == "" {
		return apperr.Invalid
	}
	return nil
}

// Book prices and persists a new parcel. Both endpoints must be inside the
// coverage table; the quote is computed server-side and stored with the
// parcel so later payment uses the same amount the customer saw.
func (s *Service) Book(ctx context.Context, r Request) (*domain.Parcel, pricing.Quote, error) {
	if err := validateRequest(&r); err != nil {
		return nil, pricing.Quote{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	table, err := s.localities.ListAll(ctx)
	if err != nil {
		return nil, pricing.Quote{}, err
	}
	if len(table) == 0 {
		return nil, pricing.Quote{}, apperr.MissingLocality
	}
	if !table.Contains(r.SenderLocality) || !table.Contains(r.ReceiverLocality) {
		return nil, pricing.Quote{}, apperr.MissingLocality
	}

	quote, err := s.pricer.Quote(pricing.Input{
		Kind:     r.Kind,
		WeightKg: r.WeightKg,
		Sender:   r.SenderLocality,
		Receiver: r.ReceiverLocality,
	})
	if err != nil {
		return nil, pricing.Quote{}, err
	}

	p := &domain.Parcel{
		TrackingCode:        s.newTrackingCode(),
		Title:               strings.TrimSpace(r.Title),
		Kind:                r.Kind,
		WeightKg:            r.WeightKg,
		SenderName:          r.SenderName,
		SenderContact:       r.SenderContact,
		SenderLocality:      r.SenderLocality,
		SenderAddress:       r.SenderAddress,
		SenderInstruction:   r.SenderInstruction,
		ReceiverName:        r.ReceiverName,
		ReceiverContact:     r.ReceiverContact,
		ReceiverLocality:    r.ReceiverLocality,
		ReceiverAddress:     r.ReceiverAddress,
		ReceiverInstruction: r.ReceiverInstruction,
		CostCents:           quote.TotalCents,
		PaymentStatus:       domain.PaymentPending,
		DeliveryStatus:      domain.DeliveryPending,
		CreatedBy:           r.CreatedBy,
	}

	if err := s.parcels.Create(ctx, p); err != nil {
		return nil, pricing.Quote{}, err
	}

	s.booked.Inc()
	s.logger.Info("parcel booked",
		logx.String("event", "parcel_booked"),
		logx.String("tracking_code", p.TrackingCode),
		logx.Int64("cost_cents", p.CostCents),
		logx.String("kind", string(p.Kind)),
	)

	return p, quote, nil
}

// Get retrieves a parcel by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Parcel, error) {
	if id <= 0 {
		return nil, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	p, err := s.parcels.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound
	}
	return p, nil
}

// GetByTrackingCode retrieves a parcel by its public tracking code.
func (s *Service) GetByTrackingCode(ctx context.Context, code string) (*domain.Parcel, error) {
	code = strings.TrimSpace(code)
	if code == "" {
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
	return p, nil
}

// ListByCreator returns the parcels one user has booked, newest first.
func (s *Service) ListByCreator(ctx context.Context, createdBy string) ([]domain.Parcel, error) {
	if strings.TrimSpace(createdBy) == "" {
		return nil, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.parcels.ListByCreator(ctx, createdBy)
}

// Regions returns the coverage table grouped for booking forms.
func (s *Service) Regions(ctx context.Context) (domain.LocalityTable, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	table, err := s.localities.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, apperr.MissingLocality
	}
	return table, nil
}
