package assignment

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/domain"
	"profast-parcel-service/internal/logx"
	"profast-parcel-service/internal/ports/parceltx"
)

// Service coordinates rider assignments and delivery completion. Every
// transition runs inside one transaction guarded by the parcel's current
// state, so two concurrent confirmations can never both win.
type Service struct {
	repo             parcelRepository
	riders           riderSource
	policy           earningsPolicy
	conflicts        prometheus.Counter
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates and configures an assignment Service.
func NewService(
	repo parcelRepository,
	riders riderSource,
	policy earningsPolicy,
	conflicts prometheus.Counter,
	timeout time.Duration,
	logger logx.Logger,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             repo,
		riders:           riders,
		policy:           policy,
		conflicts:        conflicts,
		operationTimeout: timeout,
		logger:           logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// ListAssignable returns the paid, still pending parcels in booking order.
func (s *Service) ListAssignable(ctx context.Context) ([]domain.Parcel, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListAssignable(ctx)
}

// Confirm assigns a rider to a parcel. The parcel must still be pending and
// paid, and the rider must be active; anything else is a conflict the caller
// resolves by re-fetching the parcel.
func (s *Service) Confirm(ctx context.Context, parcelID, riderID int64) (domain.AssignmentResult, error) {
	if parcelID <= 0 || riderID <= 0 {
		return domain.AssignmentResult{}, apperr.Invalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rider, err := s.riders.Get(ctx, riderID)
	if err != nil {
		return domain.AssignmentResult{}, err
	}
	if rider == nil {
		return domain.AssignmentResult{}, apperr.NotFound
	}
	if rider.Status != domain.RiderActive {
		return domain.AssignmentResult{}, apperr.Conflict
	}

	var result domain.AssignmentResult

	err = s.repo.WithTx(ctx, func(tx parceltx.Repository) error {
		p, err := tx.GetParcelForUpdate(ctx, parcelID)
		if err != nil {
			return err
		}
		if p == nil {
			return apperr.NotFound
		}

		ok, err := tx.AssignRider(ctx, parcelID, riderID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Conflict
		}

		// the pre-tx snapshot can go stale: the busy transition re-checks the
		// rider is still active inside the same transaction as the parcel guard
		busy, err := tx.UpdateRiderStatus(ctx, riderID, domain.RiderActive, domain.RiderBusy)
		if err != nil {
			return err
		}
		if !busy {
			return apperr.Conflict
		}

		if err := tx.InsertTrackingEvent(ctx, &domain.TrackingEvent{
			TrackingCode: p.TrackingCode,
			Status:       domain.TrackingInTransit,
			Location:     rider.Locality.District,
			Notes:        "rider assigned",
			RecordedBy:   "dispatch",
		}); err != nil {
			return err
		}

		result = domain.AssignmentResult{
			ParcelID:     p.ID,
			RiderID:      riderID,
			TrackingCode: p.TrackingCode,
			Status:       domain.DeliveryInTransit,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.Conflict) {
			s.conflicts.Inc()
			s.logger.Warn("assignment conflict",
				logx.Int64("parcel_id", parcelID),
				logx.Int64("rider_id", riderID),
			)
		}
		return domain.AssignmentResult{}, err
	}

	s.logger.Info("rider assigned",
		logx.String("event", "rider_assigned"),
		logx.String("tracking_code", result.TrackingCode),
		logx.Int64("parcel_id", result.ParcelID),
		logx.Int64("rider_id", result.RiderID),
	)

	return result, nil
}

// MarkDelivered completes an in-transit delivery: the parcel becomes
// delivered, the rider is released and credited per the commission policy.
func (s *Service) MarkDelivered(ctx context.Context, parcelID, riderID int64) (domain.DeliveryResult, error) {
	return s.finish(ctx, parcelID, riderID, domain.DeliveryDelivered)
}

// MarkFailed records a failed delivery attempt. The rider is released but
// earns nothing.
func (s *Service) MarkFailed(ctx context.Context, parcelID, riderID int64) (domain.DeliveryResult, error) {
	return s.finish(ctx, parcelID, riderID, domain.DeliveryFailed)
}

func (s *Service) finish(ctx context.Context, parcelID, riderID int64, to domain.DeliveryStatus) (domain.DeliveryResult, error) {
	if parcelID <= 0 || riderID <= 0 {
		return domain.DeliveryResult{}, apperr.Invalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result domain.DeliveryResult

	err := s.repo.WithTx(ctx, func(tx parceltx.Repository) error {
		p, err := tx.GetParcelForUpdate(ctx, parcelID)
		if err != nil {
			return err
		}
		if p == nil {
			return apperr.NotFound
		}
		if p.AssignedRiderID == nil || *p.AssignedRiderID != riderID {
			return apperr.Conflict
		}

		ok, err := tx.AdvanceDelivery(ctx, parcelID, domain.DeliveryInTransit, to)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Conflict
		}

		// the release is guarded too: if an operator already moved the rider
		// off busy, their change stands
		if _, err := tx.UpdateRiderStatus(ctx, riderID, domain.RiderBusy, domain.RiderActive); err != nil {
			return err
		}

		var earned int64
		if to == domain.DeliveryDelivered {
			earned = s.policy.Amount(p)
			if err := tx.InsertEarning(ctx, &domain.Earning{
				RiderID:     riderID,
				ParcelID:    parcelID,
				AmountCents: earned,
			}); err != nil {
				return err
			}
		}

		if err := tx.InsertTrackingEvent(ctx, &domain.TrackingEvent{
			TrackingCode: p.TrackingCode,
			Status:       domain.TrackingStatus(to),
			Location:     p.ReceiverLocality.District,
			RecordedBy:   "rider",
		}); err != nil {
			return err
		}

		result = domain.DeliveryResult{
			ParcelID:     p.ID,
			RiderID:      riderID,
			TrackingCode: p.TrackingCode,
			Status:       to,
			EarningCents: earned,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.Conflict) {
			s.conflicts.Inc()
		}
		return domain.DeliveryResult{}, err
	}

	s.logger.Info("delivery finished",
		logx.String("event", "delivery_finished"),
		logx.String("tracking_code", result.TrackingCode),
		logx.String("status", string(result.Status)),
		logx.Int64("rider_id", result.RiderID),
		logx.Int64("earning_cents", result.EarningCents),
	)

	return result, nil
}
