package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/domain"
	"profast-parcel-service/internal/logx"
	"profast-parcel-service/internal/ports/parceltx"
)

// CheckoutSession is what the customer needs to complete a payment.
type CheckoutSession struct {
	ParcelID     int64
	TrackingCode string
	ClientSecret string
	AmountCents  int64
	Currency     string
}

// Service opens payment intents for booked parcels and settles them when the
// provider confirms the charge. Settlement is idempotent: the guarded
// pending-to-paid update admits exactly one writer.
type Service struct {
	parcels          parcelRepository
	gateway          paymentGateway
	currency         string
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates and configures a payment Service.
func NewService(parcels parcelRepository, gateway paymentGateway, currency string, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if currency == "" {
		currency = "usd"
	}
	return &Service{
		parcels:          parcels,
		gateway:          gateway,
		currency:         currency,
		operationTimeout: timeout,
		logger:           logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// CreateCheckout opens a payment intent for a still unpaid parcel. The amount
// always comes from the stored parcel, never from the client.
func (s *Service) CreateCheckout(ctx context.Context, parcelID int64) (CheckoutSession, error) {
	if parcelID <= 0 {
		return CheckoutSession{}, apperr.Invalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.parcels.Get(ctx, parcelID)
	if err != nil {
		return CheckoutSession{}, err
	}
	if p == nil {
		return CheckoutSession{}, apperr.NotFound
	}
	if p.PaymentStatus != domain.PaymentPending {
		return CheckoutSession{}, apperr.Conflict
	}

	intent, err := s.gateway.CreateIntent(ctx, p.CostCents, p.TrackingCode)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("%w: %s", apperr.Unavailable, err)
	}

	s.logger.Info("checkout opened",
		logx.String("event", "checkout_opened"),
		logx.String("tracking_code", p.TrackingCode),
		logx.Int64("amount_cents", p.CostCents),
	)

	return CheckoutSession{
		ParcelID:     p.ID,
		TrackingCode: p.TrackingCode,
		ClientSecret: intent.ClientSecret,
		AmountCents:  p.CostCents,
		Currency:     intent.Currency,
	}, nil
}

// Settle records a confirmed charge against a parcel, keyed by tracking code.
// Both the HTTP confirmation endpoint and the broker consumer funnel through
// here, so a replayed event settles at most once.
func (s *Service) Settle(ctx context.Context, trackingCode, providerRef, paidBy string) error {
	trackingCode = strings.TrimSpace(trackingCode)
	if trackingCode == "" {
		return apperr.Invalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.parcels.GetByTrackingCode(ctx, trackingCode)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFound
	}

	err = s.parcels.WithTx(ctx, func(tx parceltx.Repository) error {
		ok, err := tx.MarkPaid(ctx, p.ID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Conflict
		}

		if err := tx.InsertPayment(ctx, &domain.Payment{
			ParcelID:     p.ID,
			TrackingCode: p.TrackingCode,
			AmountCents:  p.CostCents,
			Currency:     s.currency,
			ProviderRef:  providerRef,
			PaidBy:       paidBy,
		}); err != nil {
			return err
		}

		// the paid step shows up on the public timeline like any other
		return tx.InsertTrackingEvent(ctx, &domain.TrackingEvent{
			TrackingCode: p.TrackingCode,
			Status:       domain.TrackingPaymentSettled,
			Notes:        "payment confirmed",
			RecordedBy:   "payments",
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info("payment settled",
		logx.String("event", "payment_settled"),
		logx.String("tracking_code", p.TrackingCode),
		logx.String("provider_ref", providerRef),
		logx.Int64("amount_cents", p.CostCents),
	)

	return nil
}

// VerifyAndSettle fetches the intent from the provider and settles the parcel
// only when the charge actually succeeded.
func (s *Service) VerifyAndSettle(ctx context.Context, trackingCode, intentID, paidBy string) error {
	if strings.TrimSpace(intentID) == "" {
		return apperr.Invalid
	}

	intent, err := s.gateway.GetIntent(ctx, intentID)
	if err != nil {
		return fmt.Errorf("%w: %s", apperr.Unavailable, err)
	}
	if intent.Status != "succeeded" {
		return apperr.Conflict
	}

	return s.Settle(ctx, trackingCode, intentID, paidBy)
}
