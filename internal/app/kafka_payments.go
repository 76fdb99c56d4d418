package app

import (
	"context"
	"errors"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/service/payments"
	"profast-parcel-service/internal/transport/kafka"
)

// makePaymentsKafka adapts the payment service to the consumer. Business
// rejections are permanent: replaying them can never succeed, so the consumer
// must commit the offset instead of redelivering the event forever.
func makePaymentsKafka(svc *payments.Service) kafka.HandleFunc {
	return func(ctx context.Context, event payments.Event) error {
		err := svc.HandleEvent(ctx, event)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, apperr.Conflict),
			errors.Is(err, apperr.NotFound),
			errors.Is(err, apperr.Invalid):
			return kafka.Permanent(err)
		default:
			return err
		}
	}
}
