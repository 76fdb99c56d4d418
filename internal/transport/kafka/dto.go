package kafka

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"profast-parcel-service/internal/service/payments"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// EventDTO is the wire shape of a payment event.
type EventDTO struct {
	TrackingCode string    `json:"tracking_code" validate:"required"`
	ProviderRef  string    `json:"provider_ref" validate:"required"`
	PaidBy       string    `json:"paid_by"`
	PaidAt       time.Time `json:"paid_at"`
}

// Validate checks the event carries the fields settlement needs. Whitespace
// only values count as missing.
func (d EventDTO) Validate() error {
	d.TrackingCode = strings.TrimSpace(d.TrackingCode)
	d.ProviderRef = strings.TrimSpace(d.ProviderRef)
	return validate.Struct(d)
}

// ToDomain converts EventDTO to payments.Event.
func ToDomain(dto EventDTO) payments.Event {
	return payments.Event{
		TrackingCode: strings.TrimSpace(dto.TrackingCode),
		ProviderRef:  strings.TrimSpace(dto.ProviderRef),
		PaidBy:       strings.TrimSpace(dto.PaidBy),
		PaidAt:       dto.PaidAt,
	}
}
