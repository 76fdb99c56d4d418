package payments

import (
	"context"
	"time"
)

// Event is a confirmed charge reported by the payment provider through the
// broker.
type Event struct {
	TrackingCode string
	ProviderRef  string
	PaidBy       string
	PaidAt       time.Time
}

// HandleEvent settles the parcel named by the event. Replays are rejected by
// the settlement guard, so consuming the same event twice is harmless.
func (s *Service) HandleEvent(ctx context.Context, ev Event) error {
	return s.Settle(ctx, ev.TrackingCode, ev.ProviderRef, ev.PaidBy)
}
