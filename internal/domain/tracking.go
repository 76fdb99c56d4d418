package domain

import "time"

// TrackingStatus labels one timeline entry. The timeline carries more than
// delivery transitions, so this is wider than DeliveryStatus.
type TrackingStatus string

const (
	TrackingInTransit      TrackingStatus = "in_transit"
	TrackingDelivered      TrackingStatus = "delivered"
	TrackingFailed         TrackingStatus = "failed"
	TrackingPaymentSettled TrackingStatus = "payment_settled"
)

// TrackingEvent is one entry of a parcel's delivery timeline, appended on
// every status change, on payment settlement and on manual updates by the
// assigned rider.
type TrackingEvent struct {
	ID           int64
	TrackingCode string
	Status       TrackingStatus
	Location     string
	Notes        string
	RecordedBy   string
	CreatedAt    time.Time
}

// Payment records a settled charge against a parcel.
type Payment struct {
	ID           int64
	ParcelID     int64
	TrackingCode string
	AmountCents  int64
	Currency     string
	ProviderRef  string
	PaidBy       string
	CreatedAt    time.Time
}

// Earning is a rider's credit for one completed delivery.
type Earning struct {
	ID          int64
	RiderID     int64
	ParcelID    int64
	AmountCents int64
	CreatedAt   time.Time
}
