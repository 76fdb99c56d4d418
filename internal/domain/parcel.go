package domain

import "time"

type (
	// ParcelKind represents the kind of a parcel.
	ParcelKind string
	// PaymentStatus represents the payment state of a parcel.
	PaymentStatus string
	// DeliveryStatus represents the delivery state of a parcel.
	DeliveryStatus string
)

// Parcel represents one shipment order. Money amounts are integer cents.
type Parcel struct {
	ID           int64
	TrackingCode string
	Title        string
	Kind         ParcelKind
	WeightKg     float64

	SenderName          string
	SenderContact       string
	SenderLocality      Locality
	SenderAddress       string
	SenderInstruction   string
	ReceiverName        string
	ReceiverContact     string
	ReceiverLocality    Locality
	ReceiverAddress     string
	ReceiverInstruction string

	CostCents       int64
	PaymentStatus   PaymentStatus
	DeliveryStatus  DeliveryStatus
	AssignedRiderID *int64
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Assigned reports whether a rider reference is recorded on the parcel.
// The invariant is: non-nil iff delivery status is in_transit or later.
func (p *Parcel) Assigned() bool { return p.AssignedRiderID != nil }

// Assignable reports whether the parcel passes the admission guard for
// rider assignment: paid and still pending delivery.
func (p *Parcel) Assignable() bool {
	return p.PaymentStatus == PaymentPaid && p.DeliveryStatus == DeliveryPending
}
