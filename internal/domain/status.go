package domain

import "regexp"

const (
	KindDocument    ParcelKind = "document"
	KindNonDocument ParcelKind = "non-document"
)

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

const (
	RiderPending  RiderStatus = "pending"
	RiderActive   RiderStatus = "active"
	RiderBusy     RiderStatus = "busy"
	RiderRejected RiderStatus = "rejected"
	RiderInactive RiderStatus = "inactive"
)

// Valid reports whether the kind is one of the two supported parcel kinds.
func (k ParcelKind) Valid() bool {
	return k == KindDocument || k == KindNonDocument
}

// Valid reports whether the payment status is a known value.
func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentPaid
}

// Valid reports whether the delivery status is a known value.
func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryPending, DeliveryInTransit, DeliveryDelivered, DeliveryFailed:
		return true
	}
	return false
}

// Valid reports whether the rider status is a known value.
func (s RiderStatus) Valid() bool {
	switch s {
	case RiderPending, RiderActive, RiderBusy, RiderRejected, RiderInactive:
		return true
	}
	return false
}

// deliveryTransitions encodes the allowed delivery state machine. A parcel
// only ever moves forward; failed is terminal alongside delivered.
var deliveryTransitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryPending:   {DeliveryInTransit, DeliveryFailed},
	DeliveryInTransit: {DeliveryDelivered, DeliveryFailed},
}

// CanTransition reports whether a parcel may move from one delivery status
// to another.
func CanTransition(from, to DeliveryStatus) bool {
	for _, next := range deliveryTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

var reContact = regexp.MustCompile(`^\d{10}$`)

// ValidContact reports whether the phone number is a ten digit string.
func ValidContact(contact string) bool {
	return reContact.MatchString(contact)
}
