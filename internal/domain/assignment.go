package domain

// AssignmentResult reports a confirmed rider assignment.
type AssignmentResult struct {
	ParcelID     int64
	RiderID      int64
	TrackingCode string
	Status       DeliveryStatus
}

// DeliveryResult reports a completed or failed delivery.
type DeliveryResult struct {
	ParcelID     int64
	RiderID      int64
	TrackingCode string
	Status       DeliveryStatus
	EarningCents int64
}
