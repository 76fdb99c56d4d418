package domain

import "time"

// RiderStatus represents the operational status of a rider.
type RiderStatus string

// Rider represents a delivery agent based in one locality.
type Rider struct {
	ID        int64
	Name      string
	Email     string
	Contact   string
	Locality  Locality
	Warehouse string
	Status    RiderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PartialRiderUpdate carries optional fields to update a rider.
// A nil field leaves that attribute unchanged.
type PartialRiderUpdate struct {
	ID        int64
	Name      *string
	Contact   *string
	Warehouse *string
	Status    *RiderStatus
}
