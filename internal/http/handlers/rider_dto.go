package handlers

import "time"

type applyRiderRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Contact   string `json:"contact" validate:"required,len=10,numeric"`
	Region    string `json:"region" validate:"required"`
	District  string `json:"district" validate:"required"`
	Warehouse string `json:"warehouse"`
}

type riderDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Contact   string    `json:"contact"`
	Region    string    `json:"region"`
	District  string    `json:"district"`
	Warehouse string    `json:"warehouse,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type updateRiderRequest struct {
	ID        int64   `json:"id"`
	Name      *string `json:"name,omitempty"`
	Contact   *string `json:"contact,omitempty"`
	Warehouse *string `json:"warehouse,omitempty"`
	Status    *string `json:"status,omitempty"`
}

type riderEarningsResponse struct {
	RiderID    int64 `json:"rider_id"`
	TotalCents int64 `json:"total_cents"`
}
