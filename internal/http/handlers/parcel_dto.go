package handlers

import "time"

type bookParcelRequest struct {
	Title               string  `json:"title" validate:"required"`
	Kind                string  `json:"kind" validate:"required,oneof=document non-document"`
	WeightKg            float64 `json:"weight_kg" validate:"gte=0"`
	SenderName          string  `json:"sender_name" validate:"required"`
	SenderContact       string  `json:"sender_contact" validate:"required,len=10,numeric"`
	SenderRegion        string  `json:"sender_region" validate:"required"`
	SenderDistrict      string  `json:"sender_district" validate:"required"`
	SenderAddress       string  `json:"sender_address" validate:"required"`
	SenderInstruction   string  `json:"sender_instruction"`
	ReceiverName        string  `json:"receiver_name" validate:"required"`
	ReceiverContact     string  `json:"receiver_contact" validate:"required,len=10,numeric"`
	ReceiverRegion      string  `json:"receiver_region" validate:"required"`
	ReceiverDistrict    string  `json:"receiver_district" validate:"required"`
	ReceiverAddress     string  `json:"receiver_address" validate:"required"`
	ReceiverInstruction string  `json:"receiver_instruction"`
	CreatedBy           string  `json:"created_by" validate:"required,email"`
}

type parcelDTO struct {
	ID               int64     `json:"id"`
	TrackingCode     string    `json:"tracking_code"`
	Title            string    `json:"title"`
	Kind             string    `json:"kind"`
	WeightKg         float64   `json:"weight_kg"`
	SenderName       string    `json:"sender_name"`
	SenderRegion     string    `json:"sender_region"`
	SenderDistrict   string    `json:"sender_district"`
	ReceiverName     string    `json:"receiver_name"`
	ReceiverRegion   string    `json:"receiver_region"`
	ReceiverDistrict string    `json:"receiver_district"`
	ReceiverAddress  string    `json:"receiver_address"`
	CostCents        int64     `json:"cost_cents"`
	PaymentStatus    string    `json:"payment_status"`
	DeliveryStatus   string    `json:"delivery_status"`
	AssignedRiderID  *int64    `json:"assigned_rider_id,omitempty"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type quoteLineDTO struct {
	Label       string `json:"label"`
	AmountCents int64  `json:"amount_cents"`
}

type quoteDTO struct {
	Currency   string         `json:"currency"`
	TotalCents int64          `json:"total_cents"`
	Lines      []quoteLineDTO `json:"lines"`
}

type bookParcelResponse struct {
	Parcel parcelDTO `json:"parcel"`
	Quote  quoteDTO  `json:"quote"`
}

type quoteRequest struct {
	Kind             string  `json:"kind" validate:"required,oneof=document non-document"`
	WeightKg         float64 `json:"weight_kg" validate:"gte=0"`
	SenderRegion     string  `json:"sender_region" validate:"required"`
	SenderDistrict   string  `json:"sender_district" validate:"required"`
	ReceiverRegion   string  `json:"receiver_region" validate:"required"`
	ReceiverDistrict string  `json:"receiver_district" validate:"required"`
}

type localityDTO struct {
	Region   string `json:"region"`
	District string `json:"district"`
}
