package handlers

type matchCandidatesRequest struct {
	Region   string `json:"region" validate:"required"`
	District string `json:"district" validate:"required"`
}

type confirmAssignmentRequest struct {
	ParcelID int64 `json:"parcel_id" validate:"required,gt=0"`
	RiderID  int64 `json:"rider_id" validate:"required,gt=0"`
}

type assignmentResultDTO struct {
	ParcelID     int64  `json:"parcel_id"`
	RiderID      int64  `json:"rider_id"`
	TrackingCode string `json:"tracking_code"`
	Status       string `json:"status"`
}

type finishDeliveryRequest struct {
	ParcelID int64 `json:"parcel_id" validate:"required,gt=0"`
	RiderID  int64 `json:"rider_id" validate:"required,gt=0"`
}

type deliveryResultDTO struct {
	ParcelID     int64  `json:"parcel_id"`
	RiderID      int64  `json:"rider_id"`
	TrackingCode string `json:"tracking_code"`
	Status       string `json:"status"`
	EarningCents int64  `json:"earning_cents"`
}
