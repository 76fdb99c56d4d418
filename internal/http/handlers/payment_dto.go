package handlers

type checkoutRequest struct {
	ParcelID int64 `json:"parcel_id" validate:"required,gt=0"`
}

type checkoutResponse struct {
	ParcelID     int64  `json:"parcel_id"`
	TrackingCode string `json:"tracking_code"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
}

type confirmPaymentRequest struct {
	TrackingCode string `json:"tracking_code" validate:"required"`
	IntentID     string `json:"intent_id" validate:"required"`
	PaidBy       string `json:"paid_by" validate:"required,email"`
}
