package handlers

import (
	"errors"
	"net/http"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/logx"
)

// PaymentHandler serves HTTP endpoints for paying booked parcels.
type PaymentHandler struct {
	uc     paymentUsecase
	logger logx.Logger
}

// NewPaymentHandler wires a paymentUsecase into HTTP handlers.
func NewPaymentHandler(logger logx.Logger, uc paymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc, logger: logger}
}

// Checkout handles POST /payments/checkout.
func (h *PaymentHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if ok := decodeValid(h.logger, w, r, &req); !ok {
		return
	}

	session, err := h.uc.CreateCheckout(r.Context(), req.ParcelID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusCreated, checkoutResponse{
			ParcelID:     session.ParcelID,
			TrackingCode: session.TrackingCode,
			ClientSecret: session.ClientSecret,
			AmountCents:  session.AmountCents,
			Currency:     session.Currency,
		})
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "parcel not found")
	case errors.Is(err, apperr.Conflict):
		writeError(h.logger, w, r, http.StatusConflict, "parcel is already paid")
	case errors.Is(err, apperr.Unavailable):
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "payment provider unavailable")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Confirm handles POST /payments/confirm. It verifies the intent with the
// provider before settling the parcel.
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmPaymentRequest
	if ok := decodeValid(h.logger, w, r, &req); !ok {
		return
	}

	err := h.uc.VerifyAndSettle(r.Context(), req.TrackingCode, req.IntentID, req.PaidBy)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "paid"})
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "parcel not found")
	case errors.Is(err, apperr.Conflict):
		writeError(h.logger, w, r, http.StatusConflict, "payment is not settleable")
	case errors.Is(err, apperr.Unavailable):
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "payment provider unavailable")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
