package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/logx"
)

// TrackingHandler serves the public tracking page and rider timeline updates.
type TrackingHandler struct {
	uc     trackingUsecase
	logger logx.Logger
}

// NewTrackingHandler wires a trackingUsecase into HTTP handlers.
func NewTrackingHandler(logger logx.Logger, uc trackingUsecase) *TrackingHandler {
	return &TrackingHandler{uc: uc, logger: logger}
}

// Track handles GET /track/{code}. No authentication: the tracking code is
// the capability.
func (h *TrackingHandler) Track(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))

	tl, err := h.uc.Track(r.Context(), code)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, timelineToResponse(tl))
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid tracking code")
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "parcel not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// AddEvent handles POST /track/{code}/events. Only the assigned rider may
// append to an in-transit timeline.
func (h *TrackingHandler) AddEvent(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))

	var req addEventRequest
	if ok := decodeValid(h.logger, w, r, &req); !ok {
		return
	}

	ev, err := h.uc.AddEvent(r.Context(), code, req.RiderID, req.Location, req.Notes)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusCreated, eventToResponse(*ev))
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "parcel not found")
	case errors.Is(err, apperr.Conflict):
		writeError(h.logger, w, r, http.StatusConflict, "parcel is not in transit with this rider")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
