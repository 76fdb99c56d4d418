package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/logx"
)

// RiderHandler serves HTTP endpoints for rider onboarding and management.
type RiderHandler struct {
	uc     riderUsecase
	logger logx.Logger
}

// NewRiderHandler wires a riderUsecase into HTTP handlers.
func NewRiderHandler(logger logx.Logger, uc riderUsecase) *RiderHandler {
	return &RiderHandler{uc: uc, logger: logger}
}

// Apply handles POST /riders. New applications start out pending review.
func (h *RiderHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyRiderRequest
	if ok := decodeValid(h.logger, w, r, &req); !ok {
		return
	}

	id, err := h.uc.Apply(r.Context(), req.toModel())
	switch {
	case err == nil:
		w.Header().Set("Location", "/riders/"+strconv.FormatInt(id, 10))
		writeJSON(h.logger, w, r, http.StatusCreated, map[string]any{"id": id})
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.MissingLocality):
		writeError(h.logger, w, r, http.StatusUnprocessableEntity, "area not covered")
	case errors.Is(err, apperr.Conflict):
		writeError(h.logger, w, r, http.StatusConflict, "email already exists")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// GetByID handles GET /riders/{id}.
func (h *RiderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	rd, err := h.uc.Get(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, riderToResponse(*rd))
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "rider not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// List handles GET /riders.
func (h *RiderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var limitPtr, offsetPtr *int
	if s := q.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		limitPtr = &v
	}
	if s := q.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid offset")
			return
		}
		offsetPtr = &v
	}

	list, err := h.uc.List(r.Context(), limitPtr, offsetPtr)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, ridersToResponse(list))
}

// Approve handles POST /riders/{id}/approve.
func (h *RiderHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.uc.Approve)
}

// Reject handles POST /riders/{id}/reject.
func (h *RiderHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.uc.Reject)
}

func (h *RiderHandler) review(w http.ResponseWriter, r *http.Request, verdict func(ctx context.Context, id int64) error) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	err = verdict(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "rider not found")
	case errors.Is(err, apperr.Conflict):
		writeError(h.logger, w, r, http.StatusConflict, "application already reviewed")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Update handles PATCH /riders with partial updates from the request body.
func (h *RiderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRiderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	_, err := h.uc.UpdatePartial(r.Context(), req.toModel())
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "rider not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Earnings handles GET /riders/{id}/earnings.
func (h *RiderHandler) Earnings(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	total, err := h.uc.Earnings(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, riderEarningsResponse{RiderID: id, TotalCents: total})
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "rider not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
