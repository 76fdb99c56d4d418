package handlers

import (
	"context"
	"errors"
	"net/http"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/domain"
	"profast-parcel-service/internal/logx"
)

// DispatchHandler serves HTTP endpoints for rider matching and assignment.
type DispatchHandler struct {
	dispatch dispatchUsecase
	matcher  matchUsecase
	logger   logx.Logger
}

// NewDispatchHandler wires the dispatch and matching usecases into HTTP handlers.
func NewDispatchHandler(logger logx.Logger, dispatch dispatchUsecase, matcher matchUsecase) *DispatchHandler {
	return &DispatchHandler{dispatch: dispatch, matcher: matcher, logger: logger}
}

// Assignable handles GET /dispatch/assignable and lists parcels that pass the
// admission guard.
func (h *DispatchHandler) Assignable(w http.ResponseWriter, r *http.Request) {
	list, err := h.dispatch.ListAssignable(r.Context())
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, parcelsToResponse(list))
}

// Candidates handles POST /dispatch/candidates. It returns the ranked riders
// for a receiver locality without assigning anyone.
func (h *DispatchHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	var req matchCandidatesRequest
	if ok := decodeValid(h.logger, w, r, &req); !ok {
		return
	}

	target := domain.Locality{Region: req.Region, District: req.District}
	list, err := h.matcher.Match(r.Context(), target)
	if err == nil && len(list) == 0 {
		// Nobody covers the destination; offer the whole active roster.
		list, err = h.matcher.Roster(r.Context())
	}
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, ridersToResponse(list))
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.MissingLocality):
		writeError(h.logger, w, r, http.StatusUnprocessableEntity, "area not covered")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Confirm handles POST /dispatch/assign.
func (h *DispatchHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmAssignmentRequest
	if ok := decodeValid(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.dispatch.Confirm(r.Context(), req.ParcelID, req.RiderID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, assignmentResultToResponse(res))
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "parcel or rider not found")
	case errors.Is(err, apperr.Conflict):
		writeError(h.logger, w, r, http.StatusConflict, "parcel is not assignable")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Delivered handles POST /dispatch/delivered.
func (h *DispatchHandler) Delivered(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, h.dispatch.MarkDelivered)
}

// Failed handles POST /dispatch/failed.
func (h *DispatchHandler) Failed(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, h.dispatch.MarkFailed)
}

func (h *DispatchHandler) finish(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, parcelID, riderID int64) (domain.DeliveryResult, error)) {
	var req finishDeliveryRequest
	if ok := decodeValid(h.logger, w, r, &req); !ok {
		return
	}

	res, err := op(r.Context(), req.ParcelID, req.RiderID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, deliveryResultToResponse(res))
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "parcel not found")
	case errors.Is(err, apperr.Conflict):
		writeError(h.logger, w, r, http.StatusConflict, "delivery is not in a finishable state")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
