package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/logx"
)

// ParcelHandler serves HTTP endpoints for booking and browsing parcels.
type ParcelHandler struct {
	booking bookingUsecase
	quotes  quoteUsecase
	logger  logx.Logger
}

// NewParcelHandler wires the booking and pricing usecases into HTTP handlers.
func NewParcelHandler(logger logx.Logger, booking bookingUsecase, quotes quoteUsecase) *ParcelHandler {
	return &ParcelHandler{booking: booking, quotes: quotes, logger: logger}
}

// Book handles POST /parcels.
func (h *ParcelHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req bookParcelRequest
	if ok := decodeValid(h.logger, w, r, &req); !ok {
		return
	}

	p, quote, err := h.booking.Book(r.Context(), req.toModel())
	switch {
	case err == nil:
		w.Header().Set("Location", "/parcels/"+strconv.FormatInt(p.ID, 10))
		writeJSON(h.logger, w, r, http.StatusCreated, bookParcelResponse{
			Parcel: parcelToResponse(*p),
			Quote:  quoteToResponse(quote),
		})
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.MissingLocality):
		writeError(h.logger, w, r, http.StatusUnprocessableEntity, "area not covered")
	case errors.Is(err, apperr.Conflict):
		writeError(h.logger, w, r, http.StatusConflict, "tracking code already exists")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// GetByID handles GET /parcels/{id}.
func (h *ParcelHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	p, err := h.booking.Get(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, parcelToResponse(*p))
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "parcel not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// List handles GET /parcels?created_by=...
func (h *ParcelHandler) List(w http.ResponseWriter, r *http.Request) {
	createdBy := strings.TrimSpace(r.URL.Query().Get("created_by"))
	if createdBy == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "created_by is required")
		return
	}

	list, err := h.booking.ListByCreator(r.Context(), createdBy)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, parcelsToResponse(list))
}

// Quote handles POST /pricing/quote. It prices a shipment without booking it.
func (h *ParcelHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if ok := decodeValid(h.logger, w, r, &req); !ok {
		return
	}

	quote, err := h.quotes.Quote(req.toInput())
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, quoteToResponse(quote))
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Regions handles GET /regions and lists the covered localities.
func (h *ParcelHandler) Regions(w http.ResponseWriter, r *http.Request) {
	table, err := h.booking.Regions(r.Context())
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, localitiesToResponse(table))
}
