package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/domain"
	"profast-parcel-service/internal/logx"
	"profast-parcel-service/internal/service/tracking"
)

type stubTrackingUsecase struct {
	trackFn    func(ctx context.Context, code string) (tracking.Timeline, error)
	addEventFn func(ctx context.Context, code string, riderID int64, location, notes string) (*domain.TrackingEvent, error)
}

func (s *stubTrackingUsecase) Track(ctx context.Context, code string) (tracking.Timeline, error) {
	if s.trackFn == nil {
		panic("Track not expected in this test")
	}
	return s.trackFn(ctx, code)
}

func (s *stubTrackingUsecase) AddEvent(ctx context.Context, code string, riderID int64, location, notes string) (*domain.TrackingEvent, error) {
	if s.addEventFn == nil {
		panic("AddEvent not expected in this test")
	}
	return s.addEventFn(ctx, code, riderID, location, notes)
}

func trackingRouter(h *TrackingHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/track/{code}", h.Track)
	r.Post("/track/{code}/events", h.AddEvent)
	return r
}

func TestTrackingHandler_Track_OK(t *testing.T) {
	t.Parallel()

	uc := &stubTrackingUsecase{
		trackFn: func(_ context.Context, code string) (tracking.Timeline, error) {
			require.Equal(t, "PFT-7", code)
			return tracking.Timeline{
				Parcel: bookedParcel(),
				Events: []domain.TrackingEvent{
					{Status: domain.TrackingInTransit, Location: "Dhanmondi", RecordedBy: "dispatch"},
				},
			}, nil
		},
	}

	h := NewTrackingHandler(logx.Nop(), uc)

	req := httptest.NewRequest(http.MethodGet, "/track/PFT-7", nil)
	rr := httptest.NewRecorder()
	trackingRouter(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp timelineResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, "PFT-7", resp.Parcel.TrackingCode)
	require.Len(t, resp.Events, 1)
	require.Equal(t, "in_transit", resp.Events[0].Status)
}

func TestTrackingHandler_Track_NotFound(t *testing.T) {
	t.Parallel()

	uc := &stubTrackingUsecase{
		trackFn: func(context.Context, string) (tracking.Timeline, error) {
			return tracking.Timeline{}, apperr.NotFound
		},
	}

	h := NewTrackingHandler(logx.Nop(), uc)

	req := httptest.NewRequest(http.MethodGet, "/track/PFT-missing", nil)
	rr := httptest.NewRecorder()
	trackingRouter(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTrackingHandler_AddEvent_Created(t *testing.T) {
	t.Parallel()

	body := `{"rider_id": 42, "location": "Uttara", "notes": "out for delivery"}`
	req := httptest.NewRequest(http.MethodPost, "/track/PFT-7/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	uc := &stubTrackingUsecase{
		addEventFn: func(_ context.Context, code string, riderID int64, location, notes string) (*domain.TrackingEvent, error) {
			require.Equal(t, "PFT-7", code)
			require.Equal(t, int64(42), riderID)
			require.Equal(t, "Uttara", location)
			require.Equal(t, "out for delivery", notes)
			return &domain.TrackingEvent{
				Status:     domain.TrackingInTransit,
				Location:   location,
				Notes:      notes,
				RecordedBy: "rider",
			}, nil
		},
	}

	h := NewTrackingHandler(logx.Nop(), uc)
	trackingRouter(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp trackingEventDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, "Uttara", resp.Location)
}

func TestTrackingHandler_AddEvent_WrongRider(t *testing.T) {
	t.Parallel()

	body := `{"rider_id": 99, "location": "Uttara"}`
	req := httptest.NewRequest(http.MethodPost, "/track/PFT-7/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	uc := &stubTrackingUsecase{
		addEventFn: func(context.Context, string, int64, string, string) (*domain.TrackingEvent, error) {
			return nil, apperr.Conflict
		},
	}

	h := NewTrackingHandler(logx.Nop(), uc)
	trackingRouter(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"error": "parcel is not in transit with this rider"}`, rr.Body.String())
}

func TestTrackingHandler_AddEvent_ValidationFails(t *testing.T) {
	t.Parallel()

	body := `{"rider_id": 42}`
	req := httptest.NewRequest(http.MethodPost, "/track/PFT-7/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h := NewTrackingHandler(logx.Nop(), &stubTrackingUsecase{})
	trackingRouter(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}
