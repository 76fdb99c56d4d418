package handlers

import (
	"time"

	"profast-parcel-service/internal/domain"
	"profast-parcel-service/internal/service/tracking"
)

type trackingEventDTO struct {
	Status     string    `json:"status"`
	Location   string    `json:"location"`
	Notes      string    `json:"notes,omitempty"`
	RecordedBy string    `json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

type timelineResponse struct {
	Parcel parcelDTO          `json:"parcel"`
	Events []trackingEventDTO `json:"events"`
}

type addEventRequest struct {
	RiderID  int64  `json:"rider_id" validate:"required,gt=0"`
	Location string `json:"location" validate:"required"`
	Notes    string `json:"notes"`
}

func eventToResponse(ev domain.TrackingEvent) trackingEventDTO {
	return trackingEventDTO{
		Status:     string(ev.Status),
		Location:   ev.Location,
		Notes:      ev.Notes,
		RecordedBy: ev.RecordedBy,
		CreatedAt:  ev.CreatedAt,
	}
}

func timelineToResponse(tl tracking.Timeline) timelineResponse {
	events := make([]trackingEventDTO, 0, len(tl.Events))
	for _, ev := range tl.Events {
		events = append(events, eventToResponse(ev))
	}
	return timelineResponse{
		Parcel: parcelToResponse(*tl.Parcel),
		Events: events,
	}
}
