package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"profast-parcel-service/internal/domain"
)

// TrackingRepo reads a parcel's delivery timeline. Writes happen through the
// parcel transaction so events never outrun the status they describe.
type TrackingRepo struct{ db *pgxpool.Pool }

// NewTrackingRepo creates a new TrackingRepo.
func NewTrackingRepo(db *pgxpool.Pool) *TrackingRepo { return &TrackingRepo{db: db} }

// ListByTrackingCode returns a parcel's timeline, oldest first.
func (r *TrackingRepo) ListByTrackingCode(ctx context.Context, code string) ([]domain.TrackingEvent, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, tracking_code, status, location, notes, recorded_by, created_at
        FROM tracking_events
        WHERE tracking_code = $1
        ORDER BY created_at ASC, id ASC
    `, code)
	if err != nil {
		return nil, fmt.Errorf("list tracking events %q: %w", code, err)
	}
	defer rows.Close()

	out := make([]domain.TrackingEvent, 0)
	for rows.Next() {
		var e domain.TrackingEvent
		if err := rows.Scan(&e.ID, &e.TrackingCode, &e.Status, &e.Location, &e.Notes, &e.RecordedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
