package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/domain"
)

const riderColumns = `id, name, email, contact, region, district, warehouse, status, created_at, updated_at`

// RiderRepo represents rider repository.
type RiderRepo struct{ db *pgxpool.Pool }

// NewRiderRepo creates a new RiderRepo.
func NewRiderRepo(db *pgxpool.Pool) *RiderRepo { return &RiderRepo{db: db} }

func scanRider(row rowScanner) (*domain.Rider, error) {
	var rd domain.Rider
	err := row.Scan(
		&rd.ID, &rd.Name, &rd.Email, &rd.Contact,
		&rd.Locality.Region, &rd.Locality.District, &rd.Warehouse, &rd.Status,
		&rd.CreatedAt, &rd.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rd, nil
}

// Get - returns rider by its ID.
func (r *RiderRepo) Get(ctx context.Context, id int64) (*domain.Rider, error) {
	rd, err := scanRider(r.db.QueryRow(ctx,
		`SELECT `+riderColumns+` FROM riders WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rider %d: %w", id, err)
	}
	return rd, nil
}

// Create - registers a rider application. Email is unique across riders.
func (r *RiderRepo) Create(ctx context.Context, rd *domain.Rider) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO riders (name, email, contact, region, district, warehouse, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `, rd.Name, rd.Email, rd.Contact, rd.Locality.Region, rd.Locality.District, rd.Warehouse, string(rd.Status)).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.Conflict
		}
		return 0, fmt.Errorf("create rider: %w", err)
	}
	return id, nil
}

// List returns riders ordered by id. If limit/offset are nil, returns the full list.
func (r *RiderRepo) List(ctx context.Context, limit, offset *int) ([]domain.Rider, error) {
	q := `SELECT ` + riderColumns + ` FROM riders ORDER BY id`
	args := make([]any, 0, 2)
	if limit != nil {
		q += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, *limit)
	}
	if offset != nil {
		q += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, *offset)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectRiders(rows)
}

// ListActive returns every active rider in id order. The dispatcher offers
// this roster when matching finds nobody near the destination.
func (r *RiderRepo) ListActive(ctx context.Context) ([]domain.Rider, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+riderColumns+` FROM riders WHERE status = 'active' ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list active riders: %w", err)
	}
	return collectRiders(rows)
}

// ListActiveByRegion returns the active riders of one region in id order. The
// matcher narrows this set further; the query only bounds how much it scans.
func (r *RiderRepo) ListActiveByRegion(ctx context.Context, region string) ([]domain.Rider, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+riderColumns+` FROM riders WHERE status = 'active' AND region = $1 ORDER BY id`,
		region)
	if err != nil {
		return nil, fmt.Errorf("list active riders in %q: %w", region, err)
	}
	return collectRiders(rows)
}

// ListActiveByDistrict returns the active riders based in one district in id order.
func (r *RiderRepo) ListActiveByDistrict(ctx context.Context, district string) ([]domain.Rider, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+riderColumns+` FROM riders WHERE status = 'active' AND district = $1 ORDER BY id`,
		district)
	if err != nil {
		return nil, fmt.Errorf("list active riders in district %q: %w", district, err)
	}
	return collectRiders(rows)
}

func collectRiders(rows pgx.Rows) ([]domain.Rider, error) {
	defer rows.Close()
	out := make([]domain.Rider, 0)
	for rows.Next() {
		rd, err := scanRider(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rd)
	}
	return out, rows.Err()
}

// UpdatePartial applies a partial update to a rider and returns true if a row was affected.
func (r *RiderRepo) UpdatePartial(ctx context.Context, u domain.PartialRiderUpdate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE riders
        SET
            name       = COALESCE($2, name),
            contact    = COALESCE($3, contact),
            warehouse  = COALESCE($4, warehouse),
            status     = COALESCE($5, status),
            updated_at = now()
        WHERE id = $1
    `, u.ID, u.Name, u.Contact, u.Warehouse, u.Status)

	if err != nil {
		if IsDuplicate(err) {
			return false, apperr.Conflict
		}
		return false, fmt.Errorf("update rider %d: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// SumEarnings returns a rider's accumulated earnings in cents.
func (r *RiderRepo) SumEarnings(ctx context.Context, riderID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM earnings WHERE rider_id = $1`, riderID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum earnings for rider %d: %w", riderID, err)
	}
	return total, nil
}
