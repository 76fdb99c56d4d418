package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/domain"
	"profast-parcel-service/internal/ports/parceltx"
)

const parcelColumns = `
    id, tracking_code, title, kind, weight_kg,
    sender_name, sender_contact, sender_region, sender_district, sender_address, sender_instruction,
    receiver_name, receiver_contact, receiver_region, receiver_district, receiver_address, receiver_instruction,
    cost_cents, payment_status, delivery_status, assigned_rider_id, created_by, created_at, updated_at`

// ParcelRepo represents parcel repository.
type ParcelRepo struct {
	db *pgxpool.Pool
}

// NewParcelRepo creates a new ParcelRepo.
func NewParcelRepo(db *pgxpool.Pool) *ParcelRepo {
	return &ParcelRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanParcel(row rowScanner) (*domain.Parcel, error) {
	var p domain.Parcel
	err := row.Scan(
		&p.ID, &p.TrackingCode, &p.Title, &p.Kind, &p.WeightKg,
		&p.SenderName, &p.SenderContact, &p.SenderLocality.Region, &p.SenderLocality.District, &p.SenderAddress, &p.SenderInstruction,
		&p.ReceiverName, &p.ReceiverContact, &p.ReceiverLocality.Region, &p.ReceiverLocality.District, &p.ReceiverAddress, &p.ReceiverInstruction,
		&p.CostCents, &p.PaymentStatus, &p.DeliveryStatus, &p.AssignedRiderID, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create - creates a new parcel and fills in its generated ID and timestamps.
func (r *ParcelRepo) Create(ctx context.Context, p *domain.Parcel) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO parcels (
            tracking_code, title, kind, weight_kg,
            sender_name, sender_contact, sender_region, sender_district, sender_address, sender_instruction,
            receiver_name, receiver_contact, receiver_region, receiver_district, receiver_address, receiver_instruction,
            cost_cents, payment_status, delivery_status, created_by
        )
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
        RETURNING id, created_at, updated_at
    `,
		p.TrackingCode, p.Title, string(p.Kind), p.WeightKg,
		p.SenderName, p.SenderContact, p.SenderLocality.Region, p.SenderLocality.District, p.SenderAddress, p.SenderInstruction,
		p.ReceiverName, p.ReceiverContact, p.ReceiverLocality.Region, p.ReceiverLocality.District, p.ReceiverAddress, p.ReceiverInstruction,
		p.CostCents, string(p.PaymentStatus), string(p.DeliveryStatus), p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.Conflict
		}
		return fmt.Errorf("create parcel: %w", err)
	}
	return nil
}

// Get - returns a parcel by its ID.
func (r *ParcelRepo) Get(ctx context.Context, id int64) (*domain.Parcel, error) {
	p, err := scanParcel(r.db.QueryRow(ctx,
		`SELECT `+parcelColumns+` FROM parcels WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get parcel %d: %w", id, err)
	}
	return p, nil
}

// GetByTrackingCode - returns a parcel by its public tracking code.
func (r *ParcelRepo) GetByTrackingCode(ctx context.Context, code string) (*domain.Parcel, error) {
	p, err := scanParcel(r.db.QueryRow(ctx,
		`SELECT `+parcelColumns+` FROM parcels WHERE tracking_code = $1`, code))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get parcel %q: %w", code, err)
	}
	return p, nil
}

// ListByCreator returns parcels booked by one user, newest first.
func (r *ParcelRepo) ListByCreator(ctx context.Context, createdBy string) ([]domain.Parcel, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+parcelColumns+` FROM parcels WHERE created_by = $1 ORDER BY created_at DESC, id DESC`,
		createdBy)
	if err != nil {
		return nil, fmt.Errorf("list parcels by creator: %w", err)
	}
	return collectParcels(rows)
}

// ListAssignable returns paid parcels that still await a rider, oldest first,
// so the dispatch view works through the backlog in booking order.
func (r *ParcelRepo) ListAssignable(ctx context.Context) ([]domain.Parcel, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+parcelColumns+`
        FROM parcels
        WHERE payment_status = 'paid' AND delivery_status = 'pending'
        ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list assignable parcels: %w", err)
	}
	return collectParcels(rows)
}

// ListByRider returns the parcels currently or previously carried by a rider.
func (r *ParcelRepo) ListByRider(ctx context.Context, riderID int64) ([]domain.Parcel, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+parcelColumns+` FROM parcels WHERE assigned_rider_id = $1 ORDER BY updated_at DESC, id DESC`,
		riderID)
	if err != nil {
		return nil, fmt.Errorf("list parcels by rider %d: %w", riderID, err)
	}
	return collectParcels(rows)
}

func collectParcels(rows pgx.Rows) ([]domain.Parcel, error) {
	defer rows.Close()
	out := make([]domain.Parcel, 0)
	for rows.Next() {
		p, err := scanParcel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// WithTx opens a transaction and executes fn within it.
func (r *ParcelRepo) WithTx(ctx context.Context, fn func(tx parceltx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// GetParcelForUpdate - loads a parcel and row-locks it for the transaction.
func (r *TxRepo) GetParcelForUpdate(ctx context.Context, id int64) (*domain.Parcel, error) {
	p, err := scanParcel(r.tx.QueryRow(ctx,
		`SELECT `+parcelColumns+` FROM parcels WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get parcel %d for update: %w", id, err)
	}
	return p, nil
}

// AssignRider moves a parcel to in_transit and records the rider, but only if
// the parcel is still pending and paid. Returns false when the guard rejects
// the write, i.e. a concurrent confirmation already won.
func (r *TxRepo) AssignRider(ctx context.Context, parcelID, riderID int64) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE parcels
        SET delivery_status = 'in_transit',
            assigned_rider_id = $2,
            updated_at = now()
        WHERE id = $1
          AND delivery_status = 'pending'
          AND payment_status = 'paid'
    `, parcelID, riderID)
	if err != nil {
		return false, fmt.Errorf("assign rider to parcel %d: %w", parcelID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// AdvanceDelivery moves a parcel between two delivery statuses, writing only
// when the row still holds the expected current status.
func (r *TxRepo) AdvanceDelivery(ctx context.Context, parcelID int64, from, to domain.DeliveryStatus) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE parcels
        SET delivery_status = $3, updated_at = now()
        WHERE id = $1 AND delivery_status = $2
    `, parcelID, string(from), string(to))
	if err != nil {
		return false, fmt.Errorf("advance parcel %d to %s: %w", parcelID, to, err)
	}
	return ct.RowsAffected() > 0, nil
}

// MarkPaid settles a parcel's payment, but only once.
func (r *TxRepo) MarkPaid(ctx context.Context, parcelID int64) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE parcels
        SET payment_status = 'paid', updated_at = now()
        WHERE id = $1 AND payment_status = 'pending'
    `, parcelID)
	if err != nil {
		return false, fmt.Errorf("mark parcel %d paid: %w", parcelID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// UpdateRiderStatus moves a rider between two statuses, writing only when the
// row still holds the expected current status. Returns false when the rider is
// missing or a concurrent writer changed the status first.
func (r *TxRepo) UpdateRiderStatus(ctx context.Context, id int64, from, to domain.RiderStatus) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE riders
        SET status = $3, updated_at = now()
        WHERE id = $1 AND status = $2
    `, id, string(from), string(to))
	if err != nil {
		return false, fmt.Errorf("update rider %d status: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// InsertTrackingEvent - appends one entry to a parcel's delivery timeline.
func (r *TxRepo) InsertTrackingEvent(ctx context.Context, e *domain.TrackingEvent) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO tracking_events (tracking_code, status, location, notes, recorded_by)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `, e.TrackingCode, string(e.Status), e.Location, e.Notes, e.RecordedBy).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert tracking event: %w", err)
	}
	return nil
}

// InsertEarning - credits a rider for one completed delivery.
func (r *TxRepo) InsertEarning(ctx context.Context, e *domain.Earning) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO earnings (rider_id, parcel_id, amount_cents)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `, e.RiderID, e.ParcelID, e.AmountCents).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert earning: %w", err)
	}
	return nil
}

// InsertPayment - records a settled charge.
func (r *TxRepo) InsertPayment(ctx context.Context, p *domain.Payment) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO payments (parcel_id, tracking_code, amount_cents, currency, provider_ref, paid_by)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at
    `, p.ParcelID, p.TrackingCode, p.AmountCents, p.Currency, p.ProviderRef, p.PaidBy).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.Conflict
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}
