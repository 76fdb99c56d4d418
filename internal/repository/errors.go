package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres unique_violation.
const uniqueViolation = "23505"

// IsDuplicate reports whether err is a unique constraint violation, e.g. a
// reused tracking code, rider email or a second payment row for one parcel.
func IsDuplicate(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == uniqueViolation
}

// IsNotFound reports whether a single-row query came back empty.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
