package apperr

import "errors"

// Invalid is returned when the input fails domain validation.
var Invalid = errors.New("invalid input")

// Conflict indicates a uniqueness or state conflict (HTTP 409), e.g. a parcel
// that is no longer pending and paid when a rider assignment is confirmed.
var Conflict = errors.New("conflict")

// NotFound indicates that the requested resource does not exist.
var NotFound = errors.New("not found")

// MissingLocality indicates that the locality reference table is empty or a
// region cannot be resolved against it.
var MissingLocality = errors.New("missing locality data")

// Unavailable indicates a transient store or upstream failure; retrying is
// safe because every mutation re-checks its state guard.
var Unavailable = errors.New("store unavailable")
