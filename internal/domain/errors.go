package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. destination too short, ends_at before starts_at).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a request contradicts stored state, such as
// confirming an invitation with an e-mail other than the invited one.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("conflict")
