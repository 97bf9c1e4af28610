package services

import "errors"

// Error taxonomy surfaced to handlers. Services wrap these with fmt.Errorf
// and %w; handlers map them to 404/400/409. Anything else is a storage
// failure and maps to 500.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)
