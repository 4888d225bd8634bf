package certificates

import "errors"

var (
	// ErrNotFound is returned when no certificate matches the given id.
	ErrNotFound = errors.New("certificate not found")
	// ErrInvalidInput is returned for malformed ingestion input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrValidation is returned when an update contains invalid field values;
	// the record is left unchanged.
	ErrValidation = errors.New("validation failed")
)
