package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown dataset source type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Dataset Errors.

	// ErrDatasetUnavailable indicates the dataset could not be loaded.
	// Searches keep working against an empty snapshot.
	ErrDatasetUnavailable = errors.New("dataset unavailable")

	// ErrInvalidCoordinates indicates a record whose latitude or longitude
	// is not a finite number within range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrDuplicateID indicates two cities in one snapshot share an identifier.
	ErrDuplicateID = errors.New("duplicate city id")
)
