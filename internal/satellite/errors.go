package satellite

import "errors"

// Sentinel errors returned by the registry.
var (
	// ErrNotFound means no satellite matches the given id or entity id.
	ErrNotFound = errors.New("satellite: not found")

	// ErrAlreadyExists means the entity id is already registered.
	ErrAlreadyExists = errors.New("satellite: already exists")

	// ErrValidation means the satellite failed field validation.
	ErrValidation = errors.New("satellite: validation failed")
)
