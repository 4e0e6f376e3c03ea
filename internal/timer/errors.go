package timer

import "errors"

// Sentinel errors returned by the store.
var (
	// ErrNotFound means no timer with the given id exists.
	ErrNotFound = errors.New("timer: not found")

	// ErrDuplicate means a timer with the same owning entity and expiry
	// already exists; the add is a no-op.
	ErrDuplicate = errors.New("timer: already exists")

	// ErrInvalidTransition means the requested lifecycle change is not
	// allowed from the timer's current status.
	ErrInvalidTransition = errors.New("timer: invalid status transition")

	// ErrInvalidValue means the decoded time value is missing or not
	// usable for the requested operation.
	ErrInvalidValue = errors.New("timer: invalid time value")

	// ErrValidation means the timer failed field validation.
	ErrValidation = errors.New("timer: validation failed")
)
