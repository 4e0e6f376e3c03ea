package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/voxtime/voxtime-core/internal/satellite"
	"github.com/voxtime/voxtime-core/internal/timer"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeNotFound       = "not_found"
	ErrCodeUnauthorized   = "unauthorised"
	ErrCodeForbidden      = "forbidden"
	ErrCodeConflict       = "conflict"
	ErrCodeInternal       = "internal_error"
	ErrCodeValidation     = "validation_error"
	ErrCodeMethodNotAllow = "method_not_allowed"

	// ErrCodeDecodeFailure means the sentence carried no recognizable
	// time phrase.
	ErrCodeDecodeFailure = "decode_failure"

	// ErrCodeDuplicateTimer means an identical timer already exists for
	// the same entity and expiry.
	ErrCodeDuplicateTimer = "duplicate_timer"

	// ErrCodeInvalidTransition means the timer is not in a state that
	// allows the requested operation.
	ErrCodeInvalidTransition = "invalid_transition"

	// ErrCodeInvalidTarget means the entity id does not match a
	// registered satellite.
	ErrCodeInvalidTarget = "invalid_target"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// writeUnauthorized writes a 401 error response.
func writeUnauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// writeTimerError maps timer store errors onto HTTP responses.
func writeTimerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, timer.ErrNotFound):
		writeNotFound(w, "timer not found")
	case errors.Is(err, timer.ErrDuplicate):
		writeError(w, http.StatusConflict, ErrCodeDuplicateTimer, "an identical timer already exists")
	case errors.Is(err, timer.ErrInvalidTransition):
		writeError(w, http.StatusConflict, ErrCodeInvalidTransition, err.Error())
	case errors.Is(err, timer.ErrInvalidValue), errors.Is(err, timer.ErrValidation):
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
	default:
		writeInternalError(w, "timer operation failed")
	}
}

// writeSatelliteError maps satellite registry errors onto HTTP responses.
func writeSatelliteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, satellite.ErrNotFound):
		writeNotFound(w, "satellite not found")
	case errors.Is(err, satellite.ErrAlreadyExists):
		writeError(w, http.StatusConflict, ErrCodeConflict, "entity id already registered")
	case errors.Is(err, satellite.ErrValidation):
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
	default:
		writeInternalError(w, "satellite operation failed")
	}
}
