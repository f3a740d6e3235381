package failure

import (
	"errors"
	"net/http"
)

// Kind classifies recoverable failures so the API layer can render the
// correct message, e.g. "room already booked" vs "patient already in queue".
const (
	KindValidation        = "validation"
	KindDuplicate         = "duplicate"
	KindConflict          = "conflict"
	KindInvalidTransition = "invalid_transition"
	KindNotFound          = "not_found"
	KindUnauthorized      = "unauthorized"
	KindForbidden         = "forbidden"
	KindInternal          = "internal"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code       int    `json:"code"`
	Kind       string `json:"kind,omitempty"`
	Message    string `json:"message"`
	ConflictID string `json:"conflict_id,omitempty"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Kind: KindValidation, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Kind: KindValidation, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Kind: KindForbidden, Message: "You don't have the required permissions"}

// Error returns the error message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Kind:    KindValidation,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Kind:    KindUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Kind:    KindInternal,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// ConflictWithID returns a conflict Failure carrying the id of the record the
// caller collided with, so the UI can display or link the existing booking.
func ConflictWithID(message, conflictID string) error {
	return &Failure{
		Code:       http.StatusConflict,
		Kind:       KindConflict,
		Message:    message,
		ConflictID: conflictID,
	}
}

// Duplicate returns a conflict-coded Failure for duplicate active records.
func Duplicate(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindDuplicate,
		Message: message,
	}
}

// InvalidTransition returns a new Failure for illegal state machine moves.
func InvalidTransition(message string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindInvalidTransition,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Kind:    KindForbidden,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the failure kind of an error interface, or KindInternal for
// opaque infrastructure errors.
func GetKind(err error) string {
	var fail *Failure
	if errors.As(err, &fail) && fail.Kind != "" {
		return fail.Kind
	}

	return KindInternal
}

// IsKind reports whether err is a Failure of the given kind.
func IsKind(err error, kind string) bool {
	return GetKind(err) == kind
}
