package failure_test

import (
	"errors"
	"net/http"
	"patientflow/shared/failure"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		kind string
	}{
		{
			name: "BadRequestFromString",
			err:  failure.BadRequestFromString("start time must be before end time"),
			code: http.StatusBadRequest,
			kind: failure.KindValidation,
		},
		{
			name: "Duplicate",
			err:  failure.Duplicate("patient already has an active queue entry"),
			code: http.StatusConflict,
			kind: failure.KindDuplicate,
		},
		{
			name: "Conflict",
			err:  failure.Conflict("room already booked"),
			code: http.StatusConflict,
			kind: failure.KindConflict,
		},
		{
			name: "InvalidTransition",
			err:  failure.InvalidTransition("cannot move completed entry back to waiting"),
			code: http.StatusUnprocessableEntity,
			kind: failure.KindInvalidTransition,
		},
		{
			name: "NotFound",
			err:  failure.NotFound("booking not found"),
			code: http.StatusNotFound,
			kind: failure.KindNotFound,
		},
		{
			name: "Unauthorized",
			err:  failure.Unauthorized("missing api key"),
			code: http.StatusUnauthorized,
			kind: failure.KindUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.err.(*failure.Failure)
			if !ok {
				t.Fatalf("expected *failure.Failure, got %T", tt.err)
			}
			if f.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, f.Code)
			}
			if f.Kind != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, f.Kind)
			}
		})
	}
}

func TestConflictWithID(t *testing.T) {
	err := failure.ConflictWithID("room already booked for this slot", "booking-42")

	f, ok := err.(*failure.Failure)
	if !ok {
		t.Fatalf("expected *failure.Failure, got %T", err)
	}
	if f.ConflictID != "booking-42" {
		t.Errorf("expected conflict id 'booking-42', got %s", f.ConflictID)
	}
	if f.Code != http.StatusConflict {
		t.Errorf("expected code %d, got %d", http.StatusConflict, f.Code)
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestGetKind(t *testing.T) {
	if kind := failure.GetKind(failure.Duplicate("dup")); kind != failure.KindDuplicate {
		t.Errorf("expected kind %s, got %s", failure.KindDuplicate, kind)
	}

	if kind := failure.GetKind(errors.New("connection refused")); kind != failure.KindInternal {
		t.Errorf("expected kind %s, got %s", failure.KindInternal, kind)
	}

	if !failure.IsKind(failure.Conflict("overlap"), failure.KindConflict) {
		t.Error("expected IsKind to match conflict failures")
	}
}
