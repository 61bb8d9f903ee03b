package failure_test

import (
	"errors"
	"net/http"
	"testing"

	"dwell/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusConflict,
		Message: "The room has already been booked",
	}

	if f.Error() != "The room has already been booked" {
		t.Errorf("unexpected error message %s", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "InvalidPageParam",
			failure: failure.InvalidPageParam,
			code:    http.StatusBadRequest,
			message: "invalid page parameter",
		},
		{
			name:    "InvalidLimitParam",
			failure: failure.InvalidLimitParam,
			code:    http.StatusBadRequest,
			message: "invalid limit parameter",
		},
		{
			name:    "ForbiddenError",
			failure: failure.ForbiddenError,
			code:    http.StatusForbidden,
			message: "You don't have the required permissions",
		},
		{
			name:    "ResourceRestrictedError",
			failure: failure.ResourceRestrictedError,
			code:    http.StatusForbidden,
			message: "You don't have permission to access this resource",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, tt.failure.Code)
			}
			if tt.failure.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.failure.Message)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "BadRequest",
			err:     failure.BadRequest(errors.New("validation failed")),
			code:    http.StatusBadRequest,
			message: "validation failed",
		},
		{
			name:    "BadRequestFromString",
			err:     failure.BadRequestFromString("Check-out date must be after check-in date."),
			code:    http.StatusBadRequest,
			message: "Check-out date must be after check-in date.",
		},
		{
			name:    "Unauthorized",
			err:     failure.Unauthorized("authentication required"),
			code:    http.StatusUnauthorized,
			message: "authentication required",
		},
		{
			name:    "Forbidden",
			err:     failure.Forbidden("nope"),
			code:    http.StatusForbidden,
			message: "nope",
		},
		{
			name:    "NotFound",
			err:     failure.NotFound("booking not found"),
			code:    http.StatusNotFound,
			message: "booking not found",
		},
		{
			name:    "Conflict",
			err:     failure.Conflict("You have already booked this room"),
			code:    http.StatusConflict,
			message: "You have already booked this room",
		},
		{
			name:    "InternalError",
			err:     failure.InternalError(errors.New("db gone")),
			code:    http.StatusInternalServerError,
			message: "db gone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fail *failure.Failure
			if !errors.As(tt.err, &fail) {
				t.Fatal("expected a *failure.Failure")
			}

			if fail.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, fail.Code)
			}

			if fail.Message != tt.message {
				t.Errorf("expected message %s, got %s", tt.message, fail.Message)
			}
		})
	}
}

func TestNilConstructors(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("expected BadRequest(nil) to be nil")
	}

	if failure.InternalError(nil) != nil {
		t.Error("expected InternalError(nil) to be nil")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "failure error",
			err:      failure.NotFound("room not found"),
			expected: http.StatusNotFound,
		},
		{
			name:     "plain error falls back to 500",
			err:      errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	err := failure.Conflict("The room has already been booked")

	if !failure.IsCode(err, http.StatusConflict) {
		t.Error("expected IsCode to match the conflict code")
	}

	if failure.IsCode(err, http.StatusNotFound) {
		t.Error("expected IsCode to reject a different code")
	}

	if failure.IsCode(errors.New("boom"), http.StatusInternalServerError) {
		t.Error("expected IsCode to reject a plain error")
	}
}
