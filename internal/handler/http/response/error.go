package response

import (
	"errors"
	"net/http"

	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/earnings"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/employee"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/wage"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrAlreadyCheckedIn):
		Conflict(w, "Shift already has a check-in")
	case errors.Is(err, shift.ErrNotCheckedIn):
		Conflict(w, "Shift has no check-in yet")
	case errors.Is(err, shift.ErrAlreadyCheckedOut):
		Conflict(w, "Shift already has a check-out")
	case errors.Is(err, shift.ErrInvalidDateRange):
		BadRequest(w, "start_date must not be after end_date", nil)
	case errors.Is(err, shift.ErrEditsContinuation):
		BadRequest(w, "Continuation fragments are read-only; edit the base shift", nil)
	case errors.Is(err, shift.ErrInvalidRequestData):
		BadRequest(w, "Invalid request data", nil)
	case errors.Is(err, shift.ErrUnauthorized):
		Unauthorized(w, "Not authorized")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUnauthorized):
		Unauthorized(w, "Not authorized")

	// Earnings domain errors
	case errors.Is(err, earnings.ErrRecordNotFound):
		NotFound(w, "Earnings record not found")
	case errors.Is(err, earnings.ErrSettingsNotFound):
		NotFound(w, "Overtime settings not found")

	// Wage domain errors
	case errors.Is(err, wage.ErrInvalidRate):
		BadRequest(w, "Wage rate must be positive", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
