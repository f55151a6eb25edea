package shift

import (
	"context"
)

// ShiftService defines business logic for shift scheduling and time capture.
type ShiftService interface {
	// CreateShift validates a candidate against the employee's existing
	// shifts and persists it when accepted. A rejected candidate returns the
	// typed ValidationResult with Valid=false and a nil error.
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, ValidationResult, error)

	// UpdateShift re-validates the edited interval, excluding the shift
	// itself from overlap checks.
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, ValidationResult, error)

	// ValidateCandidateShift runs the overlap validator without persisting.
	ValidateCandidateShift(ctx context.Context, req ValidateShiftRequest) (ValidationResult, error)

	// CheckIn records a check-in observation and reconciles derived fields.
	CheckIn(ctx context.Context, req CheckRequest) (ShiftResponse, error)

	// CheckOut records a check-out observation and reconciles derived fields.
	CheckOut(ctx context.Context, req CheckRequest) (ShiftResponse, error)

	// GetShift returns a single shift.
	GetShift(ctx context.Context, id string) (ShiftResponse, error)

	// ListShiftsByDay groups a date range by calendar day, splitting
	// overnight shifts into base + continuation fragment.
	ListShiftsByDay(ctx context.Context, filter ListShiftsFilter) ([]DayGroup, error)

	// ResyncShift re-runs derived-field reconciliation for one shift and
	// persists the patch when stored values drift from canonical ones.
	ResyncShift(ctx context.Context, shiftID, companyID string) (bool, error)

	// DeleteShift removes a shift.
	DeleteShift(ctx context.Context, id string) error
}
