package shift

import "errors"

// Shift domain errors
var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrAlreadyCheckedIn   = errors.New("shift already has a check-in")
	ErrNotCheckedIn       = errors.New("shift has no check-in yet")
	ErrAlreadyCheckedOut  = errors.New("shift already has a check-out")
	ErrInvalidDateRange   = errors.New("start date must not be after end date")
	ErrEditsContinuation  = errors.New("continuation fragments cannot be edited directly")
	ErrUnauthorized       = errors.New("unauthorized to access this shift")
	ErrInvalidRequestData = errors.New("invalid shift request data")
)
