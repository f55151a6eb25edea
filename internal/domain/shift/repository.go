package shift

import (
	"context"
	"time"
)

// ShiftRepository defines data access for shifts. All methods carry companyID
// to prevent cross-company data access.
type ShiftRepository interface {
	// Create inserts a new shift and returns it with generated fields.
	Create(ctx context.Context, s Shift) (Shift, error)

	// GetByID retrieves a shift with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Shift, error)

	// Update overwrites the mutable fields of an existing shift.
	Update(ctx context.Context, s Shift) error

	// ApplyPatch performs a partial update of derived fields only.
	// A nil-field in the patch leaves the stored column untouched.
	ApplyPatch(ctx context.Context, shiftID string, patch Patch, companyID string) error

	// ListForEmployeeInRange returns shifts whose nominal date falls in
	// [startDate, endDate], ordered by date then start time.
	ListForEmployeeInRange(ctx context.Context, employeeID, startDate, endDate, companyID string) ([]Shift, error)

	// ListForEmployeeOnDate returns shifts whose nominal date equals date.
	ListForEmployeeOnDate(ctx context.Context, employeeID, date, companyID string) ([]Shift, error)

	// ListUpdatedSince returns shifts touched after the given instant,
	// used by the periodic resync sweep.
	ListUpdatedSince(ctx context.Context, since time.Time) ([]Shift, error)

	// Delete removes a shift.
	Delete(ctx context.Context, id string, companyID string) error
}
