package wage

import "context"

// WageService manages an employee's hourly rate history.
type WageService interface {
	// RecordChange appends a history entry. History is append-only; past
	// earnings are not rewritten unless a recompute is requested.
	RecordChange(ctx context.Context, req CreateEntryRequest) (EntryResponse, error)

	// GetHistory lists an employee's entries ordered by effective date.
	GetHistory(ctx context.Context, employeeID string) ([]EntryResponse, error)
}
