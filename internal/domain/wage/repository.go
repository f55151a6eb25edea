package wage

import "context"

// WageHistoryRepository defines data access for wage rate history.
type WageHistoryRepository interface {
	// ListForEmployee returns the employee's full history ordered by
	// effective_from ascending.
	ListForEmployee(ctx context.Context, employeeID, companyID string) ([]HistoryEntry, error)

	// Create appends a rate change.
	Create(ctx context.Context, entry HistoryEntry) (HistoryEntry, error)
}
