package earnings

import "context"

// EarningsRepository persists derived daily earnings records. Upserts use
// merge semantics on (employee_id, date); the records carry no independent
// identity.
type EarningsRepository interface {
	// Upsert writes one derived record, overwriting any existing row for the
	// same employee and date.
	Upsert(ctx context.Context, record DailyRecord) error

	// ListForEmployeeInRange returns records ordered by date ascending.
	ListForEmployeeInRange(ctx context.Context, employeeID, startDate, endDate, companyID string) ([]DailyRecord, error)
}

// SettingsRepository stores the company's overtime policy.
type SettingsRepository interface {
	// Get returns the stored settings or ErrSettingsNotFound.
	Get(ctx context.Context, companyID string) (OvertimeSettings, error)

	// Save upserts the settings.
	Save(ctx context.Context, settings OvertimeSettings) (OvertimeSettings, error)
}
