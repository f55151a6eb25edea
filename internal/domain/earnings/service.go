package earnings

import "context"

// PayrollService derives weekly regular/overtime earnings from shifts.
type PayrollService interface {
	// RecomputeWeek rebuilds all seven daily records of the week containing
	// date from source shifts, wage history and settings. Always recomputes
	// the entire week; never patches a single day.
	RecomputeWeek(ctx context.Context, employeeID, date string) (WeeklyEarningsResponse, error)

	// RecomputeWeekForCompany is RecomputeWeek with the company supplied by
	// the caller instead of request claims, for background work.
	RecomputeWeekForCompany(ctx context.Context, employeeID, companyID, date string) (WeeklyEarningsResponse, error)

	// GetWeeklyEarnings reads the persisted records for the week containing
	// date.
	GetWeeklyEarnings(ctx context.Context, req WeeklyEarningsRequest) (WeeklyEarningsResponse, error)

	// GetSettings returns the stored overtime policy or the defaults.
	GetSettings(ctx context.Context) (SettingsResponse, error)

	// UpdateSettings changes the policy. History is not rewritten; callers
	// trigger RecomputeWeek explicitly where needed.
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
