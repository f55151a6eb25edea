package earnings

import (
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// EARNINGS DTOs
// ========================================

type WeeklyEarningsRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // any date inside the target week
}

func (r *WeeklyEarningsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateSettingsRequest struct {
	ThresholdHours  *float64 `json:"threshold_hours"`
	OvertimePercent *float64 `json:"overtime_percent"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ThresholdHours != nil && *r.ThresholdHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "threshold_hours",
			Message: "threshold_hours must be positive",
		})
	}

	if r.OvertimePercent != nil && *r.OvertimePercent < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_percent",
			Message: "overtime_percent must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SettingsResponse struct {
	CompanyID       string  `json:"company_id"`
	ThresholdHours  float64 `json:"threshold_hours"`
	OvertimePercent float64 `json:"overtime_percent"`
}

type DailyRecordResponse struct {
	EmployeeID         string          `json:"employee_id"`
	Date               string          `json:"date"`
	ScheduledHours     float64         `json:"scheduled_hours"`
	WorkedHours        float64         `json:"worked_hours"`
	RegularHours       float64         `json:"regular_hours"`
	OvertimeHours      float64         `json:"overtime_hours"`
	HourlyWageSnapshot decimal.Decimal `json:"hourly_wage_snapshot"`
	OvertimePercent    float64         `json:"overtime_percent"`
	OvertimeThreshold  float64         `json:"overtime_threshold"`
	DayEarnings        decimal.Decimal `json:"day_earnings"`
	OvertimeApplied    bool            `json:"overtime_applied"`
	NoWorkRecorded     bool            `json:"no_work_recorded"`
}

type WeeklyEarningsResponse struct {
	EmployeeID    string                `json:"employee_id"`
	WeekStart     string                `json:"week_start"`
	Days          []DailyRecordResponse `json:"days"`
	TotalRegular  float64               `json:"total_regular_hours"`
	TotalOvertime float64               `json:"total_overtime_hours"`
	TotalEarnings decimal.Decimal       `json:"total_earnings"`
}
