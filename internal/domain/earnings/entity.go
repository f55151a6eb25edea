package earnings

import (
	"time"

	"github.com/shopspring/decimal"
)

// Default overtime policy. Percent 50 means a 1.5x multiplier.
const (
	DefaultThresholdHours  = 40.0
	DefaultOvertimePercent = 50.0
)

// OvertimeSettings is company-wide overtime policy. It is passed explicitly
// into every allocation; changes never rewrite history unless a caller
// triggers a recompute.
type OvertimeSettings struct {
	CompanyID       string
	ThresholdHours  float64
	OvertimePercent float64
	UpdatedAt       time.Time
}

func DefaultSettings(companyID string) OvertimeSettings {
	return OvertimeSettings{
		CompanyID:       companyID,
		ThresholdHours:  DefaultThresholdHours,
		OvertimePercent: DefaultOvertimePercent,
	}
}

// DailyRecord is the materialized per-day earnings view, keyed by
// (employee_id, date). It is fully derived: recomputing it from shifts, wage
// history and settings must always yield the same result, so upserts simply
// overwrite.
type DailyRecord struct {
	EmployeeID         string
	CompanyID          string
	Date               string // "2006-01-02"
	ScheduledHours     float64
	WorkedHours        float64
	RegularHours       float64
	OvertimeHours      float64
	HourlyWageSnapshot decimal.Decimal
	OvertimePercent    float64
	OvertimeThreshold  float64
	DayEarnings        decimal.Decimal
	OvertimeApplied    bool
	NoWorkRecorded     bool
	UpdatedAt          time.Time
}

// DailyAllocation is one day's output of the weekly allocator, before it is
// joined with scheduled hours into a DailyRecord.
type DailyAllocation struct {
	Date               string
	RegularHours       float64
	OvertimeHours      float64
	DayEarnings        decimal.Decimal
	HourlyWageSnapshot decimal.Decimal
	OvertimeApplied    bool
	NoWorkRecorded     bool
}
