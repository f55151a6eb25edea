package shift

import (
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/validator"
)

// ========================================
// SHIFT DTOs
// ========================================

type CreateShiftRequest struct {
	EmployeeID     string  `json:"employee_id"`
	Date           string  `json:"date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	Description    string  `json:"description"`
	ShiftType      string  `json:"shift_type"`
	AllowOvernight bool    `json:"allow_overnight"`
	MaxHours       float64 `json:"max_hours"`
}

func (r *CreateShiftRequest) Validate() error {
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

	if validator.IsEmpty(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time is required",
		})
	}

	if validator.IsEmpty(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time is required",
		})
	}

	if r.MaxHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_hours",
			Message: "max_hours must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateShiftRequest struct {
	ID             string  `json:"-"`
	Date           *string `json:"date"`
	StartTime      *string `json:"start_time"`
	EndTime        *string `json:"end_time"`
	Description    *string `json:"description"`
	ShiftType      *string `json:"shift_type"`
	AllowOvernight bool    `json:"allow_overnight"`
	MaxHours       float64 `json:"max_hours"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "shift id is required",
		})
	}

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CheckRequest records a check-in or check-out. Exactly one of Timestamp
// (RFC 3339) or ClockTime ("HH:mm") should be supplied.
type CheckRequest struct {
	ShiftID   string  `json:"-"`
	Timestamp *string `json:"timestamp"`
	ClockTime *string `json:"clock_time"`
}

func (r *CheckRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift id is required",
		})
	}

	if r.Timestamp != nil && r.ClockTime != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "supply either timestamp or clock_time, not both",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ValidateShiftRequest struct {
	EmployeeID     string  `json:"employee_id"`
	Date           string  `json:"date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	ExcludeShiftID string  `json:"exclude_shift_id"`
	AllowOvernight bool    `json:"allow_overnight"`
	MaxHours       float64 `json:"max_hours"`
}

func (r *ValidateShiftRequest) Validate() error {
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

type ShiftResponse struct {
	ID                 string   `json:"id"`
	EmployeeID         string   `json:"employee_id"`
	EmployeeName       *string  `json:"employee_name,omitempty"`
	Date               string   `json:"date"`
	StartTime          string   `json:"start_time"`
	EndTime            string   `json:"end_time"`
	EndDate            *string  `json:"end_date,omitempty"`
	Overnight          bool     `json:"overnight"`
	Description        string   `json:"description,omitempty"`
	ShiftType          string   `json:"shift_type,omitempty"`
	CheckInTime        *string  `json:"check_in_time,omitempty"`
	CheckOutTime       *string  `json:"check_out_time,omitempty"`
	DerivedWorkedHours *float64 `json:"worked_hours,omitempty"`
	DerivedStatus      Status   `json:"status"`
	CreatedAt          string   `json:"created_at,omitempty"`
	UpdatedAt          string   `json:"updated_at,omitempty"`

	// WorkedMinutesOnDate annotates an overnight shift with its pre-midnight
	// share when the read path splits it across calendar days.
	WorkedMinutesOnDate *int `json:"worked_minutes_on_date,omitempty"`
}

// DayGroup is one calendar day of the read path: the shifts starting that day
// plus continuation fragments spilling into it from the previous day.
type DayGroup struct {
	Date      string                 `json:"date"`
	Shifts    []ShiftResponse        `json:"shifts"`
	Fragments []ContinuationFragment `json:"fragments,omitempty"`
}

type ListShiftsFilter struct {
	EmployeeID string
	StartDate  string
	EndDate    string
}
