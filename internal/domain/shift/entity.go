package shift

import (
	"time"
)

// Status is the derived lifecycle state of a shift.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// CheckKind discriminates how a check-in/out was captured.
type CheckKind string

const (
	CheckAbsent    CheckKind = "absent"
	CheckPrecise   CheckKind = "precise"    // exact instant from a device event
	CheckWallClock CheckKind = "wall_clock" // "HH:mm" string entered by hand
)

// CheckEvent is a check-in or check-out observation. A shift captures either a
// precise instant or a wall-clock string, never both.
type CheckEvent struct {
	Kind  CheckKind
	At    time.Time // set when Kind == CheckPrecise
	Clock string    // set when Kind == CheckWallClock
}

func AbsentCheck() CheckEvent              { return CheckEvent{Kind: CheckAbsent} }
func PreciseCheck(at time.Time) CheckEvent { return CheckEvent{Kind: CheckPrecise, At: at} }
func WallClockCheck(c string) CheckEvent   { return CheckEvent{Kind: CheckWallClock, Clock: c} }

// Present reports whether any check observation exists, regardless of kind.
func (e CheckEvent) Present() bool {
	return e.Kind == CheckPrecise || e.Kind == CheckWallClock
}

type Shift struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       string // nominal start date, "2006-01-02"
	StartTime  string // wall-clock "HH:mm"
	EndTime    string
	// EndDate is set exactly when the shift crosses midnight; Overnight is
	// derived from its presence and both are normalized on write.
	EndDate            *string
	Overnight          bool
	Description        string
	ShiftType          string
	CheckIn            CheckEvent
	CheckOut           CheckEvent
	DerivedWorkedHours *float64
	DerivedStatus      Status
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// DTO
	EmployeeName *string
}

// Patch describes the minimal set of derived fields that must change on a
// stored shift. A nil patch means the stored values are already canonical.
type Patch struct {
	DerivedWorkedHours *float64
	DerivedStatus      *Status
}

// ConflictType is the machine-checkable reason a candidate shift was rejected.
type ConflictType string

const (
	ConflictTimeInvalid        ConflictType = "time_invalid"
	ConflictDurationExceeded   ConflictType = "duration_exceeded"
	ConflictOverlap            ConflictType = "overlap_conflict"
	ConflictDailyLimitExceeded ConflictType = "daily_limit_exceeded"
)

// ValidationResult is returned for every recognized candidate, valid or not.
// Rejections are results, never errors.
type ValidationResult struct {
	Valid           bool         `json:"is_valid"`
	Message         string       `json:"message"`
	Type            ConflictType `json:"type,omitempty"`
	ConflictShiftID string       `json:"conflict_shift_id,omitempty"`
	TotalDailyHours float64      `json:"total_daily_hours,omitempty"`
	Overnight       bool         `json:"overnight"`
}

// ContinuationFragment is the read-only portion of an overnight shift that
// falls on the calendar day after its nominal date. Fragments are never
// persisted and never edited; edits always target the base shift.
type ContinuationFragment struct {
	BaseShiftID    string `json:"base_shift_id"`
	EmployeeID     string `json:"employee_id"`
	Date           string `json:"date"` // day after the base shift's date
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	IsContinuation bool   `json:"is_continuation"`
	Description    string `json:"description"`
	ShiftType      string `json:"shift_type"`

	// Worked-minute shares when precise check instants are available.
	WorkedMinutes     *int `json:"worked_minutes,omitempty"`      // post-midnight share
	BaseWorkedMinutes *int `json:"base_worked_minutes,omitempty"` // pre-midnight share, for annotating the base
}
