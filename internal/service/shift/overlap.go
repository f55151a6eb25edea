package shift

import (
	"fmt"
	"time"

	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/timeutil"
)

// DailyLimitMinutes caps the total committed minutes on one nominal day,
// independent of the per-shift MaxHours option.
const DailyLimitMinutes = 16 * 60

// Candidate is a shift interval under validation, before it exists.
type Candidate struct {
	EmployeeID string
	Date       string
	StartTime  string
	EndTime    string
}

// ValidateOptions tunes a single validation run.
type ValidateOptions struct {
	// AllowOvernight accepts end <= start as a midnight-crossing shift.
	AllowOvernight bool
	// MaxHours rejects candidates strictly longer than this. Zero disables
	// the check. A shift exactly at the limit is valid.
	MaxHours float64
	// ExcludeShiftID skips one existing shift, for edit flows.
	ExcludeShiftID string
}

// OverlapValidator decides whether a candidate interval may be committed
// against an employee's existing shifts. It is a pure calculator: no I/O, no
// clock reads, and every recognized input maps to a typed result.
type OverlapValidator struct {
}

func NewOverlapValidator() *OverlapValidator {
	return &OverlapValidator{}
}

// ValidateCandidate runs the acceptance algorithm. existing should hold the
// employee's shifts for the candidate's nominal date plus any shift from the
// previous day that may spill past midnight into it.
func (v *OverlapValidator) ValidateCandidate(cand Candidate, existing []shift.Shift, opts ValidateOptions) shift.ValidationResult {
	candStart, err := timeutil.Combine(cand.Date, cand.StartTime)
	if err != nil {
		return shift.ValidationResult{
			Valid:   false,
			Type:    shift.ConflictTimeInvalid,
			Message: fmt.Sprintf("start time is not valid: %v", err),
		}
	}

	candEnd, err := timeutil.Combine(cand.Date, cand.EndTime)
	if err != nil {
		return shift.ValidationResult{
			Valid:   false,
			Type:    shift.ConflictTimeInvalid,
			Message: fmt.Sprintf("end time is not valid: %v", err),
		}
	}

	overnight := false
	if !candEnd.After(candStart) {
		if !opts.AllowOvernight {
			return shift.ValidationResult{
				Valid:   false,
				Type:    shift.ConflictTimeInvalid,
				Message: "end time must be after start time",
			}
		}
		candEnd = candEnd.Add(24 * time.Hour)
		overnight = true
	}

	duration := timeutil.HoursBetween(candStart, candEnd)
	if opts.MaxHours > 0 && duration > opts.MaxHours {
		return shift.ValidationResult{
			Valid:     false,
			Type:      shift.ConflictDurationExceeded,
			Message:   fmt.Sprintf("shift duration %.2fh exceeds the maximum of %.2fh", duration, opts.MaxHours),
			Overnight: overnight,
		}
	}

	for _, ex := range existing {
		if opts.ExcludeShiftID != "" && ex.ID == opts.ExcludeShiftID {
			continue
		}

		exStart, exEnd, err := shiftInterval(ex)
		if err != nil {
			// An unparsable stored shift cannot conflict; skip it.
			continue
		}

		// Half-open comparison: touching endpoints are not a conflict, so
		// back-to-back shifts with zero gap are allowed.
		if candStart.Before(exEnd) && exStart.Before(candEnd) {
			return shift.ValidationResult{
				Valid:           false,
				Type:            shift.ConflictOverlap,
				ConflictShiftID: ex.ID,
				Message:         fmt.Sprintf("overlaps existing shift %s (%s-%s)", ex.ID, ex.StartTime, ex.EndTime),
				Overnight:       overnight,
			}
		}
	}

	// Daily ceiling. The sum clamps midnight-crossing shifts to the nominal
	// day so an overnight shift is not charged twice, while the per-shift
	// MaxHours check above uses the full duration.
	dayEnd := candStart.Truncate(24 * time.Hour).Add(24 * time.Hour)
	totalMinutes := clampedMinutes(candStart, candEnd, dayEnd)
	totalHours := duration

	for _, ex := range existing {
		if opts.ExcludeShiftID != "" && ex.ID == opts.ExcludeShiftID {
			continue
		}
		if ex.Date != cand.Date {
			continue
		}
		exStart, exEnd, err := shiftInterval(ex)
		if err != nil {
			continue
		}
		totalMinutes += clampedMinutes(exStart, exEnd, dayEnd)
		totalHours += timeutil.HoursBetween(exStart, exEnd)
	}

	if totalMinutes > DailyLimitMinutes {
		return shift.ValidationResult{
			Valid:     false,
			Type:      shift.ConflictDailyLimitExceeded,
			Message:   fmt.Sprintf("total committed time on %s would exceed the %dh daily limit", cand.Date, DailyLimitMinutes/60),
			Overnight: overnight,
		}
	}

	return shift.ValidationResult{
		Valid:           true,
		Message:         "shift is valid",
		TotalDailyHours: timeutil.Round2(totalHours),
		Overnight:       overnight,
	}
}

// shiftInterval returns the true instants of a stored shift, honoring its
// explicit end date or overnight flag.
func shiftInterval(s shift.Shift) (time.Time, time.Time, error) {
	start, err := timeutil.Combine(s.Date, s.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	endDate := s.Date
	if s.EndDate != nil && *s.EndDate != "" {
		endDate = *s.EndDate
	}
	end, err := timeutil.Combine(endDate, s.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end = timeutil.AdjustOvernight(start, end, s.Overnight)
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("shift %s has a non-positive interval", s.ID)
	}

	return start, end, nil
}

// clampedMinutes counts the minutes of [start, end) falling before dayEnd.
func clampedMinutes(start, end, dayEnd time.Time) int {
	if end.After(dayEnd) {
		end = dayEnd
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start).Minutes())
}
