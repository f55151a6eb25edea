package shift

import (
	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/timeutil"
)

// SyncDerivedFields computes canonical worked hours and lifecycle status from
// a shift's raw check-in/out data and returns the minimal patch needed to
// bring the stored values in line. It returns nil when the stored values are
// already canonical, which keeps re-deliveries of change events harmless.
func SyncDerivedFields(s shift.Shift) *shift.Patch {
	patch := &shift.Patch{}
	changed := false

	if hours, ok := computeWorkedHours(s); ok {
		if s.DerivedWorkedHours == nil || *s.DerivedWorkedHours != hours {
			patch.DerivedWorkedHours = &hours
			changed = true
		}
	}

	status := deriveStatus(s)
	if s.DerivedStatus != status {
		patch.DerivedStatus = &status
		changed = true
	}

	if !changed {
		return nil
	}
	return patch
}

// computeWorkedHours derives worked hours from the highest-fidelity data
// available. Missing or unusable data is a steady state, not a fault: the
// second return is false and no patch field is produced.
func computeWorkedHours(s shift.Shift) (float64, bool) {
	// Precise instants win over wall-clock strings.
	if s.CheckIn.Kind == shift.CheckPrecise && s.CheckOut.Kind == shift.CheckPrecise {
		hours := timeutil.HoursBetween(s.CheckIn.At, s.CheckOut.At)
		if hours < 0 {
			// Out before in: cannot compute, not clamped to zero.
			return 0, false
		}
		return hours, true
	}

	if s.CheckIn.Kind == shift.CheckWallClock && s.CheckOut.Kind == shift.CheckWallClock {
		inMin, err := timeutil.ParseClock(s.CheckIn.Clock)
		if err != nil {
			return 0, false
		}
		outMin, err := timeutil.ParseClock(s.CheckOut.Clock)
		if err != nil {
			return 0, false
		}

		if s.Overnight && outMin < inMin {
			outMin += timeutil.MinutesPerDay
		}

		hours := timeutil.Round2(float64(outMin-inMin) / 60.0)
		if hours < 0 {
			return 0, false
		}
		return hours, true
	}

	return 0, false
}

// deriveStatus is independent of whether worked hours are computable: any
// check observation counts, precise or wall-clock.
func deriveStatus(s shift.Shift) shift.Status {
	switch {
	case s.CheckIn.Present() && s.CheckOut.Present():
		return shift.StatusCompleted
	case s.CheckIn.Present():
		return shift.StatusInProgress
	default:
		return shift.StatusScheduled
	}
}
