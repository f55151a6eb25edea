package shift

import (
	"testing"

	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func existingShift(id, date, start, end string) shift.Shift {
	return shift.Shift{
		ID:         id,
		EmployeeID: "emp-1",
		Date:       date,
		StartTime:  start,
		EndTime:    end,
	}
}

func TestValidateCandidate_NoConflicts(t *testing.T) {
	v := NewOverlapValidator()

	result := v.ValidateCandidate(
		Candidate{EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "09:00", EndTime: "17:00"},
		nil,
		ValidateOptions{},
	)

	require.True(t, result.Valid)
	assert.Equal(t, 8.0, result.TotalDailyHours)
	assert.False(t, result.Overnight)
	assert.Empty(t, result.ConflictShiftID)
}

func TestValidateCandidate_Overlap(t *testing.T) {
	v := NewOverlapValidator()
	existing := []shift.Shift{existingShift("shift-a", "2025-03-10", "09:00", "17:00")}

	result := v.ValidateCandidate(
		Candidate{EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "16:00", EndTime: "20:00"},
		existing,
		ValidateOptions{},
	)

	require.False(t, result.Valid)
	assert.Equal(t, shift.ConflictOverlap, result.Type)
	assert.Equal(t, "shift-a", result.ConflictShiftID)
}

func TestValidateCandidate_OverlapIsSymmetric(t *testing.T) {
	v := NewOverlapValidator()
	existing := []shift.Shift{existingShift("shift-a", "2025-03-10", "12:00", "20:00")}

	// Candidate starts before and ends inside the existing interval.
	result := v.ValidateCandidate(
		Candidate{EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "08:00", EndTime: "13:00"},
		existing,
		ValidateOptions{},
	)

	require.False(t, result.Valid)
	assert.Equal(t, shift.ConflictOverlap, result.Type)
}

func TestValidateCandidate_BackToBackAllowed(t *testing.T) {
	v := NewOverlapValidator()
	existing := []shift.Shift{existingShift("shift-a", "2025-03-10", "09:00", "17:00")}

	result := v.ValidateCandidate(
		Candidate{EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "17:00", EndTime: "21:00"},
		existing,
		ValidateOptions{},
	)

	require.True(t, result.Valid)
	assert.Equal(t, 12.0, result.TotalDailyHours)
}

func TestValidateCandidate_EndBeforeStartRejected(t *testing.T) {
	v := NewOverlapValidator()

	result := v.ValidateCandidate(
		Candidate{EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "22:00", EndTime: "06:00"},
		nil,
		ValidateOptions{},
	)

	require.False(t, result.Valid)
	assert.Equal(t, shift.ConflictTimeInvalid, result.Type)
}

func TestValidateCandidate_OvernightAccepted(t *testing.T) {
	v := NewOverlapValidator()

	result := v.ValidateCandidate(
		Candidate{EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "22:00", EndTime: "06:00"},
		nil,
		ValidateOptions{AllowOvernight: true},
	)

	require.True(t, result.Valid)
	assert.True(t, result.Overnight)
	// Full duration is reported even though most of it falls past midnight.
	assert.Equal(t, 8.0, result.TotalDailyHours)
}

func TestValidateCandidate_MalformedTime(t *testing.T) {
	v := NewOverlapValidator()

	result := v.ValidateCandidate(
		Candidate{EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "25:99", EndTime: "17:00"},
		nil,
		ValidateOptions{},
	)

	require.False(t, result.Valid)
	assert.Equal(t, shift.ConflictTimeInvalid, result.Type)
}

func TestValidateCandidate_MaxHours(t *testing.T) {
	v := NewOverlapValidator()

	t.Run("exceeded", func(t *testing.T) {
		result := v.ValidateCandidate(
			Candidate{EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "08:00", EndTime: "17:30"},
			nil,
			ValidateOptions{MaxHours: 8},
		)
		require.False(t, result.Valid)
		assert.Equal(t, shift.ConflictDurationExceeded, result.Type)
	})

	t.Run("exactly at the limit is valid", func(t *testing.T) {
		result := v.ValidateCandidate(
			Candidate{EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "08:00", EndTime: "16:00"},
			nil,
			ValidateOptions{MaxHours: 8},
		)
		require.True(t, result.Valid)
	})

	t.Run("zero disables the check", func(t *testing.T) {
		result := v.ValidateCandidate(
			Candidate{EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "06:00", EndTime: "21:00"},
			nil,
			ValidateOptions{},
		)
		require.True(t, result.Valid)
	})

	t.Run("overnight counts its full duration", func(t *testing.T) {
		result := v.ValidateCandidate(
			Candidate{EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "20:00", EndTime: "06:00"},
			nil,
			ValidateOptions{AllowOvernight: true, MaxHours: 8},
		)
		require.False(t, result.Valid)
		assert.Equal(t, shift.ConflictDurationExceeded, result.Type)
	})
}

func TestValidateCandidate_DailyLimit(t *testing.T) {
	v := NewOverlapValidator()

	t.Run("exceeded", func(t *testing.T) {
		existing := []shift.Shift{existingShift("shift-a", "2025-03-10", "06:00", "14:00")}
		result := v.ValidateCandidate(
			Candidate{EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "14:00", EndTime: "22:30"},
			existing,
			ValidateOptions{},
		)
		require.False(t, result.Valid)
		assert.Equal(t, shift.ConflictDailyLimitExceeded, result.Type)
	})

	t.Run("exactly sixteen hours is valid", func(t *testing.T) {
		existing := []shift.Shift{existingShift("shift-a", "2025-03-10", "06:00", "14:00")}
		result := v.ValidateCandidate(
			Candidate{EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "14:00", EndTime: "22:00"},
			existing,
			ValidateOptions{},
		)
		require.True(t, result.Valid)
		assert.Equal(t, 16.0, result.TotalDailyHours)
	})

	t.Run("overnight nominal-day share counts toward the ceiling", func(t *testing.T) {
		// 06:00-14:00 plus 14:00-04:00 overnight: the overnight shift charges
		// 10h to the nominal day, pushing the total past 16h.
		existing := []shift.Shift{existingShift("shift-a", "2025-03-10", "06:00", "14:00")}
		result := v.ValidateCandidate(
			Candidate{EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "14:00", EndTime: "04:00"},
			existing,
			ValidateOptions{AllowOvernight: true},
		)
		require.False(t, result.Valid)
		assert.Equal(t, shift.ConflictDailyLimitExceeded, result.Type)
	})

	t.Run("overnight post-midnight share does not", func(t *testing.T) {
		// Same overnight length starting at 16:00: only 8h fall before
		// midnight, so the nominal day stays at the 16h ceiling exactly.
		existing := []shift.Shift{existingShift("shift-a", "2025-03-10", "06:00", "14:00")}
		result := v.ValidateCandidate(
			Candidate{EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "16:00", EndTime: "06:00"},
			existing,
			ValidateOptions{AllowOvernight: true},
		)
		require.True(t, result.Valid)
	})
}

func TestValidateCandidate_PreviousDayOvernightConflicts(t *testing.T) {
	v := NewOverlapValidator()
	prev := shift.Shift{
		ID:         "shift-night",
		EmployeeID: "emp-1",
		Date:       "2025-03-09",
		StartTime:  "22:00",
		EndTime:    "06:00",
		EndDate:    strPtr("2025-03-10"),
		Overnight:  true,
	}

	result := v.ValidateCandidate(
		Candidate{EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "05:00", EndTime: "13:00"},
		[]shift.Shift{prev},
		ValidateOptions{},
	)

	require.False(t, result.Valid)
	assert.Equal(t, shift.ConflictOverlap, result.Type)
	assert.Equal(t, "shift-night", result.ConflictShiftID)
}

func TestValidateCandidate_ExcludeShiftID(t *testing.T) {
	v := NewOverlapValidator()
	existing := []shift.Shift{existingShift("shift-a", "2025-03-10", "09:00", "17:00")}

	// Editing shift-a onto an overlapping interval must not conflict with
	// its own stored row.
	result := v.ValidateCandidate(
		Candidate{EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "10:00", EndTime: "18:00"},
		existing,
		ValidateOptions{ExcludeShiftID: "shift-a"},
	)

	require.True(t, result.Valid)
	assert.Equal(t, 8.0, result.TotalDailyHours)
}

func TestValidateCandidate_UnparsableStoredShiftIgnored(t *testing.T) {
	v := NewOverlapValidator()
	existing := []shift.Shift{existingShift("shift-bad", "2025-03-10", "garbage", "17:00")}

	result := v.ValidateCandidate(
		Candidate{EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "09:00", EndTime: "17:00"},
		existing,
		ValidateOptions{},
	)

	require.True(t, result.Valid)
}
