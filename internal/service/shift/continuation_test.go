package shift

import (
	"testing"

	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitContinuation_SingleDayShift(t *testing.T) {
	s := existingShift("shift-a", "2025-03-10", "09:00", "17:00")
	assert.Nil(t, SplitContinuation(s))
}

func TestSplitContinuation_ExplicitEndDate(t *testing.T) {
	s := shift.Shift{
		ID:          "shift-night",
		EmployeeID:  "emp-1",
		Date:        "2025-03-10",
		StartTime:   "22:00",
		EndTime:     "06:00",
		EndDate:     strPtr("2025-03-11"),
		Overnight:   true,
		Description: "night watch",
		ShiftType:   "night",
	}

	frag := SplitContinuation(s)
	require.NotNil(t, frag)
	assert.Equal(t, "shift-night", frag.BaseShiftID)
	assert.Equal(t, "2025-03-11", frag.Date)
	assert.Equal(t, "00:00", frag.StartTime)
	assert.Equal(t, "06:00", frag.EndTime)
	assert.True(t, frag.IsContinuation)
	assert.Equal(t, "night watch", frag.Description)
}

func TestSplitContinuation_ImplicitBackwardsPair(t *testing.T) {
	// Raw data without the flag or end date still splits, keyed off the
	// end-before-start wall clocks.
	s := existingShift("shift-b", "2025-03-10", "23:00", "03:00")

	frag := SplitContinuation(s)
	require.NotNil(t, frag)
	assert.Equal(t, "2025-03-11", frag.Date)
}

func TestSplitContinuation_MonthBoundary(t *testing.T) {
	s := shift.Shift{
		ID:        "shift-eom",
		Date:      "2025-03-31",
		StartTime: "22:00",
		EndTime:   "06:00",
		Overnight: true,
	}

	frag := SplitContinuation(s)
	require.NotNil(t, frag)
	assert.Equal(t, "2025-04-01", frag.Date)
}

func TestSplitContinuation_PreciseWorkedMinutesSplit(t *testing.T) {
	s := shift.Shift{
		ID:        "shift-night",
		Date:      "2025-03-10",
		StartTime: "21:00",
		EndTime:   "05:00",
		Overnight: true,
		CheckIn:   shift.PreciseCheck(instant("2025-03-10 21:00")),
		CheckOut:  shift.PreciseCheck(instant("2025-03-11 05:00")),
	}

	frag := SplitContinuation(s)
	require.NotNil(t, frag)
	require.NotNil(t, frag.BaseWorkedMinutes)
	require.NotNil(t, frag.WorkedMinutes)
	assert.Equal(t, 180, *frag.BaseWorkedMinutes)
	assert.Equal(t, 300, *frag.WorkedMinutes)
}

func TestSplitContinuation_CheckedOutBeforeMidnight(t *testing.T) {
	// Overnight was scheduled but the employee left early: all worked
	// minutes land on the base day, the fragment carries zero.
	s := shift.Shift{
		ID:        "shift-night",
		Date:      "2025-03-10",
		StartTime: "21:00",
		EndTime:   "05:00",
		Overnight: true,
		CheckIn:   shift.PreciseCheck(instant("2025-03-10 21:00")),
		CheckOut:  shift.PreciseCheck(instant("2025-03-10 23:30")),
	}

	frag := SplitContinuation(s)
	require.NotNil(t, frag)
	require.NotNil(t, frag.BaseWorkedMinutes)
	require.NotNil(t, frag.WorkedMinutes)
	assert.Equal(t, 150, *frag.BaseWorkedMinutes)
	assert.Equal(t, 0, *frag.WorkedMinutes)
}

func TestSplitContinuation_WallClockChecksNoMinuteSplit(t *testing.T) {
	s := shift.Shift{
		ID:        "shift-night",
		Date:      "2025-03-10",
		StartTime: "22:00",
		EndTime:   "06:00",
		Overnight: true,
		CheckIn:   shift.WallClockCheck("22:00"),
		CheckOut:  shift.WallClockCheck("06:00"),
	}

	frag := SplitContinuation(s)
	require.NotNil(t, frag)
	// Wall clocks carry no dates, so the minute split is not attempted.
	assert.Nil(t, frag.BaseWorkedMinutes)
	assert.Nil(t, frag.WorkedMinutes)
}
