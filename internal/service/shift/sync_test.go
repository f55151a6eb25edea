package shift

import (
	"testing"
	"time"

	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instant(value string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSyncDerivedFields_PreciseInstants(t *testing.T) {
	s := shift.Shift{
		Date:          "2025-03-10",
		CheckIn:       shift.PreciseCheck(instant("2025-03-10 09:02")),
		CheckOut:      shift.PreciseCheck(instant("2025-03-10 17:17")),
		DerivedStatus: shift.StatusScheduled,
	}

	patch := SyncDerivedFields(s)
	require.NotNil(t, patch)
	require.NotNil(t, patch.DerivedWorkedHours)
	assert.Equal(t, 8.25, *patch.DerivedWorkedHours)
	require.NotNil(t, patch.DerivedStatus)
	assert.Equal(t, shift.StatusCompleted, *patch.DerivedStatus)
}

func TestSyncDerivedFields_OutBeforeIn(t *testing.T) {
	s := shift.Shift{
		Date:          "2025-03-10",
		CheckIn:       shift.PreciseCheck(instant("2025-03-10 17:00")),
		CheckOut:      shift.PreciseCheck(instant("2025-03-10 09:00")),
		DerivedStatus: shift.StatusScheduled,
	}

	patch := SyncDerivedFields(s)
	require.NotNil(t, patch)
	// Hours are not computable and must not be clamped to zero, but both
	// observations still complete the shift.
	assert.Nil(t, patch.DerivedWorkedHours)
	require.NotNil(t, patch.DerivedStatus)
	assert.Equal(t, shift.StatusCompleted, *patch.DerivedStatus)
}

func TestSyncDerivedFields_WallClockPair(t *testing.T) {
	s := shift.Shift{
		Date:          "2025-03-10",
		CheckIn:       shift.WallClockCheck("09:00"),
		CheckOut:      shift.WallClockCheck("17:30"),
		DerivedStatus: shift.StatusScheduled,
	}

	patch := SyncDerivedFields(s)
	require.NotNil(t, patch)
	require.NotNil(t, patch.DerivedWorkedHours)
	assert.Equal(t, 8.5, *patch.DerivedWorkedHours)
}

func TestSyncDerivedFields_WallClockOvernight(t *testing.T) {
	s := shift.Shift{
		Date:          "2025-03-10",
		Overnight:     true,
		CheckIn:       shift.WallClockCheck("22:00"),
		CheckOut:      shift.WallClockCheck("06:00"),
		DerivedStatus: shift.StatusScheduled,
	}

	patch := SyncDerivedFields(s)
	require.NotNil(t, patch)
	require.NotNil(t, patch.DerivedWorkedHours)
	assert.Equal(t, 8.0, *patch.DerivedWorkedHours)
}

func TestSyncDerivedFields_WallClockBackwardsWithoutOvernight(t *testing.T) {
	s := shift.Shift{
		Date:          "2025-03-10",
		CheckIn:       shift.WallClockCheck("22:00"),
		CheckOut:      shift.WallClockCheck("06:00"),
		DerivedStatus: shift.StatusScheduled,
	}

	patch := SyncDerivedFields(s)
	require.NotNil(t, patch)
	// Without the overnight flag a backwards pair is not computable.
	assert.Nil(t, patch.DerivedWorkedHours)
	require.NotNil(t, patch.DerivedStatus)
	assert.Equal(t, shift.StatusCompleted, *patch.DerivedStatus)
}

func TestSyncDerivedFields_StatusLadder(t *testing.T) {
	t.Run("no checks stays scheduled", func(t *testing.T) {
		s := shift.Shift{Date: "2025-03-10", DerivedStatus: shift.StatusScheduled}
		assert.Nil(t, SyncDerivedFields(s))
	})

	t.Run("check-in only is in progress", func(t *testing.T) {
		s := shift.Shift{
			Date:          "2025-03-10",
			CheckIn:       shift.WallClockCheck("09:00"),
			DerivedStatus: shift.StatusScheduled,
		}
		patch := SyncDerivedFields(s)
		require.NotNil(t, patch)
		require.NotNil(t, patch.DerivedStatus)
		assert.Equal(t, shift.StatusInProgress, *patch.DerivedStatus)
		assert.Nil(t, patch.DerivedWorkedHours)
	})
}

func TestSyncDerivedFields_Idempotent(t *testing.T) {
	hours := 8.25
	s := shift.Shift{
		Date:               "2025-03-10",
		CheckIn:            shift.PreciseCheck(instant("2025-03-10 09:02")),
		CheckOut:           shift.PreciseCheck(instant("2025-03-10 17:17")),
		DerivedWorkedHours: &hours,
		DerivedStatus:      shift.StatusCompleted,
	}

	// Already canonical: re-running the sync produces no patch.
	assert.Nil(t, SyncDerivedFields(s))
}

func TestSyncDerivedFields_MixedKindsNoHours(t *testing.T) {
	s := shift.Shift{
		Date:          "2025-03-10",
		CheckIn:       shift.PreciseCheck(instant("2025-03-10 09:00")),
		CheckOut:      shift.WallClockCheck("17:00"),
		DerivedStatus: shift.StatusScheduled,
	}

	patch := SyncDerivedFields(s)
	require.NotNil(t, patch)
	assert.Nil(t, patch.DerivedWorkedHours)
	require.NotNil(t, patch.DerivedStatus)
	assert.Equal(t, shift.StatusCompleted, *patch.DerivedStatus)
}
