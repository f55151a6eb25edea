package shift

import (
	"time"

	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/timeutil"
)

// SplitContinuation produces the next-day fragment of a midnight-crossing
// shift for day-grouped totals and displays. It never mutates its input and
// returns nil for shifts contained in a single calendar day.
//
// Crossing is detected from any of the three signals the data may carry: an
// explicit end date, the overnight flag, or an implicit end-before-start
// wall-clock pair that was never normalized.
func SplitContinuation(s shift.Shift) *shift.ContinuationFragment {
	if !crossesMidnight(s) {
		return nil
	}

	nextDate := ""
	if s.EndDate != nil && *s.EndDate != "" {
		nextDate = *s.EndDate
	} else {
		var err error
		nextDate, err = timeutil.NextDate(s.Date)
		if err != nil {
			return nil
		}
	}

	frag := &shift.ContinuationFragment{
		BaseShiftID:    s.ID,
		EmployeeID:     s.EmployeeID,
		Date:           nextDate,
		StartTime:      "00:00",
		EndTime:        s.EndTime,
		IsContinuation: true,
		Description:    s.Description,
		ShiftType:      s.ShiftType,
	}

	// With precise check instants the worked minutes are split at midnight:
	// the base keeps the pre-midnight share, the fragment carries the rest.
	if s.CheckIn.Kind == shift.CheckPrecise && s.CheckOut.Kind == shift.CheckPrecise {
		if pre, post, ok := splitWorkedMinutes(s.CheckIn.At, s.CheckOut.At, s.Date); ok {
			frag.WorkedMinutes = &post
			frag.BaseWorkedMinutes = &pre
		}
	}

	return frag
}

func crossesMidnight(s shift.Shift) bool {
	if s.EndDate != nil && *s.EndDate != "" && *s.EndDate != s.Date {
		return true
	}
	if s.Overnight {
		return true
	}

	startMin, err := timeutil.ParseClock(s.StartTime)
	if err != nil {
		return false
	}
	endMin, err := timeutil.ParseClock(s.EndTime)
	if err != nil {
		return false
	}
	return timeutil.CrossesMidnight(startMin, endMin)
}

// splitWorkedMinutes clamps a checked interval at the midnight following the
// nominal date and returns the (pre, post) minute shares.
func splitWorkedMinutes(checkIn, checkOut time.Time, date string) (int, int, bool) {
	if !checkOut.After(checkIn) {
		return 0, 0, false
	}

	day, err := time.Parse(timeutil.DateLayout, date)
	if err != nil {
		return 0, 0, false
	}
	midnight := day.Add(24 * time.Hour)

	total := int(checkOut.Sub(checkIn).Minutes())
	if !checkOut.After(midnight) {
		return total, 0, true
	}
	if !checkIn.Before(midnight) {
		return 0, total, true
	}

	pre := int(midnight.Sub(checkIn).Minutes())
	return pre, total - pre, true
}
