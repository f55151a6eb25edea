package payroll

import (
	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/earnings"
	"github.com/shopspring/decimal"
)

// DaysPerWeek is the fixed allocation window, Monday through Sunday.
const DaysPerWeek = 7

// DayInput is one day's aggregated hours feeding the allocator.
type DayInput struct {
	Date           string
	WorkedHours    float64
	ScheduledHours float64
}

// WeeklyAllocator splits a week's worked hours into regular and overtime
// buckets against a single cumulative weekly threshold. Overtime is a weekly
// concept: days must be processed strictly in chronological order with a
// running counter, never judged independently.
type WeeklyAllocator struct {
}

func NewWeeklyAllocator() *WeeklyAllocator {
	return &WeeklyAllocator{}
}

// AllocateWeek computes all seven daily allocations from scratch. It is
// deterministic for a given input, which is what lets earnings records be
// blindly overwritten on every recompute.
func (a *WeeklyAllocator) AllocateWeek(days [DaysPerWeek]DayInput, resolve WageResolverFunc, settings earnings.OvertimeSettings) [DaysPerWeek]earnings.DailyAllocation {
	var out [DaysPerWeek]earnings.DailyAllocation

	multiplier := decimal.NewFromFloat(1 + settings.OvertimePercent/100)
	runningRegularEligible := 0.0

	for i, day := range days {
		remaining := settings.ThresholdHours - runningRegularEligible
		if remaining < 0 {
			remaining = 0
		}

		regular := day.WorkedHours
		overtime := 0.0
		if day.WorkedHours > remaining {
			regular = remaining
			overtime = day.WorkedHours - regular
		}
		// Overtime hours never count toward threshold eligibility.
		runningRegularEligible += regular

		wage := resolve(day.Date)
		pay := decimal.NewFromFloat(regular).Mul(wage).
			Add(decimal.NewFromFloat(overtime).Mul(wage).Mul(multiplier)).
			Round(2)

		out[i] = earnings.DailyAllocation{
			Date:               day.Date,
			RegularHours:       regular,
			OvertimeHours:      overtime,
			DayEarnings:        pay,
			HourlyWageSnapshot: wage,
			OvertimeApplied:    overtime > 0,
			NoWorkRecorded:     day.WorkedHours == 0,
		}
	}

	return out
}
