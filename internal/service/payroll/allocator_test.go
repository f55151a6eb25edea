package payroll

import (
	"testing"

	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/earnings"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/wage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatRate(rate float64) WageResolverFunc {
	d := decimal.NewFromFloat(rate)
	return func(string) decimal.Decimal { return d }
}

func testWeek(worked [DaysPerWeek]float64) [DaysPerWeek]DayInput {
	dates := [DaysPerWeek]string{
		"2025-03-10", "2025-03-11", "2025-03-12", "2025-03-13",
		"2025-03-14", "2025-03-15", "2025-03-16",
	}
	var days [DaysPerWeek]DayInput
	for i := range days {
		days[i] = DayInput{Date: dates[i], WorkedHours: worked[i]}
	}
	return days
}

func defaultPolicy() earnings.OvertimeSettings {
	return earnings.OvertimeSettings{
		CompanyID:       "co-1",
		ThresholdHours:  40,
		OvertimePercent: 50,
	}
}

func TestAllocateWeek_NoOvertime(t *testing.T) {
	a := NewWeeklyAllocator()
	days := testWeek([DaysPerWeek]float64{8, 8, 8, 8, 8, 0, 0})

	out := a.AllocateWeek(days, flatRate(10), defaultPolicy())

	for i := 0; i < 5; i++ {
		assert.Equal(t, 8.0, out[i].RegularHours)
		assert.Equal(t, 0.0, out[i].OvertimeHours)
		assert.False(t, out[i].OvertimeApplied)
		assert.True(t, decimal.NewFromInt(80).Equal(out[i].DayEarnings), "day %d earnings %s", i, out[i].DayEarnings)
	}
	assert.True(t, out[5].NoWorkRecorded)
	assert.True(t, out[6].NoWorkRecorded)
}

func TestAllocateWeek_ThresholdCrossedMidDay(t *testing.T) {
	a := NewWeeklyAllocator()
	// 9h every weekday: the 40h threshold is crossed 4 hours into Friday.
	days := testWeek([DaysPerWeek]float64{9, 9, 9, 9, 9, 0, 0})

	out := a.AllocateWeek(days, flatRate(10), defaultPolicy())

	for i := 0; i < 4; i++ {
		assert.Equal(t, 9.0, out[i].RegularHours, "day %d", i)
		assert.Equal(t, 0.0, out[i].OvertimeHours, "day %d", i)
	}

	friday := out[4]
	assert.Equal(t, 4.0, friday.RegularHours)
	assert.Equal(t, 5.0, friday.OvertimeHours)
	assert.True(t, friday.OvertimeApplied)
	// 4*10 + 5*10*1.5
	assert.True(t, decimal.NewFromInt(115).Equal(friday.DayEarnings), "friday earnings %s", friday.DayEarnings)
}

func TestAllocateWeek_HoursConserved(t *testing.T) {
	a := NewWeeklyAllocator()
	days := testWeek([DaysPerWeek]float64{10, 12, 8, 9.5, 11, 6, 4})

	out := a.AllocateWeek(days, flatRate(18), defaultPolicy())

	var worked, allocated float64
	for i := range days {
		worked += days[i].WorkedHours
		allocated += out[i].RegularHours + out[i].OvertimeHours
	}
	assert.InDelta(t, worked, allocated, 1e-9)
}

func TestAllocateWeek_OrderMatters(t *testing.T) {
	a := NewWeeklyAllocator()
	// All 42 hours land on Monday: 40 regular, 2 overtime, and the rest of
	// the week earns nothing.
	days := testWeek([DaysPerWeek]float64{42, 0, 0, 0, 0, 0, 0})

	out := a.AllocateWeek(days, flatRate(10), defaultPolicy())

	assert.Equal(t, 40.0, out[0].RegularHours)
	assert.Equal(t, 2.0, out[0].OvertimeHours)
	for i := 1; i < DaysPerWeek; i++ {
		assert.Equal(t, 0.0, out[i].RegularHours)
		assert.Equal(t, 0.0, out[i].OvertimeHours)
	}
}

func TestAllocateWeek_ZeroPercentOvertime(t *testing.T) {
	a := NewWeeklyAllocator()
	days := testWeek([DaysPerWeek]float64{45, 0, 0, 0, 0, 0, 0})
	policy := defaultPolicy()
	policy.OvertimePercent = 0

	out := a.AllocateWeek(days, flatRate(10), policy)

	// Overtime hours are still tracked, just not paid at a premium.
	assert.Equal(t, 5.0, out[0].OvertimeHours)
	assert.True(t, decimal.NewFromInt(450).Equal(out[0].DayEarnings), "earnings %s", out[0].DayEarnings)
}

func TestAllocateWeek_MidWeekWageChange(t *testing.T) {
	a := NewWeeklyAllocator()
	days := testWeek([DaysPerWeek]float64{8, 8, 0, 0, 0, 0, 0})

	history := []wage.HistoryEntry{
		{Rate: decimal.NewFromInt(10), EffectiveFrom: "2025-01-01"},
		{Rate: decimal.NewFromInt(12), EffectiveFrom: "2025-03-11"},
	}
	resolve := ResolverFor(history, decimal.NewFromInt(10))

	out := a.AllocateWeek(days, resolve, defaultPolicy())

	assert.True(t, decimal.NewFromInt(80).Equal(out[0].DayEarnings), "monday %s", out[0].DayEarnings)
	assert.True(t, decimal.NewFromInt(96).Equal(out[1].DayEarnings), "tuesday %s", out[1].DayEarnings)
	assert.True(t, decimal.NewFromInt(10).Equal(out[0].HourlyWageSnapshot))
	assert.True(t, decimal.NewFromInt(12).Equal(out[1].HourlyWageSnapshot))
}

func TestAllocateWeek_RoundsEarningsToCents(t *testing.T) {
	a := NewWeeklyAllocator()
	days := testWeek([DaysPerWeek]float64{7.33, 0, 0, 0, 0, 0, 0})

	out := a.AllocateWeek(days, flatRate(15.55), defaultPolicy())

	// 7.33 * 15.55 = 113.9815, rounded half-up to 113.98
	require.True(t, decimal.NewFromFloat(113.98).Equal(out[0].DayEarnings), "earnings %s", out[0].DayEarnings)
}
