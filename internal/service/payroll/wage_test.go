package payroll

import (
	"testing"

	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/wage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testHistory() []wage.HistoryEntry {
	return []wage.HistoryEntry{
		{Rate: decimal.NewFromInt(15), EffectiveFrom: "2024-01-01"},
		{Rate: decimal.NewFromInt(17), EffectiveFrom: "2024-07-01"},
		{Rate: decimal.NewFromInt(20), EffectiveFrom: "2025-03-15"},
	}
}

func TestResolveWageForDate(t *testing.T) {
	fallback := decimal.NewFromInt(10)

	tests := []struct {
		name string
		date string
		want int64
	}{
		{"before first entry falls back", "2023-12-31", 10},
		{"on first effective date", "2024-01-01", 15},
		{"between entries", "2024-06-30", 15},
		{"on later effective date", "2024-07-01", 17},
		{"day before a raise", "2025-03-14", 17},
		{"on the raise date", "2025-03-15", 20},
		{"after the last entry", "2026-01-01", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveWageForDate(testHistory(), tt.date, fallback)
			assert.True(t, decimal.NewFromInt(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestResolveWageForDate_EmptyHistory(t *testing.T) {
	fallback := decimal.NewFromFloat(12.5)
	got := ResolveWageForDate(nil, "2025-03-10", fallback)
	assert.True(t, fallback.Equal(got))
}

func TestResolverFor(t *testing.T) {
	resolve := ResolverFor(testHistory(), decimal.NewFromInt(10))

	assert.True(t, decimal.NewFromInt(17).Equal(resolve("2025-03-14")))
	assert.True(t, decimal.NewFromInt(20).Equal(resolve("2025-03-15")))
}
