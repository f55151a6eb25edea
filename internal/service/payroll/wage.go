package payroll

import (
	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/wage"
	"github.com/shopspring/decimal"
)

// WageResolverFunc resolves the hourly rate applicable on a given date.
type WageResolverFunc func(date string) decimal.Decimal

// ResolveWageForDate returns the rate of the last history entry whose
// EffectiveFrom is on or before date, or fallback when none qualifies.
// History must be ordered by EffectiveFrom ascending; ISO dates compare
// correctly as plain strings.
func ResolveWageForDate(history []wage.HistoryEntry, date string, fallback decimal.Decimal) decimal.Decimal {
	rate := fallback
	for _, entry := range history {
		if entry.EffectiveFrom > date {
			break
		}
		rate = entry.Rate
	}
	return rate
}

// ResolverFor binds a history and fallback into a per-date resolver for the
// weekly allocator.
func ResolverFor(history []wage.HistoryEntry, fallback decimal.Decimal) WageResolverFunc {
	return func(date string) decimal.Decimal {
		return ResolveWageForDate(history, date, fallback)
	}
}
