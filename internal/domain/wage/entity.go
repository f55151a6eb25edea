package wage

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryEntry is one effective-dated hourly rate change for an employee.
// Entries are stored and returned ordered by EffectiveFrom ascending; a
// baseline entry dated "0001-01-01" represents the rate before any recorded
// change.
type HistoryEntry struct {
	ID            string
	EmployeeID    string
	CompanyID     string
	Rate          decimal.Decimal
	EffectiveFrom string // "2006-01-02"
	CreatedAt     time.Time
}
