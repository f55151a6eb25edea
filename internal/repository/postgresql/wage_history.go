package postgresql

import (
	"context"
	"fmt"

	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/wage"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/database"
)

type wageHistoryRepository struct {
	db *database.DB
}

func NewWageHistoryRepository(db *database.DB) wage.WageHistoryRepository {
	return &wageHistoryRepository{db: db}
}

// ListForEmployee implements wage.WageHistoryRepository. The resolver depends
// on ascending effective_from order; the ORDER BY here is the contract.
func (r *wageHistoryRepository) ListForEmployee(ctx context.Context, employeeID, companyID string) ([]wage.HistoryEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, rate, effective_from, created_at
		FROM wage_history
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY effective_from ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wage history: %w", err)
	}
	defer rows.Close()

	var entries []wage.HistoryEntry
	for rows.Next() {
		var entry wage.HistoryEntry
		if err := rows.Scan(
			&entry.ID, &entry.EmployeeID, &entry.CompanyID,
			&entry.Rate, &entry.EffectiveFrom, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan wage history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wage history: %w", err)
	}

	return entries, nil
}

// Create implements wage.WageHistoryRepository.
func (r *wageHistoryRepository) Create(ctx context.Context, entry wage.HistoryEntry) (wage.HistoryEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO wage_history (id, employee_id, company_id, rate, effective_from)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID, entry.EmployeeID, entry.CompanyID, entry.Rate, entry.EffectiveFrom,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return wage.HistoryEntry{}, fmt.Errorf("failed to create wage history entry: %w", err)
	}

	return entry, nil
}
