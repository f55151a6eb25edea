package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/earnings"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/database"
)

type earningsRepository struct {
	db *database.DB
}

func NewEarningsRepository(db *database.DB) earnings.EarningsRepository {
	return &earningsRepository{db: db}
}

// Upsert implements earnings.EarningsRepository. Records are fully derived,
// so a conflicting row is simply overwritten.
func (r *earningsRepository) Upsert(ctx context.Context, rec earnings.DailyRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_earnings (
			employee_id, company_id, date,
			scheduled_hours, worked_hours, regular_hours, overtime_hours,
			hourly_wage_snapshot, overtime_percent, overtime_threshold,
			day_earnings, overtime_applied, no_work_recorded, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW()
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			company_id = EXCLUDED.company_id,
			scheduled_hours = EXCLUDED.scheduled_hours,
			worked_hours = EXCLUDED.worked_hours,
			regular_hours = EXCLUDED.regular_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			hourly_wage_snapshot = EXCLUDED.hourly_wage_snapshot,
			overtime_percent = EXCLUDED.overtime_percent,
			overtime_threshold = EXCLUDED.overtime_threshold,
			day_earnings = EXCLUDED.day_earnings,
			overtime_applied = EXCLUDED.overtime_applied,
			no_work_recorded = EXCLUDED.no_work_recorded,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query,
		rec.EmployeeID, rec.CompanyID, rec.Date,
		rec.ScheduledHours, rec.WorkedHours, rec.RegularHours, rec.OvertimeHours,
		rec.HourlyWageSnapshot, rec.OvertimePercent, rec.OvertimeThreshold,
		rec.DayEarnings, rec.OvertimeApplied, rec.NoWorkRecorded,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily earnings: %w", err)
	}

	return nil
}

// ListForEmployeeInRange implements earnings.EarningsRepository.
func (r *earningsRepository) ListForEmployeeInRange(ctx context.Context, employeeID, startDate, endDate, companyID string) ([]earnings.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, company_id, date,
			   scheduled_hours, worked_hours, regular_hours, overtime_hours,
			   hourly_wage_snapshot, overtime_percent, overtime_threshold,
			   day_earnings, overtime_applied, no_work_recorded, updated_at
		FROM daily_earnings
		WHERE employee_id = $1
		  AND company_id = $2
		  AND date >= $3
		  AND date <= $4
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily earnings: %w", err)
	}
	defer rows.Close()

	var records []earnings.DailyRecord
	for rows.Next() {
		var rec earnings.DailyRecord
		if err := rows.Scan(
			&rec.EmployeeID, &rec.CompanyID, &rec.Date,
			&rec.ScheduledHours, &rec.WorkedHours, &rec.RegularHours, &rec.OvertimeHours,
			&rec.HourlyWageSnapshot, &rec.OvertimePercent, &rec.OvertimeThreshold,
			&rec.DayEarnings, &rec.OvertimeApplied, &rec.NoWorkRecorded, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily earnings record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily earnings: %w", err)
	}

	return records, nil
}

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) earnings.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get implements earnings.SettingsRepository.
func (r *settingsRepository) Get(ctx context.Context, companyID string) (earnings.OvertimeSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company_id, threshold_hours, overtime_percent, updated_at
		FROM overtime_settings
		WHERE company_id = $1
	`

	var s earnings.OvertimeSettings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.CompanyID, &s.ThresholdHours, &s.OvertimePercent, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return earnings.OvertimeSettings{}, earnings.ErrSettingsNotFound
		}
		return earnings.OvertimeSettings{}, fmt.Errorf("failed to get overtime settings: %w", err)
	}

	return s, nil
}

// Save implements earnings.SettingsRepository.
func (r *settingsRepository) Save(ctx context.Context, s earnings.OvertimeSettings) (earnings.OvertimeSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_settings (company_id, threshold_hours, overtime_percent, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (company_id) DO UPDATE SET
			threshold_hours = EXCLUDED.threshold_hours,
			overtime_percent = EXCLUDED.overtime_percent,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query, s.CompanyID, s.ThresholdHours, s.OvertimePercent).Scan(&s.UpdatedAt)
	if err != nil {
		return earnings.OvertimeSettings{}, fmt.Errorf("failed to save overtime settings: %w", err)
	}

	return s, nil
}
