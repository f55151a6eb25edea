package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `
	s.id, s.employee_id, s.company_id, s.date, s.start_time, s.end_time,
	s.end_date, s.overnight, s.description, s.shift_type,
	s.check_in_at, s.check_in_clock, s.check_out_at, s.check_out_clock,
	s.derived_worked_hours, s.derived_status, s.created_at, s.updated_at,
	e.full_name AS employee_name`

// scanShift maps the nullable check columns back into the CheckEvent union.
func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	var endDate, checkInClock, checkOutClock *string
	var checkInAt, checkOutAt *time.Time
	var status string

	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.CompanyID, &s.Date, &s.StartTime, &s.EndTime,
		&endDate, &s.Overnight, &s.Description, &s.ShiftType,
		&checkInAt, &checkInClock, &checkOutAt, &checkOutClock,
		&s.DerivedWorkedHours, &status, &s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeName,
	)
	if err != nil {
		return shift.Shift{}, err
	}

	s.EndDate = endDate
	s.DerivedStatus = shift.Status(status)
	s.CheckIn = buildCheckEvent(checkInAt, checkInClock)
	s.CheckOut = buildCheckEvent(checkOutAt, checkOutClock)

	return s, nil
}

func buildCheckEvent(at *time.Time, clock *string) shift.CheckEvent {
	switch {
	case at != nil:
		return shift.PreciseCheck(at.UTC())
	case clock != nil && *clock != "":
		return shift.WallClockCheck(*clock)
	default:
		return shift.AbsentCheck()
	}
}

func checkEventColumns(e shift.CheckEvent) (*time.Time, *string) {
	switch e.Kind {
	case shift.CheckPrecise:
		at := e.At
		return &at, nil
	case shift.CheckWallClock:
		clock := e.Clock
		return nil, &clock
	default:
		return nil, nil
	}
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	checkInAt, checkInClock := checkEventColumns(s.CheckIn)
	checkOutAt, checkOutClock := checkEventColumns(s.CheckOut)

	query := `
		INSERT INTO shifts (
			id, employee_id, company_id, date, start_time, end_time,
			end_date, overnight, description, shift_type,
			check_in_at, check_in_clock, check_out_at, check_out_clock,
			derived_worked_hours, derived_status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID,
		s.EmployeeID,
		s.CompanyID,
		s.Date,
		s.StartTime,
		s.EndTime,
		s.EndDate,
		s.Overnight,
		s.Description,
		s.ShiftType,
		checkInAt,
		checkInClock,
		checkOutAt,
		checkOutClock,
		s.DerivedWorkedHours,
		string(s.DerivedStatus),
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return s, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string, companyID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM shifts s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1 AND s.company_id = $2
	`, shiftColumns)

	s, err := scanShift(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	return s, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, s shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	checkInAt, checkInClock := checkEventColumns(s.CheckIn)
	checkOutAt, checkOutClock := checkEventColumns(s.CheckOut)

	query := `
		UPDATE shifts SET
			date = $1, start_time = $2, end_time = $3, end_date = $4,
			overnight = $5, description = $6, shift_type = $7,
			check_in_at = $8, check_in_clock = $9,
			check_out_at = $10, check_out_clock = $11,
			derived_worked_hours = $12, derived_status = $13,
			updated_at = NOW()
		WHERE id = $14 AND company_id = $15
	`

	tag, err := q.Exec(ctx, query,
		s.Date, s.StartTime, s.EndTime, s.EndDate,
		s.Overnight, s.Description, s.ShiftType,
		checkInAt, checkInClock,
		checkOutAt, checkOutClock,
		s.DerivedWorkedHours, string(s.DerivedStatus),
		s.ID, s.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// ApplyPatch implements shift.ShiftRepository. Only the fields present in the
// patch touch their columns.
func (r *shiftRepository) ApplyPatch(ctx context.Context, shiftID string, patch shift.Patch, companyID string) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{}
	args := []interface{}{}
	argIdx := 1

	if patch.DerivedWorkedHours != nil {
		sets = append(sets, fmt.Sprintf("derived_worked_hours = $%d", argIdx))
		args = append(args, *patch.DerivedWorkedHours)
		argIdx++
	}
	if patch.DerivedStatus != nil {
		sets = append(sets, fmt.Sprintf("derived_status = $%d", argIdx))
		args = append(args, string(*patch.DerivedStatus))
		argIdx++
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")
	query := fmt.Sprintf(
		"UPDATE shifts SET %s WHERE id = $%d AND company_id = $%d",
		strings.Join(sets, ", "), argIdx, argIdx+1,
	)
	args = append(args, shiftID, companyID)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to patch shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// ListForEmployeeInRange implements shift.ShiftRepository.
func (r *shiftRepository) ListForEmployeeInRange(ctx context.Context, employeeID, startDate, endDate, companyID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM shifts s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE s.employee_id = $1
		  AND s.company_id = $2
		  AND s.date >= $3
		  AND s.date <= $4
		ORDER BY s.date, s.start_time
	`, shiftColumns)

	rows, err := q.Query(ctx, query, employeeID, companyID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts in range: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, nil
}

// ListForEmployeeOnDate implements shift.ShiftRepository.
func (r *shiftRepository) ListForEmployeeOnDate(ctx context.Context, employeeID, date, companyID string) ([]shift.Shift, error) {
	return r.ListForEmployeeInRange(ctx, employeeID, date, date, companyID)
}

// ListUpdatedSince implements shift.ShiftRepository.
func (r *shiftRepository) ListUpdatedSince(ctx context.Context, since time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM shifts s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE s.updated_at > $1
		ORDER BY s.updated_at
	`, shiftColumns)

	rows, err := q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list recently updated shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}
