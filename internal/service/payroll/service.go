package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/earnings"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/employee"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/wage"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/database"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/timeutil"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/repository/postgresql"
	shiftsvc "github.com/shiftwise-hq/timetrack-backend-go/internal/service/shift"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	db           *database.DB
	shiftRepo    shift.ShiftRepository
	employeeRepo employee.EmployeeRepository
	wageRepo     wage.WageHistoryRepository
	earningsRepo earnings.EarningsRepository
	settingsRepo earnings.SettingsRepository
	allocator    *WeeklyAllocator

	// Policy applied when a company never stored its own settings.
	defaultThreshold float64
	defaultPercent   float64
}

func NewPayrollService(
	db *database.DB,
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	wageRepo wage.WageHistoryRepository,
	earningsRepo earnings.EarningsRepository,
	settingsRepo earnings.SettingsRepository,
	defaultThreshold float64,
	defaultPercent float64,
) earnings.PayrollService {
	return &PayrollServiceImpl{
		db:               db,
		shiftRepo:        shiftRepo,
		employeeRepo:     employeeRepo,
		wageRepo:         wageRepo,
		earningsRepo:     earningsRepo,
		settingsRepo:     settingsRepo,
		allocator:        NewWeeklyAllocator(),
		defaultThreshold: defaultThreshold,
		defaultPercent:   defaultPercent,
	}
}

// Helper to get company_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

// RecomputeWeek implements earnings.PayrollService.
func (s *PayrollServiceImpl) RecomputeWeek(ctx context.Context, employeeID, date string) (earnings.WeeklyEarningsResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return earnings.WeeklyEarningsResponse{}, err
	}
	return s.recomputeWeek(ctx, employeeID, companyID, date)
}

// RecomputeWeekForCompany is the claims-free entry point for the reconciler
// and the resync job, which run outside any request context.
func (s *PayrollServiceImpl) RecomputeWeekForCompany(ctx context.Context, employeeID, companyID, date string) (earnings.WeeklyEarningsResponse, error) {
	return s.recomputeWeek(ctx, employeeID, companyID, date)
}

func (s *PayrollServiceImpl) recomputeWeek(ctx context.Context, employeeID, companyID, date string) (earnings.WeeklyEarningsResponse, error) {
	weekStart, err := timeutil.WeekStart(date)
	if err != nil {
		return earnings.WeeklyEarningsResponse{}, err
	}

	weekDates, err := weekDatesFrom(weekStart)
	if err != nil {
		return earnings.WeeklyEarningsResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return earnings.WeeklyEarningsResponse{}, err
	}

	days, err := s.aggregateWeek(ctx, employeeID, companyID, weekDates)
	if err != nil {
		return earnings.WeeklyEarningsResponse{}, err
	}

	history, err := s.wageRepo.ListForEmployee(ctx, employeeID, companyID)
	if err != nil {
		return earnings.WeeklyEarningsResponse{}, err
	}

	settings, err := s.settingsOrDefault(ctx, companyID)
	if err != nil {
		return earnings.WeeklyEarningsResponse{}, err
	}

	allocations := s.allocator.AllocateWeek(days, ResolverFor(history, emp.HourlyWage), settings)

	records := make([]earnings.DailyRecord, 0, DaysPerWeek)
	for i, alloc := range allocations {
		records = append(records, earnings.DailyRecord{
			EmployeeID:         employeeID,
			CompanyID:          companyID,
			Date:               alloc.Date,
			ScheduledHours:     days[i].ScheduledHours,
			WorkedHours:        days[i].WorkedHours,
			RegularHours:       alloc.RegularHours,
			OvertimeHours:      alloc.OvertimeHours,
			HourlyWageSnapshot: alloc.HourlyWageSnapshot,
			OvertimePercent:    settings.OvertimePercent,
			OvertimeThreshold:  settings.ThresholdHours,
			DayEarnings:        alloc.DayEarnings,
			OvertimeApplied:    alloc.OvertimeApplied,
			NoWorkRecorded:     alloc.NoWorkRecorded,
		})
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		for _, rec := range records {
			if err := s.earningsRepo.Upsert(txCtx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return earnings.WeeklyEarningsResponse{}, fmt.Errorf("failed to persist weekly earnings: %w", err)
	}

	return buildWeeklyResponse(employeeID, weekStart, records), nil
}

// GetWeeklyEarnings implements earnings.PayrollService.
func (s *PayrollServiceImpl) GetWeeklyEarnings(ctx context.Context, req earnings.WeeklyEarningsRequest) (earnings.WeeklyEarningsResponse, error) {
	if err := req.Validate(); err != nil {
		return earnings.WeeklyEarningsResponse{}, err
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return earnings.WeeklyEarningsResponse{}, err
	}

	weekStart, err := timeutil.WeekStart(req.Date)
	if err != nil {
		return earnings.WeeklyEarningsResponse{}, err
	}
	weekDates, err := weekDatesFrom(weekStart)
	if err != nil {
		return earnings.WeeklyEarningsResponse{}, err
	}

	records, err := s.earningsRepo.ListForEmployeeInRange(ctx, req.EmployeeID, weekStart, weekDates[DaysPerWeek-1], companyID)
	if err != nil {
		return earnings.WeeklyEarningsResponse{}, err
	}

	// A week never materialized yet reads as a full recompute.
	if len(records) == 0 {
		return s.recomputeWeek(ctx, req.EmployeeID, companyID, req.Date)
	}

	return buildWeeklyResponse(req.EmployeeID, weekStart, records), nil
}

// GetSettings implements earnings.PayrollService.
func (s *PayrollServiceImpl) GetSettings(ctx context.Context) (earnings.SettingsResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return earnings.SettingsResponse{}, err
	}

	settings, err := s.settingsOrDefault(ctx, companyID)
	if err != nil {
		return earnings.SettingsResponse{}, err
	}

	return mapSettingsToResponse(settings), nil
}

// UpdateSettings implements earnings.PayrollService.
func (s *PayrollServiceImpl) UpdateSettings(ctx context.Context, req earnings.UpdateSettingsRequest) (earnings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return earnings.SettingsResponse{}, err
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return earnings.SettingsResponse{}, err
	}

	settings, err := s.settingsOrDefault(ctx, companyID)
	if err != nil {
		return earnings.SettingsResponse{}, err
	}

	if req.ThresholdHours != nil {
		settings.ThresholdHours = *req.ThresholdHours
	}
	if req.OvertimePercent != nil {
		settings.OvertimePercent = *req.OvertimePercent
	}

	saved, err := s.settingsRepo.Save(ctx, settings)
	if err != nil {
		return earnings.SettingsResponse{}, err
	}

	return mapSettingsToResponse(saved), nil
}

func (s *PayrollServiceImpl) settingsOrDefault(ctx context.Context, companyID string) (earnings.OvertimeSettings, error) {
	settings, err := s.settingsRepo.Get(ctx, companyID)
	if err != nil {
		if !errors.Is(err, earnings.ErrSettingsNotFound) {
			return earnings.OvertimeSettings{}, err
		}
		settings = earnings.DefaultSettings(companyID)
		if s.defaultThreshold > 0 {
			settings.ThresholdHours = s.defaultThreshold
		}
		if s.defaultPercent >= 0 {
			settings.OvertimePercent = s.defaultPercent
		}
	}
	return settings, nil
}

// aggregateWeek collapses the week's shifts into per-day worked and scheduled
// hours. Overnight shifts with precise checks split their worked minutes at
// midnight; everything else attributes to the shift's nominal date. The fetch
// reaches one day before Monday so a Sunday-night overnight shift can spill
// its continuation into the week.
func (s *PayrollServiceImpl) aggregateWeek(ctx context.Context, employeeID, companyID string, weekDates [DaysPerWeek]string) ([DaysPerWeek]DayInput, error) {
	var days [DaysPerWeek]DayInput
	index := make(map[string]int, DaysPerWeek)
	for i, d := range weekDates {
		days[i] = DayInput{Date: d}
		index[d] = i
	}

	fetchStart, err := timeutil.PrevDate(weekDates[0])
	if err != nil {
		return days, err
	}

	shifts, err := s.shiftRepo.ListForEmployeeInRange(ctx, employeeID, fetchStart, weekDates[DaysPerWeek-1], companyID)
	if err != nil {
		return days, fmt.Errorf("failed to fetch shifts for week: %w", err)
	}

	for _, sh := range shifts {
		if i, ok := index[sh.Date]; ok {
			days[i].ScheduledHours += scheduledHours(sh)
		}

		frag := shiftsvc.SplitContinuation(sh)
		if frag != nil && frag.BaseWorkedMinutes != nil && frag.WorkedMinutes != nil {
			if i, ok := index[sh.Date]; ok {
				days[i].WorkedHours += timeutil.Round2(float64(*frag.BaseWorkedMinutes) / 60.0)
			}
			if i, ok := index[frag.Date]; ok {
				days[i].WorkedHours += timeutil.Round2(float64(*frag.WorkedMinutes) / 60.0)
			}
			continue
		}

		if sh.DerivedWorkedHours != nil {
			if i, ok := index[sh.Date]; ok {
				days[i].WorkedHours += *sh.DerivedWorkedHours
			}
		}
	}

	for i := range days {
		days[i].WorkedHours = timeutil.Round2(days[i].WorkedHours)
		days[i].ScheduledHours = timeutil.Round2(days[i].ScheduledHours)
	}

	return days, nil
}

// scheduledHours is the planned duration of a shift from its wall-clock
// bounds, rolling the end over midnight for overnight shifts.
func scheduledHours(sh shift.Shift) float64 {
	start, err := timeutil.Combine(sh.Date, sh.StartTime)
	if err != nil {
		return 0
	}
	end, err := timeutil.Combine(sh.Date, sh.EndTime)
	if err != nil {
		return 0
	}
	end = timeutil.AdjustOvernight(start, end, sh.Overnight)
	if !end.After(start) {
		return 0
	}
	return timeutil.HoursBetween(start, end)
}

func weekDatesFrom(weekStart string) ([DaysPerWeek]string, error) {
	var dates [DaysPerWeek]string
	dates[0] = weekStart
	for i := 1; i < DaysPerWeek; i++ {
		next, err := timeutil.NextDate(dates[i-1])
		if err != nil {
			return dates, err
		}
		dates[i] = next
	}
	return dates, nil
}

func buildWeeklyResponse(employeeID, weekStart string, records []earnings.DailyRecord) earnings.WeeklyEarningsResponse {
	resp := earnings.WeeklyEarningsResponse{
		EmployeeID:    employeeID,
		WeekStart:     weekStart,
		Days:          make([]earnings.DailyRecordResponse, 0, len(records)),
		TotalEarnings: decimal.Zero,
	}

	for _, rec := range records {
		resp.Days = append(resp.Days, earnings.DailyRecordResponse{
			EmployeeID:         rec.EmployeeID,
			Date:               rec.Date,
			ScheduledHours:     rec.ScheduledHours,
			WorkedHours:        rec.WorkedHours,
			RegularHours:       rec.RegularHours,
			OvertimeHours:      rec.OvertimeHours,
			HourlyWageSnapshot: rec.HourlyWageSnapshot,
			OvertimePercent:    rec.OvertimePercent,
			OvertimeThreshold:  rec.OvertimeThreshold,
			DayEarnings:        rec.DayEarnings,
			OvertimeApplied:    rec.OvertimeApplied,
			NoWorkRecorded:     rec.NoWorkRecorded,
		})
		resp.TotalRegular += rec.RegularHours
		resp.TotalOvertime += rec.OvertimeHours
		resp.TotalEarnings = resp.TotalEarnings.Add(rec.DayEarnings)
	}

	resp.TotalRegular = timeutil.Round2(resp.TotalRegular)
	resp.TotalOvertime = timeutil.Round2(resp.TotalOvertime)

	return resp
}

func mapSettingsToResponse(s earnings.OvertimeSettings) earnings.SettingsResponse {
	return earnings.SettingsResponse{
		CompanyID:       s.CompanyID,
		ThresholdHours:  s.ThresholdHours,
		OvertimePercent: s.OvertimePercent,
	}
}
