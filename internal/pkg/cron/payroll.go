package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/earnings"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/timeutil"
)

// PayrollJobs sweeps recently-touched shifts and rebuilds their derived fields
// and weekly earnings. The event bus handles the common case immediately; this
// sweep is the safety net for dropped events and out-of-band writes.
type PayrollJobs struct {
	shiftRepo  shift.ShiftRepository
	shiftSvc   shift.ShiftService
	payrollSvc earnings.PayrollService

	mu        sync.Mutex
	lastSweep time.Time
}

func NewPayrollJobs(
	shiftRepo shift.ShiftRepository,
	shiftSvc shift.ShiftService,
	payrollSvc earnings.PayrollService,
) *PayrollJobs {
	return &PayrollJobs{
		shiftRepo:  shiftRepo,
		shiftSvc:   shiftSvc,
		payrollSvc: payrollSvc,
		// First sweep looks a full day back to catch anything written while
		// the process was down.
		lastSweep: time.Now().UTC().Add(-24 * time.Hour),
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("resync_derived_earnings", 15*time.Minute, j.ResyncRecentShifts)
}

func (j *PayrollJobs) ResyncRecentShifts(ctx context.Context) error {
	j.mu.Lock()
	since := j.lastSweep
	sweepStart := time.Now().UTC()
	j.mu.Unlock()

	shifts, err := j.shiftRepo.ListUpdatedSince(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to list recently updated shifts: %w", err)
	}

	if len(shifts) == 0 {
		j.markSwept(sweepStart)
		return nil
	}

	slog.Info("Cron: Resyncing recently updated shifts", "count", len(shifts))

	resynced := 0
	weeks := map[string]weekKey{}
	for _, sh := range shifts {
		changed, err := j.shiftSvc.ResyncShift(ctx, sh.ID, sh.CompanyID)
		if err != nil {
			slog.Error("Cron: Failed to resync shift", "shift_id", sh.ID, "error", err)
			continue
		}
		if changed {
			resynced++
		}

		for _, date := range shiftDates(sh) {
			weekStart, err := timeutil.WeekStart(date)
			if err != nil {
				continue
			}
			weeks[sh.EmployeeID+"|"+weekStart] = weekKey{
				employeeID: sh.EmployeeID,
				companyID:  sh.CompanyID,
				date:       weekStart,
			}
		}
	}

	for _, wk := range weeks {
		if _, err := j.payrollSvc.RecomputeWeekForCompany(ctx, wk.employeeID, wk.companyID, wk.date); err != nil {
			slog.Error("Cron: Failed to recompute weekly earnings",
				"employee_id", wk.employeeID, "week", wk.date, "error", err)
		}
	}

	slog.Info("Cron: Resync sweep completed", "resynced", resynced, "weeks", len(weeks))
	j.markSwept(sweepStart)
	return nil
}

func (j *PayrollJobs) markSwept(at time.Time) {
	j.mu.Lock()
	j.lastSweep = at
	j.mu.Unlock()
}

type weekKey struct {
	employeeID string
	companyID  string
	date       string
}

func shiftDates(sh shift.Shift) []string {
	dates := []string{sh.Date}
	if sh.EndDate != nil && *sh.EndDate != "" && *sh.EndDate != sh.Date {
		dates = append(dates, *sh.EndDate)
	}
	return dates
}
