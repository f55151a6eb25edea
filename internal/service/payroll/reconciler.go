package payroll

import (
	"context"
	"log/slog"
	"time"

	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/earnings"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/events"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/timeutil"
)

// Reconciler listens for shift mutations and keeps derived state current: it
// re-syncs the shift's own derived fields, then rebuilds the earnings of every
// week the shift touches. An overnight shift ending in the next ISO week
// triggers two recomputes.
type Reconciler struct {
	bus     *events.Bus
	shifts  shift.ShiftService
	payroll earnings.PayrollService
	logger  *slog.Logger
	timeout time.Duration
}

func NewReconciler(bus *events.Bus, shifts shift.ShiftService, payroll earnings.PayrollService, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		bus:     bus,
		shifts:  shifts,
		payroll: payroll,
		logger:  logger,
		timeout: 30 * time.Second,
	}
}

// Run consumes events until ctx is cancelled. Call it in its own goroutine.
func (r *Reconciler) Run(ctx context.Context) {
	ch, cleanup := r.bus.Subscribe()
	defer cleanup()

	r.logger.Info("earnings reconciler started")

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("earnings reconciler stopped")
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			r.handle(ctx, event)
		}
	}
}

func (r *Reconciler) handle(ctx context.Context, event events.ShiftChanged) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// The shift may have been deleted; resync failure on a missing row is
	// expected and the week recompute still has to run.
	if _, err := r.shifts.ResyncShift(ctx, event.ShiftID, event.CompanyID); err != nil {
		r.logger.Warn("shift resync skipped",
			slog.String("shift_id", event.ShiftID),
			slog.String("error", err.Error()),
		)
	}

	weeks := affectedWeeks(event)
	for _, weekDate := range weeks {
		if _, err := r.payroll.RecomputeWeekForCompany(ctx, event.EmployeeID, event.CompanyID, weekDate); err != nil {
			r.logger.Error("weekly earnings recompute failed",
				slog.String("employee_id", event.EmployeeID),
				slog.String("date", weekDate),
				slog.String("error", err.Error()),
			)
		}
	}
}

// affectedWeeks returns one representative date per ISO week the shift spans.
func affectedWeeks(event events.ShiftChanged) []string {
	weeks := []string{event.Date}

	if event.EndDate == "" || event.EndDate == event.Date {
		return weeks
	}

	startWeek, err := timeutil.WeekStart(event.Date)
	if err != nil {
		return weeks
	}
	endWeek, err := timeutil.WeekStart(event.EndDate)
	if err != nil {
		return weeks
	}
	if endWeek != startWeek {
		weeks = append(weeks, event.EndDate)
	}

	return weeks
}
