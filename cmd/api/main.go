package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/shiftwise-hq/timetrack-backend-go/internal/config"
	appHTTP "github.com/shiftwise-hq/timetrack-backend-go/internal/handler/http"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/cron"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/database"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/events"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/jwt"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/repository/postgresql"
	payrollService "github.com/shiftwise-hq/timetrack-backend-go/internal/service/payroll"
	shiftService "github.com/shiftwise-hq/timetrack-backend-go/internal/service/shift"
	wageService "github.com/shiftwise-hq/timetrack-backend-go/internal/service/wage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	shiftRepo := postgresql.NewShiftRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	wageHistoryRepo := postgresql.NewWageHistoryRepository(db)
	earningsRepo := postgresql.NewEarningsRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	bus := events.NewBus()
	shiftSvc := shiftService.NewShiftService(db, shiftRepo, bus)
	payrollSvc := payrollService.NewPayrollService(
		db,
		shiftRepo,
		employeeRepo,
		wageHistoryRepo,
		earningsRepo,
		settingsRepo,
		cfg.Overtime.ThresholdHours,
		cfg.Overtime.OvertimePercent,
	)
	wageSvc := wageService.NewWageService(wageHistoryRepo, employeeRepo)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	reconciler := payrollService.NewReconciler(bus, shiftSvc, payrollSvc, logger)
	reconcilerCtx, stopReconciler := context.WithCancel(context.Background())
	defer stopReconciler()
	go reconciler.Run(reconcilerCtx)

	scheduler := cron.NewScheduler()
	payrollJobs := cron.NewPayrollJobs(shiftRepo, shiftSvc, payrollSvc)
	payrollJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	wageHandler := appHTTP.NewWageHandler(wageSvc)

	router := appHTTP.NewRouter(
		JWTService,
		shiftHandler,
		payrollHandler,
		wageHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
