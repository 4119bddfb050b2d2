package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/workforce-ops/workforce-backend-go/internal/config"
	appHTTP "github.com/workforce-ops/workforce-backend-go/internal/handler/http"
	"github.com/workforce-ops/workforce-backend-go/internal/pkg/cron"
	"github.com/workforce-ops/workforce-backend-go/internal/pkg/database"
	"github.com/workforce-ops/workforce-backend-go/internal/repository/postgresql"
	attendanceService "github.com/workforce-ops/workforce-backend-go/internal/service/attendance"
	kpiService "github.com/workforce-ops/workforce-backend-go/internal/service/kpi"
	payrollService "github.com/workforce-ops/workforce-backend-go/internal/service/payroll"
	requestService "github.com/workforce-ops/workforce-backend-go/internal/service/request"
	settingService "github.com/workforce-ops/workforce-backend-go/internal/service/setting"
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
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	settingRepo := postgresql.NewSettingRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	transactor := postgresql.NewTransactor(db)

	settingStore := settingService.NewStore(settingRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, settingStore)
	requestSvc := requestService.NewRequestService(requestRepo, attendanceRepo, settingStore, transactor)
	payrollSvc := payrollService.NewPayrollService(attendanceRepo, employeeRepo, settingStore)
	kpiSvc := kpiService.NewKpiService(attendanceRepo, requestRepo, nil)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	requestHandler := appHTTP.NewRequestHandler(requestSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	kpiHandler := appHTTP.NewKpiHandler(kpiSvc)
	sweepHandler := appHTTP.NewSweepHandler(attendanceSvc, requestSvc, settingStore)

	router := appHTTP.NewRouter(
		attendanceHandler,
		requestHandler,
		payrollHandler,
		kpiHandler,
		sweepHandler,
	)

	scheduler := cron.NewScheduler()
	if cfg.Sweeps.Enabled {
		sweeps := cron.NewSweepJobs(attendanceSvc, requestSvc, settingStore)
		sweeps.RegisterJobs(scheduler, time.Duration(cfg.Sweeps.IntervalMinutes)*time.Minute)
		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Println("Server error:", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
