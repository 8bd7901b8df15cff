package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/workforcehq/hrms-backend-go/internal/config"
	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
	appHTTP "github.com/workforcehq/hrms-backend-go/internal/handler/http"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/cron"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/database"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/jwt"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/oauth"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/sse"
	"github.com/workforcehq/hrms-backend-go/internal/repository/postgresql"
	analyticsService "github.com/workforcehq/hrms-backend-go/internal/service/analytics"
	authService "github.com/workforcehq/hrms-backend-go/internal/service/auth"
	employeeService "github.com/workforcehq/hrms-backend-go/internal/service/employee"
	leaveService "github.com/workforcehq/hrms-backend-go/internal/service/leave"
	notificationService "github.com/workforcehq/hrms-backend-go/internal/service/notification"
	payrollService "github.com/workforcehq/hrms-backend-go/internal/service/payroll"
	performanceService "github.com/workforcehq/hrms-backend-go/internal/service/performance"
	reportService "github.com/workforcehq/hrms-backend-go/internal/service/report"
	scheduleService "github.com/workforcehq/hrms-backend-go/internal/service/schedule"
	userService "github.com/workforcehq/hrms-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	leaveCategoryRepo := postgresql.NewLeaveCategoryRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leavePolicyRepo := postgresql.NewLeavePolicyRepository(db)
	leaveCalendarRepo := postgresql.NewLeaveCalendarRepository(db)
	entitlementRepo := postgresql.NewEntitlementRepository(db)
	adjustmentRepo := postgresql.NewAdjustmentRepository(db)
	leaveAccessRepo := postgresql.NewLeaveAccessRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	payrollRunRepo := postgresql.NewPayrollRunRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	appraisalRepo := postgresql.NewAppraisalRepository(db)
	disputeRepo := postgresql.NewDisputeRepository(db)
	templateRepo := postgresql.NewShiftTemplateRepository(db)
	assignmentRepo := postgresql.NewShiftAssignmentRepository(db)
	analyticsRepo := postgresql.NewAnalyticsRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(
		cfg.OAuth2Google.ClientID,
		cfg.OAuth2Google.ClientSecret,
		cfg.OAuth2Google.RedirectURL,
		cfg.OAuth2Google.Scopes,
	)
	hub := sse.NewHub()

	notifSvc := notificationService.NewNotificationService(notificationRepo, hub)
	authSvc := authService.NewAuthService(userRepo, refreshTokenRepo, jwtService, googleService)
	userSvc := userService.NewUserService(userRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, departmentRepo)
	leaveConfigSvc := leaveService.NewConfigService(
		db,
		leaveCategoryRepo,
		leaveTypeRepo,
		leavePolicyRepo,
		leaveCalendarRepo,
		entitlementRepo,
		adjustmentRepo,
		leaveAccessRepo,
		employeeRepo,
		notifSvc,
	)
	leaveRequestSvc := leaveService.NewRequestService(
		db,
		leaveRequestRepo,
		leaveTypeRepo,
		leavePolicyRepo,
		leaveCalendarRepo,
		entitlementRepo,
		employeeRepo,
		notifSvc,
	)
	payrollSvc := payrollService.NewPayrollService(payrollRunRepo, payslipRepo, userRepo, notifSvc)
	performanceSvc := performanceService.NewPerformanceService(appraisalRepo, disputeRepo, employeeRepo, userRepo, notifSvc)
	scheduleSvc := scheduleService.NewScheduleService(templateRepo, assignmentRepo, employeeRepo, notifSvc)
	analyticsSvc := analyticsService.NewAnalyticsService(analyticsRepo)
	reportSvc := reportService.NewReportService(reportRepo, payrollRunRepo, entitlementRepo, leaveTypeRepo)

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(jwtService, authSvc, googleService),
		User:         appHTTP.NewUserHandler(userSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		LeaveConfig:  appHTTP.NewLeaveConfigHandler(leaveConfigSvc),
		LeaveRequest: appHTTP.NewLeaveRequestHandler(leaveRequestSvc),
		Payroll:      appHTTP.NewPayrollHandler(payrollSvc),
		Performance:  appHTTP.NewPerformanceHandler(performanceSvc),
		Schedule:     appHTTP.NewScheduleHandler(scheduleSvc),
		Analytics:    appHTTP.NewAnalyticsHandler(analyticsSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
		Notification: appHTTP.NewNotificationHandler(notifSvc, jwtService, hub),
	}

	router := appHTTP.NewRouter(jwtService, cfg.App.CORSOrigins, handlers)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("leave-accrual", 24*time.Hour, func(ctx context.Context) error {
		today := time.Now().Format("2006-01-02")
		for _, method := range []string{string(leave.AccrualMonthly), string(leave.AccrualYearly), string(leave.AccrualPerTerm)} {
			result, err := leaveConfigSvc.RunAccrual(ctx, leave.RunAccrualRequest{
				ReferenceDate: today,
				Method:        method,
			})
			if err != nil {
				return err
			}
			slog.Info("Accrual job finished", "method", method, "processed", result.Processed, "skipped", result.Skipped)
		}
		return nil
	})
	scheduler.AddJob("carry-forward", 24*time.Hour, func(ctx context.Context) error {
		now := time.Now()
		if now.Month() != time.January || now.Day() != 1 {
			return nil
		}
		result, err := leaveConfigSvc.RunCarryForward(ctx, leave.CarryForwardRequest{
			ReferenceDate: now.Format("2006-01-02"),
		})
		if err != nil {
			return err
		}
		slog.Info("Carry-forward job finished", "processed", result.Processed, "skipped", result.Skipped)
		return nil
	})
	scheduler.AddJob("notification-cleanup", 24*time.Hour, func(ctx context.Context) error {
		deleted, err := notifSvc.Cleanup(ctx, 90)
		if err != nil {
			return err
		}
		slog.Info("Notification cleanup finished", "deleted", deleted)
		return nil
	})
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown error", "error", err)
	}
}
