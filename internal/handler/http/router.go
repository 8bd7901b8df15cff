package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/workforcehq/hrms-backend-go/internal/domain/user"
	"github.com/workforcehq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	User         UserHandler
	Employee     EmployeeHandler
	LeaveConfig  LeaveConfigHandler
	LeaveRequest LeaveRequestHandler
	Payroll      PayrollHandler
	Performance  PerformanceHandler
	Schedule     ScheduleHandler
	Analytics    AnalyticsHandler
	Report       ReportHandler
	Notification NotificationHandler
}

func NewRouter(jwtService jwt.Service, corsOrigins []string, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)
		})

		// SSE stream authorizes itself with a short-lived query token.
		r.Get("/notifications/stream", h.Notification.Stream)

		// Everything below requires a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/auth/sse-token", h.Auth.SSEToken)

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionUserManage))
				r.Get("/", h.User.List)
				r.Get("/{id}", h.User.Get)
				r.Patch("/{id}/role", h.User.UpdateRole)
				r.Post("/{id}/deactivate", h.User.Deactivate)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", h.Employee.Profile)
				r.Get("/departments", h.Employee.ListDepartments)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(
						user.RoleHRAdmin, user.RoleHRManager,
						user.RolePayrollStaff, user.RoleDepartmentHead,
					))
					r.Get("/", h.Employee.List)
					r.Get("/{id}", h.Employee.Get)
				})
			})

			// Leave configuration tabs. Role middleware gates entry to the
			// area; the per-section allow-list check happens in the handler.
			r.Route("/leave/config", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionLeaveConfigManage))

				r.Route("/categories", func(r chi.Router) {
					r.Post("/", h.LeaveConfig.CreateCategory)
					r.Get("/", h.LeaveConfig.ListCategories)
					r.Put("/{id}", h.LeaveConfig.UpdateCategory)
					r.Delete("/{id}", h.LeaveConfig.DeleteCategory)
				})
				r.Route("/types", func(r chi.Router) {
					r.Post("/", h.LeaveConfig.CreateType)
					r.Get("/", h.LeaveConfig.ListTypes)
					r.Get("/{id}", h.LeaveConfig.GetType)
					r.Put("/{id}", h.LeaveConfig.UpdateType)
					r.Delete("/{id}", h.LeaveConfig.DeleteType)
					r.Put("/{id}/eligibility", h.LeaveConfig.SetEligibility)
				})
				r.Route("/policies", func(r chi.Router) {
					r.Post("/", h.LeaveConfig.CreatePolicy)
					r.Get("/", h.LeaveConfig.ListPolicies)
					r.Put("/{id}", h.LeaveConfig.UpdatePolicy)
					r.Delete("/{id}", h.LeaveConfig.DeletePolicy)
				})
				r.Route("/calendar", func(r chi.Router) {
					r.Put("/", h.LeaveConfig.UpsertCalendar)
					r.Get("/{year}", h.LeaveConfig.GetCalendar)
				})
				r.Post("/accruals/run", h.LeaveConfig.RunAccrual)
				r.Post("/accruals/carry-forward", h.LeaveConfig.RunCarryForward)
				r.Post("/reset", h.LeaveConfig.ResetEntitlements)
				r.Route("/access", func(r chi.Router) {
					r.Get("/", h.LeaveConfig.GetSectionAccess)
					r.Put("/", h.LeaveConfig.SetSectionAccess)
				})
			})

			r.Route("/leave/entitlements", func(r chi.Router) {
				r.Get("/me", h.LeaveConfig.MyEntitlements)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveAdjust))
					r.Post("/", h.LeaveConfig.AssignEntitlement)
					r.Get("/{employeeID}", h.LeaveConfig.ListEntitlements)
				})
			})

			r.Route("/leave/adjustments", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionLeaveAdjust))
				r.Post("/", h.LeaveConfig.CreateAdjustment)
				r.Get("/{employeeID}", h.LeaveConfig.ListAdjustments)
			})

			r.Route("/leave/requests", func(r chi.Router) {
				r.Post("/", h.LeaveRequest.Submit)
				r.Get("/me", h.LeaveRequest.MyRequests)
				r.Get("/{id}", h.LeaveRequest.Get)
				r.Post("/{id}/cancel", h.LeaveRequest.Cancel)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Get("/", h.LeaveRequest.List)
					r.Post("/{id}/approve", h.LeaveRequest.Approve)
					r.Post("/{id}/reject", h.LeaveRequest.Reject)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/payslips/me", h.Payroll.MyPayslips)
				r.Get("/payslips/{id}/pdf", h.Payroll.DownloadPayslip)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollView))
					r.Get("/runs", h.Payroll.ListRuns)
					r.Get("/runs/{id}", h.Payroll.GetRun)
					r.Get("/runs/{id}/payslips", h.Payroll.ListPayslips)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollSubmit))
					r.Post("/runs/{id}/submit", h.Payroll.SubmitRun)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollApprove))
					r.Post("/runs/{id}/approve", h.Payroll.ApproveRun)
					r.Post("/runs/{id}/reject", h.Payroll.RejectRun)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollLock))
					r.Post("/runs/{id}/lock", h.Payroll.LockRun)
				})
			})

			r.Route("/performance", func(r chi.Router) {
				r.Get("/appraisals/me", h.Performance.MyAppraisals)
				r.Get("/appraisals/{id}", h.Performance.GetAppraisal)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDisputeFile))
					r.Post("/disputes", h.Performance.FileDispute)
				})
				r.Get("/disputes/{id}", h.Performance.GetDispute)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPerformanceAdjudicate))
					r.Get("/employees/{employeeID}/appraisals", h.Performance.ListAppraisals)
					r.Get("/disputes", h.Performance.ListDisputes)
					r.Post("/disputes/{id}/take", h.Performance.TakeDispute)
					r.Post("/disputes/{id}/resolve", h.Performance.ResolveDispute)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/me", h.Schedule.MySchedule)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionScheduleView))
					r.Get("/templates", h.Schedule.ListTemplates)
					r.Get("/assignments", h.Schedule.ListAssignments)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionScheduleManage))
					r.Post("/templates", h.Schedule.CreateTemplate)
					r.Post("/templates/{id}/deactivate", h.Schedule.DeactivateTemplate)
					r.Post("/assignments", h.Schedule.AssignShift)
					r.Delete("/assignments/{id}", h.Schedule.RemoveAssignment)
				})
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAnalyticsView))
				r.Get("/headcount", h.Analytics.Headcount)
				r.Get("/leave-utilization", h.Analytics.LeaveUtilization)
				r.Get("/payroll-cost", h.Analytics.PayrollCost)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsManage))
				r.Post("/", h.Report.Generate)
				r.Get("/", h.Report.List)
				r.Get("/{id}", h.Report.Get)
				r.Delete("/{id}", h.Report.Delete)
				r.Get("/{id}/export/csv", h.Report.ExportCSV)
				r.Get("/{id}/export/pdf", h.Report.ExportPDF)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/mark-read", h.Notification.MarkRead)
				r.Post("/mark-all-read", h.Notification.MarkAllRead)
			})
		})
	})

	return r
}
