package http

import (
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/wfh-web/internal/domain/staff"
	"github.com/cmlabs-hris/wfh-web/internal/handler/http/middleware"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

const contentSecurityPolicy = "default-src 'self'; style-src 'self'; img-src 'self' data:; form-action 'self'; frame-ancestors 'none'"

type RouterConfig struct {
	Env            string
	Version        string
	AllowedOrigins []string
	LogLevel       slog.Level
	// LogOutput defaults to stdout.
	LogOutput io.Writer
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	staffRepo staff.Repository,
	authHandler AuthHandler,
	homeHandler HomeHandler,
	scheduleHandler ScheduleHandler,
	requestHandler RequestHandler,
	approvalHandler ApprovalHandler,
	departmentHandler DepartmentHandler,
) *chi.Mux {
	r := chi.NewRouter()

	out := cfg.LogOutput
	if out == nil {
		out = os.Stdout
	}
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "wfh-web"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Heartbeat("/healthz"))
	r.Use(middleware.SecurityHeaders(middleware.SecurityHeadersConfig{
		ContentSecurityPolicy: contentSecurityPolicy,
	}))
	r.Use(middleware.Locale)
	r.Use(jwtauth.Verify(jwtService.JWTAuth(), jwt.TokenFromSessionCookie))
	r.Use(middleware.Session(jwtService))

	// Scripted clients read the weekly grid cross-origin.
	gridCORS := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		MaxAge:           300,
	})

	assets, _ := fs.Sub(assetsFS, "assets")
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assets))))

	r.Get("/", authHandler.Root)
	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)

	r.Route("/{"+middleware.StaffIDParam+"}", func(r chi.Router) {
		r.Use(middleware.ResolveRole(staffRepo))
		r.NotFound(homeHandler.NotFound)
		r.MethodNotAllowed(homeHandler.NotFound)

		r.Get("/", homeHandler.Home)

		// Staff
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(staff.PermissionScheduleViewOwn))
			r.Get("/2/schedule", scheduleHandler.StaffSchedule)
			r.Post("/2/schedule/navigate", scheduleHandler.StaffNavigate)
		})
		r.With(gridCORS, middleware.RequireGridPermission(staff.PermissionScheduleViewOwn)).
			Get("/2/schedule/grid", scheduleHandler.StaffGrid)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(staff.PermissionRequestCreate))
			r.Get("/2/wfh-request", requestHandler.ApplyPage)
			r.Post("/2/wfh-request", requestHandler.Apply)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(staff.PermissionRequestViewOwn))
			r.Get("/2/requests", requestHandler.MyRequests)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(staff.PermissionRequestCancel))
			r.Post("/2/requests/{requestId}/{date}/cancel", requestHandler.Cancel)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(staff.PermissionWithdrawalCreate))
			r.Get("/2/withdrawal", requestHandler.WithdrawalPage)
			r.Post("/2/withdrawal", requestHandler.Withdraw)
		})

		// Manager
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(staff.PermissionScheduleViewTeam))
			r.Get("/3/schedule", scheduleHandler.TeamSchedule)
			r.Post("/3/schedule/navigate", scheduleHandler.TeamNavigate)
		})
		r.With(gridCORS, middleware.RequireGridPermission(staff.PermissionScheduleViewTeam)).
			Get("/3/schedule/grid", scheduleHandler.TeamGrid)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(staff.PermissionRequestViewTeam))
			r.Get("/3/pending-requests", approvalHandler.PendingRequests)
			r.Get("/3/approval/{requestId}", approvalHandler.Approval)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(staff.PermissionRequestApprove))
			r.Post("/3/approval/{requestId}", approvalHandler.Decide)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(staff.PermissionWithdrawalViewTeam))
			r.Get("/3/withdrawal-requests", approvalHandler.WithdrawalRequests)
			r.Get("/3/withdrawal-approval/{memberId}/{withdrawalId}", approvalHandler.WithdrawalApproval)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(staff.PermissionWithdrawalApprove))
			r.Post("/3/withdrawal-approval/{memberId}/{withdrawalId}", approvalHandler.DecideWithdrawal)
		})

		// HR
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(staff.PermissionHRCalendar))
			r.Get("/1/hr-calendar", departmentHandler.HRCalendar)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(staff.PermissionDeptView))
			r.Get("/1/dept-view", departmentHandler.DeptView)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(staff.PermissionDeptExport))
			r.Get("/1/dept-view/export", departmentHandler.Export)
		})
	})

	return r
}
