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

	"github.com/cmlabs-hris/wfh-web/internal/config"
	"github.com/cmlabs-hris/wfh-web/internal/domain/request"
	appHTTP "github.com/cmlabs-hris/wfh-web/internal/handler/http"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/cron"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/i18n"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/jwt"
	"github.com/cmlabs-hris/wfh-web/internal/repository/restapi"
	departmentService "github.com/cmlabs-hris/wfh-web/internal/service/department"
	requestService "github.com/cmlabs-hris/wfh-web/internal/service/request"
	scheduleService "github.com/cmlabs-hris/wfh-web/internal/service/schedule"
	"golang.org/x/sync/errgroup"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	if err := i18n.Init(cfg.App.DefaultLocale); err != nil {
		slog.Error("Failed to load translations", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	client := restapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	staffRepo := restapi.NewStaffRepository(client)
	scheduleRepo := restapi.NewScheduleRepository(client)
	requestRepo := restapi.NewRequestRepository(client)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.SessionExpiration, cfg.IsProduction())

	scheduleSvc := scheduleService.NewScheduleService(staffRepo, scheduleRepo)
	requestSvc := requestService.NewRequestService(
		requestRepo,
		request.DateWindow{Before: cfg.Windows.RequestBefore, After: cfg.Windows.RequestAfter},
		request.DateWindow{Before: cfg.Windows.WithdrawalBefore, After: cfg.Windows.WithdrawalAfter},
		time.Now,
	)
	departmentSvc := departmentService.NewDepartmentService(staffRepo, scheduleRepo)

	views := scheduleService.NewViewStore(scheduleSvc, time.Now)
	defer views.Close()

	scheduler := cron.NewScheduler()
	cron.NewViewJobs(views, cfg.View.IdleTimeout).RegisterJobs(scheduler)
	cron.NewSessionJobs(JWTService).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	renderer, err := appHTTP.NewRenderer()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	authHandler := appHTTP.NewAuthHandler(JWTService, staffRepo, renderer)
	homeHandler := appHTTP.NewHomeHandler(renderer)
	scheduleHandler := appHTTP.NewScheduleHandler(views, renderer, time.Now, cfg.API.Timeout)
	requestHandler := appHTTP.NewRequestHandler(requestSvc, renderer, time.Now)
	approvalHandler := appHTTP.NewApprovalHandler(requestSvc, renderer)
	departmentHandler := appHTTP.NewDepartmentHandler(departmentSvc, renderer, time.Now)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			Version:        version,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		staffRepo,
		authHandler,
		homeHandler,
		scheduleHandler,
		requestHandler,
		approvalHandler,
		departmentHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "version", version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("Shutting down server")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
