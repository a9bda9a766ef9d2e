package app

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"guestcomplaints/internal/config"
	apierrors "guestcomplaints/internal/errors"
	"guestcomplaints/internal/infrastructure"
	customMiddleware "guestcomplaints/internal/middleware"
	"guestcomplaints/internal/services"
	handlers "guestcomplaints/internal/transport/http"
	"guestcomplaints/internal/validation"
	"guestcomplaints/pkg/contracts"
)

const (
	VERSION = contracts.Version
	AppName = config.AppName
)

var (
	// BuildTime is set at compile time
	BuildTime = time.Now().Format(time.RFC3339)
	// BuildID is a unique identifier for this build
	BuildID = generateBuildID()
)

func generateBuildID() string {
	// Generate a deterministic build ID based on version and time
	h := sha256.New()
	h.Write([]byte(VERSION))
	h.Write([]byte(time.Now().Format("2006-01-02")))
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	Services      *ServiceContainer
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics
	ErrorHandler  *apierrors.ErrorHandler
}

// NewApplication wires the services and router for cfg.
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", VERSION))

	paths, err := cfg.ResolvePaths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)

	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateBusinessMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	svc, err := NewServices(cfg, paths, logger, otelProviders.Tracer, metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	a := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		Services:      svc,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		ErrorHandler:  apierrors.NewErrorHandler(logger, cfg.Server.IncludeStack),
	}

	a.setupRouter()
	a.createServer()

	return a, nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Ordering: RequestID → RealIP → OTel → Logger → Recoverer
	r.Use(customMiddleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics, a.Logger).Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(apierrors.RecoveryMiddleware(a.ErrorHandler))
	r.Use(customMiddleware.SecurityHeaders)

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	a.setupAPIRoutes(r)

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Method(http.MethodGet, "/metrics", handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP))
	}

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	validator := customMiddleware.NewValidator(a.Logger)
	healthHandler := handlers.NewHealthHandler(a.Services.Health, a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		r.Group(func(r chi.Router) {
			if a.Config.Security.RateLimit.Enabled {
				r.Use(customMiddleware.NewRateLimiter(
					a.Config.Security.RateLimit.RPS,
					a.Config.Security.RateLimit.Burst,
					a.Logger,
					a.ErrorHandler,
				).Handler)
			}
			r.Use(middleware.Timeout(a.Config.Server.WriteTimeout))

			r.Mount("/complaints", handlers.NewComplaintHandler(a.Services.Complaints, validator, a.Logger, a.ErrorHandler).Routes())
			r.Mount("/report", handlers.NewReportHandler(a.Services.Complaints, validator, a.Logger, a.ErrorHandler).Routes())
		})
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Preload loads the dataset once so missing or unreadable workbooks stop
// the service before it starts listening.
func (a *Application) Preload(ctx context.Context) error {
	if err := validation.NewFileValidator(a.Logger).ValidateSources(a.Services.Sources.Sources()); err != nil {
		return fmt.Errorf("invalid input workbooks: %w", err)
	}

	ds, err := a.Services.Sources.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load complaint workbooks: %w", err)
	}

	attrs := []any{slog.Int("records", len(ds.Records))}
	for location, n := range ds.PerLocation {
		attrs = append(attrs, slog.Int("records_"+location, n))
	}
	a.Logger.InfoContext(ctx, "Complaint dataset ready", attrs...)
	return nil
}

// Start serves HTTP and, when configured, watches the input workbooks until
// ctx is cancelled. It returns after the server has shut down.
func (a *Application) Start(ctx context.Context) error {
	if err := a.Preload(ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(ctx, "Starting HTTP server",
			slog.String("address", a.Server.Addr),
			slog.String("level", a.Config.Logging.Level))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	if a.Config.Inputs.WatchChanges {
		watcher, err := services.NewInputWatcher(a.Services.Sources, config.InputSettleDelay, a.Logger)
		if err != nil {
			a.Logger.WarnContext(ctx, "Input watcher disabled", slog.String("error", err.Error()))
		} else {
			g.Go(func() error { return watcher.Run(ctx) })
		}
	}

	g.Go(func() error {
		<-ctx.Done()
		return a.Stop(context.WithoutCancel(ctx))
	})

	return g.Wait()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.Start(ctx)
}
