package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"ledger-reports/internal/config"
	"ledger-reports/internal/handlers"
	"ledger-reports/internal/ledger"
	"ledger-reports/internal/middleware"
	"ledger-reports/internal/repositories"
	"ledger-reports/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the collaborators the HTTP server is built from
type Dependencies struct {
	Health          handlers.HealthChecker
	TransactionRepo repositories.TransactionRepositoryInterface
	Registerer      prometheus.Registerer
	Gatherer        prometheus.Gatherer
}

// Server owns the echo instance and the background work it needs
type Server struct {
	echo        *echo.Echo
	cfg         *config.Config
	rateLimiter *middleware.RateLimiter
}

// Policies resolves the per-report cleaning policies from configuration
func Policies(cfg config.ReportsConfig) (services.ReportPolicies, error) {
	policies := services.ReportPolicies{
		Summary:  cfg.Summary.Policy("summary"),
		Listing:  cfg.Listing.Policy("listing"),
		Category: cfg.Category.Policy("category"),
		Daily:    cfg.Daily.Policy("daily"),
	}

	for _, p := range []ledger.Policy{policies.Summary, policies.Listing, policies.Category, policies.Daily} {
		if err := p.Validate(); err != nil {
			return services.ReportPolicies{}, fmt.Errorf("policy %s: %w", p.Name, err)
		}
	}

	return policies, nil
}

// New wires repositories, the report engine, handlers and middleware into an echo server
func New(cfg *config.Config, deps Dependencies) (*Server, error) {
	loc, err := cfg.Reports.Location()
	if err != nil {
		return nil, err
	}

	policies, err := Policies(cfg.Reports)
	if err != nil {
		return nil, err
	}

	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil || gatherer == nil {
		registry := prometheus.NewRegistry()
		registerer, gatherer = registry, registry
	}

	metrics := services.NewPrometheusMetrics(registerer)
	transactionRepo := services.NewGuardedTransactionRepository(
		deps.TransactionRepo,
		services.NewCircuitBreaker("transactions", services.DefaultCircuitBreakerConfig()),
		metrics,
	)
	reportService := services.NewReportService(transactionRepo, ledger.NewEngine(loc), policies, metrics)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.Server.CORSAllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderContentType, middleware.TraceIDHeader},
		ExposeHeaders: []string{middleware.TraceIDHeader},
	}))

	healthHandler := handlers.NewHealthCheckHandler(deps.Health)
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := e.Group("/api/v1", rateLimiter.Middleware())
	handlers.NewReportHandler(reportService).RegisterRoutes(api.Group("/reports"))
	handlers.NewTransactionHandler(reportService, loc).RegisterRoutes(api.Group("/transactions"))

	return &Server{echo: e, cfg: cfg, rateLimiter: rateLimiter}, nil
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then drains in-flight requests within the shutdown timeout
func (s *Server) Run(ctx context.Context) error {
	go s.rateLimiter.Run(ctx)

	addr := fmt.Sprintf("%s:%s", s.cfg.Server.Host, s.cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting ledger reports server", "addr", addr, "environment", s.cfg.Server.Environment)
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutdown signal received, draining connections", "timeout", s.cfg.Server.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
