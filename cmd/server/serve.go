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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/codelens/api/docs"
	"github.com/codelens/api/internal/analysis"
	"github.com/codelens/api/internal/completion"
	"github.com/codelens/api/internal/config"
	"github.com/codelens/api/internal/handlers"
	"github.com/codelens/api/internal/highlight"
	"github.com/codelens/api/internal/middleware"
	"github.com/codelens/api/internal/quality"
	"github.com/codelens/api/internal/telemetry"
	"github.com/codelens/api/internal/version"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web form and JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), v)
		},
	}
	cmd.Flags().String("port", "8080", "Port to listen on")
	cmd.Flags().Bool("share", false, "Listen on all interfaces instead of loopback")
	_ = v.BindPFlag(config.KeyPort, cmd.Flags().Lookup("port"))
	_ = v.BindPFlag(config.KeyShare, cmd.Flags().Lookup("share"))
	return cmd
}

func serve(ctx context.Context, v *viper.Viper) error {
	cfg := config.Load(v)

	logger := newLogger(v, "stdout")
	defer logger.Sync()

	logger.Info("CodeLens API starting...",
		zap.String("version", version.Version),
		zap.String("environment", cfg.Environment),
	)

	logger.Info("Initializing telemetry...")
	// Initialize Telemetry
	shutdownTelemetry, err := telemetry.InitTracer(ctx, version.Service, version.Version, cfg.OTLPEndpoint)
	if err != nil {
		// collector may be down; serve without traces
		logger.Error("failed to initialize telemetry", zap.Error(err))
	} else {
		defer func() {
			if err := shutdownTelemetry(context.Background()); err != nil {
				logger.Error("failed to shutdown telemetry", zap.Error(err))
			}
		}()
	}

	// Initialize metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := telemetry.NewMetrics(registry)

	logger.Info("Initializing text generation client...")
	// Initialize text generation client
	backend, err := completion.NewGenaiBackend(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("create text generation client: %w", err)
	}

	logger.Info("Selecting text generation model...")
	model, err := completion.ResolveModel(ctx, backend)
	if err != nil {
		return fmt.Errorf("select model: %w", err)
	}
	logger.Info("selected model", zap.String("model", model.Name))

	breaker := completion.NewBreaker(backend)
	breaker.OnStateChange = func(from, to completion.CircuitState) {
		logger.Warn("model circuit changed state",
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)
	}
	completer := completion.NewClient(breaker, model, logger).WithObserver(metrics)

	logger.Info("Initializing analysis dispatcher...")
	// Initialize Dispatcher
	highlighter := highlight.New(cfg.HighlightStyle)
	dispatcher := analysis.NewDispatcher(highlighter, quality.NewCalculator(logger), completer, logger).
		WithRecorder(metrics)

	router, err := newRouter(cfg, logger, registry, metrics, dispatcher, highlighter, backend, model)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr), zap.Bool("share", cfg.Share))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("start server: %w", err)
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited gracefully")
	return nil
}

func newRouter(
	cfg *config.Config,
	logger *zap.Logger,
	registry *prometheus.Registry,
	metrics *telemetry.Metrics,
	dispatcher *analysis.Dispatcher,
	highlighter *highlight.Highlighter,
	lister completion.ModelLister,
	model completion.ModelHandle,
) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := handlers.LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins...))
	router.Use(middleware.Metrics(metrics))
	logger.Info("Router initialized, setting up handlers...")

	docs.SwaggerInfo.Host = cfg.DocsHost()
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))

	healthHandler := handlers.NewHealthHandler(lister, model)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/deep", healthHandler.DeepHealth)

	limiter := middleware.AnalysisRateLimiter()

	uiHandler := handlers.NewUIHandler(dispatcher, highlighter, model.Name, logger)
	router.GET("/", uiHandler.Index)
	router.POST("/", middleware.RateLimitMiddleware(limiter), uiHandler.Submit)
	router.GET("/static/highlight.css", uiHandler.Stylesheet)

	analyzeHandler := handlers.NewAnalyzeHandler(dispatcher, model, logger)
	v1 := router.Group("/api/v1")
	{
		v1.POST("/analyze", middleware.RateLimitMiddleware(limiter), analyzeHandler.Analyze)
		v1.GET("/examples", analyzeHandler.Examples)
		v1.GET("/model", analyzeHandler.Model)
	}

	logger.Info("handlers registered", zap.Int("routes", len(router.Routes())))
	return router, nil
}
