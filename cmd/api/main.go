package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/KJithathma/tmf670-payment-method-api/internal/api/handlers"
	"github.com/KJithathma/tmf670-payment-method-api/internal/api/middleware"
	"github.com/KJithathma/tmf670-payment-method-api/internal/config"
	"github.com/KJithathma/tmf670-payment-method-api/internal/observability"
	"github.com/KJithathma/tmf670-payment-method-api/internal/repository"
	"github.com/KJithathma/tmf670-payment-method-api/internal/service"
	"github.com/KJithathma/tmf670-payment-method-api/pkg/database"
)

const meterScope = "github.com/KJithathma/tmf670-payment-method-api/internal/observability"

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Configure slog with the log level from config
	setupLogging(cfg.LogLevel)

	// Initialize database connection
	db, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize metrics (disabled unless OTEL_METRICS_EXPORTER=otlp)
	meterProvider, err := observability.NewMeterProvider(cfg)
	if err != nil {
		slog.Error("Failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	var meter metric.Meter
	if meterProvider != nil {
		meter = meterProvider.Meter(meterScope)
		slog.Info("Metrics enabled", "exporter", cfg.OtelMetricsExporter)
	}

	apiMetrics, err := observability.NewAPIMetrics(meter)
	if err != nil {
		slog.Error("Failed to create API metrics", "error", err)
		os.Exit(1)
	}

	eventMetrics, err := observability.NewEventMetrics(meter)
	if err != nil {
		slog.Error("Failed to create event metrics", "error", err)
		os.Exit(1)
	}

	notificationMetrics, err := observability.NewNotificationMetrics(meter)
	if err != nil {
		slog.Error("Failed to create notification metrics", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	paymentMethodsRepo := repository.NewPaymentMethodsRepository(db)
	listenersRepo := repository.NewListenersRepository(db)
	usersRepo := repository.NewUsersRepository(db)

	// Initialize the event pipeline: mutations flow through the publisher manager
	// to the listener notifier, which fans out to registered hub listeners.
	publisherManager := service.NewEventPublisherManager(cfg.EventBufferSize, eventMetrics)

	var sender service.EventSender
	if cfg.EventDeliveryEnabled {
		sender = service.NewHTTPEventSender(
			time.Duration(cfg.EventDeliveryTimeoutSeconds)*time.Second,
			cfg.EventDeliveryRatePerSecond,
			notificationMetrics,
		)
		slog.Info("Event delivery enabled",
			"timeout_seconds", cfg.EventDeliveryTimeoutSeconds,
			"rate_per_second", cfg.EventDeliveryRatePerSecond,
		)
	} else {
		slog.Info("Event delivery disabled (EVENT_DELIVERY_ENABLED=false), notifications are logged only")
	}

	notifier := service.NewListenerNotifier(listenersRepo, sender, notificationMetrics)
	publisherManager.RegisterProvider(notifier)

	// Initialize services and handlers
	paymentMethodsService := service.NewPaymentMethodsService(paymentMethodsRepo, publisherManager, cfg.BasePath)
	paymentMethodsHandler := handlers.NewPaymentMethodsHandler(paymentMethodsService)

	listenersService := service.NewListenersService(listenersRepo)
	hubHandler := handlers.NewHubHandler(listenersService)

	usersService := service.NewUsersService(usersRepo)
	usersHandler := handlers.NewUsersHandler(usersService)

	healthHandler := handlers.NewHealthHandler()

	// Set up routes
	mux := http.NewServeMux()

	base := cfg.BasePath
	mux.HandleFunc("POST "+base+"/paymentMethod", paymentMethodsHandler.Create)
	mux.HandleFunc("GET "+base+"/paymentMethod", paymentMethodsHandler.List)
	mux.HandleFunc("GET "+base+"/paymentMethod/{id}", paymentMethodsHandler.Get)
	mux.HandleFunc("PATCH "+base+"/paymentMethod/{id}", paymentMethodsHandler.Update)
	mux.HandleFunc("DELETE "+base+"/paymentMethod/{id}", paymentMethodsHandler.Delete)

	mux.HandleFunc("POST "+base+"/hub", hubHandler.Register)
	mux.HandleFunc("DELETE "+base+"/hub/{id}", hubHandler.Deregister)

	mux.HandleFunc("POST /users", usersHandler.Create)
	mux.HandleFunc("GET /users", usersHandler.List)

	mux.HandleFunc("GET /{$}", healthHandler.Root)
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Middleware chain. Metrics is outermost so duration covers the full request;
	// RequestID runs before Logging so the access log carries request_id.
	var handler http.Handler = mux
	handler = middleware.MaxBody(cfg.MaxRequestBodyBytes, apiMetrics)(handler)
	handler = middleware.Logging(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Metrics(apiMetrics)(handler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Starting server", "port", cfg.Port, "base_path", cfg.BasePath)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1. Stop accepting new HTTP requests
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	// 2. Drain the event pipeline so buffered notifications are delivered
	publisherManager.Shutdown()

	// 3. Flush metrics
	if err := observability.ShutdownMeterProvider(shutdownCtx, meterProvider); err != nil {
		slog.Error("Metrics shutdown failed", "error", err)
	}

	slog.Info("Server exited")
}

// setupLogging configures slog with the specified log level
func setupLogging(level string) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	handler := slog.NewTextHandler(os.Stdout, opts)
	slog.SetDefault(slog.New(observability.NewRequestContextHandler(handler)))
}
