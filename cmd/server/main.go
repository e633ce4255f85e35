package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sefcontact/engine/internal/application/access"
	"github.com/sefcontact/engine/internal/application/activity"
	consumerapp "github.com/sefcontact/engine/internal/application/consumer"
	directoryapp "github.com/sefcontact/engine/internal/application/directory"
	exportapp "github.com/sefcontact/engine/internal/application/export"
	paymentapp "github.com/sefcontact/engine/internal/application/payment"
	portfolioapp "github.com/sefcontact/engine/internal/application/portfolio"
	reportingapp "github.com/sefcontact/engine/internal/application/reporting"
	"github.com/sefcontact/engine/internal/infrastructure/config"
	"github.com/sefcontact/engine/internal/infrastructure/event"
	"github.com/sefcontact/engine/internal/infrastructure/logger"
	"github.com/sefcontact/engine/internal/infrastructure/persistence/memory"
	"github.com/sefcontact/engine/internal/interfaces/http/handler"
	"github.com/sefcontact/engine/internal/interfaces/http/middleware"
	"github.com/sefcontact/engine/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting contact engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Repositories
	userRepo := memory.NewUserRepository()
	portfolioRepo := memory.NewPortfolioRepository()
	consumerRepo := memory.NewConsumerRepository()
	paymentRepo := memory.NewPaymentRepository()

	// Event bus and activity feed
	eventBus := event.NewInMemoryEventBus(log.Named("eventbus"))
	feed := activity.NewFeed(cfg.Activity.FeedSize)
	eventBus.Subscribe(feed)

	// Application services
	guard := access.NewGuard(consumerRepo)

	userService := directoryapp.NewUserService(userRepo)
	userService.SetEventPublisher(eventBus)

	portfolioService := portfolioapp.NewPortfolioService(portfolioRepo, userRepo)
	portfolioService.SetEventPublisher(eventBus)

	consumerService := consumerapp.NewConsumerService(consumerRepo, portfolioRepo, userRepo, guard)
	consumerService.SetEventPublisher(eventBus)

	paymentService := paymentapp.NewPaymentService(paymentRepo, consumerRepo, guard)
	paymentService.SetEventPublisher(eventBus)

	metricsService := reportingapp.NewMetricsService(portfolioRepo, userRepo, consumerRepo, paymentRepo)
	exportService := exportapp.NewExportService(portfolioRepo, userRepo, consumerRepo, paymentRepo)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	middleware.SetupValidator()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.Secure())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	// Routes; system endpoints stay open, everything else requires a session
	r := router.NewRouter(engine, router.WithGroupMiddleware(middleware.Session()))
	r.RegisterPublic(handler.NewSystemHandler(cfg.App.Name))
	r.Register(handler.NewUserHandler(userService))
	r.Register(handler.NewPortfolioHandler(portfolioService))
	r.Register(handler.NewConsumerHandler(consumerService))
	r.Register(handler.NewPaymentHandler(paymentService))
	r.Register(handler.NewMetricsHandler(metricsService))
	r.Register(handler.NewExportHandler(exportService))
	r.Register(handler.NewActivityHandler(feed))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
