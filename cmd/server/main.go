package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/ayustore/backend/internal/application/catalog"
	identityapp "github.com/ayustore/backend/internal/application/identity"
	orderapp "github.com/ayustore/backend/internal/application/order"
	paymentapp "github.com/ayustore/backend/internal/application/payment"
	reportapp "github.com/ayustore/backend/internal/application/report"
	"github.com/ayustore/backend/internal/infrastructure/auth"
	"github.com/ayustore/backend/internal/infrastructure/cache"
	"github.com/ayustore/backend/internal/infrastructure/config"
	"github.com/ayustore/backend/internal/infrastructure/logger"
	"github.com/ayustore/backend/internal/infrastructure/oauth"
	razorpay "github.com/ayustore/backend/internal/infrastructure/payment"
	"github.com/ayustore/backend/internal/infrastructure/persistence"
	"github.com/ayustore/backend/internal/infrastructure/telemetry"
	"github.com/ayustore/backend/internal/interfaces/http/handler"
	"github.com/ayustore/backend/internal/interfaces/http/middleware"
	"github.com/ayustore/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting store backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing and metrics. Both are no-ops when telemetry is
	// disabled.
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	storeMetrics, err := telemetry.NewStoreMetrics(meterProvider.Meter("ayustore"), log)
	if err != nil {
		log.Fatal("Failed to initialize store metrics", zap.Error(err))
	}

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.EnableQueryTracing(db.DB, cfg.Telemetry.Enabled, log); err != nil {
		log.Fatal("Failed to enable query tracing", zap.Error(err))
	}

	// Catalog cache: Redis with in-memory fallback for development
	cacheFactory := cache.NewCatalogCacheFactory(cfg.Redis, cfg.Cache, cache.WithLogger(log))
	catalogCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to create catalog cache", zap.Error(err))
	}

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	checkoutScope := persistence.NewGormCheckoutScope(db.DB)
	verificationScope := persistence.NewGormVerificationScope(db.DB)

	// Payment gateway
	gateway, err := razorpay.NewRazorpayAdapter(&razorpay.RazorpayConfig{
		KeyID:     cfg.Razorpay.KeyID,
		KeySecret: cfg.Razorpay.KeySecret,
		BaseURL:   cfg.Razorpay.BaseURL,
	})
	if err != nil {
		log.Fatal("Failed to configure Razorpay gateway", zap.Error(err))
	}

	// Google OAuth is optional; without credentials the Google routes
	// report sign-in as unavailable
	var googleProvider identityapp.GoogleProvider
	if cfg.Google.ClientID != "" {
		googleClient, err := oauth.NewGoogleClient(cfg.Google)
		if err != nil {
			log.Fatal("Failed to configure Google OAuth", zap.Error(err))
		}
		googleProvider = googleClient
	} else {
		log.Warn("Google OAuth not configured, social sign-in disabled")
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	productService := catalogapp.NewProductService(productRepo, catalogCache)
	orderService := orderapp.NewOrderService(orderRepo, checkoutScope)
	paymentService := paymentapp.NewPaymentService(paymentRepo, orderRepo, gateway, verificationScope)
	authService := identityapp.NewAuthService(userRepo, jwtService, googleProvider, log)
	userService := identityapp.NewUserService(userRepo)
	dashboardService := reportapp.NewDashboardService(orderService, productService, userService)

	orderService.SetStoreMetrics(storeMetrics)
	paymentService.SetStoreMetrics(storeMetrics)
	authService.SetStoreMetrics(storeMetrics)

	// Bootstrap the admin account when configured
	if cfg.Admin.Email != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := userService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Name, cfg.Admin.Password); err != nil {
			cancel()
			log.Fatal("Failed to bootstrap admin account", zap.Error(err))
		}
		cancel()
		log.Info("Admin account ready", zap.String("email", cfg.Admin.Email))
	}

	// Initialize HTTP handlers
	authMW := middleware.RequireAuth(jwtService)
	adminMW := middleware.RequireAdmin()

	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService, authMW)
	paymentHandler := handler.NewPaymentHandler(paymentService, authMW)
	authHandler := handler.NewAuthHandler(authService, userService, cfg.Google.FrontendURL, authMW)
	adminHandler := handler.NewAdminHandler(productService, orderService, userService, dashboardService, authMW, adminMW)
	systemHandler := handler.NewSystemHandler(db.Ping)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, in order
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled))
	engine.Use(middleware.TraceAttributes())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health endpoint lives outside the API prefix
	systemHandler.RegisterRoutes(engine)

	router.NewRouter(engine).
		Register(productHandler).
		Register(orderHandler).
		Register(paymentHandler).
		Register(authHandler).
		Register(adminHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

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
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := tracerProvider.Shutdown(ctx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := meterProvider.Shutdown(ctx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
