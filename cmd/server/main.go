package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/akau-shop/backend/internal/application/catalog"
	"github.com/akau-shop/backend/internal/application/notification"
	orderapp "github.com/akau-shop/backend/internal/application/order"
	"github.com/akau-shop/backend/internal/infrastructure/auth"
	"github.com/akau-shop/backend/internal/infrastructure/cache"
	"github.com/akau-shop/backend/internal/infrastructure/config"
	"github.com/akau-shop/backend/internal/infrastructure/logger"
	"github.com/akau-shop/backend/internal/infrastructure/mail"
	"github.com/akau-shop/backend/internal/infrastructure/persistence"
	"github.com/akau-shop/backend/internal/infrastructure/storage"
	"github.com/akau-shop/backend/internal/interfaces/http/handler"
	"github.com/akau-shop/backend/internal/interfaces/http/middleware"
	"github.com/akau-shop/backend/internal/interfaces/http/router"
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
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting shop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connected and migrated")

	if cfg.App.Env == "development" && cfg.App.SeedDemoData {
		if err := persistence.SeedDemoData(context.Background(), db.DB); err != nil {
			log.Fatal("Failed to seed demo data", zap.Error(err))
		}
		log.Info("Demo data seeded")
	}

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Admin sessions: Redis-backed when available, in-memory otherwise
	storeFactory := cache.NewSessionStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	)
	sessionStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create session store", zap.Error(err))
	}
	defer func() {
		if err := sessionStore.Close(); err != nil {
			log.Error("Error closing session store", zap.Error(err))
		}
	}()
	sessions := auth.NewSessionService(cfg.Admin, cfg.App.Name, sessionStore)

	// Mail: real SMTP sender only when configured
	var sender notification.Sender
	if cfg.SMTP.Enabled {
		smtpSender, err := mail.NewSMTPSender(cfg.SMTP)
		if err != nil {
			log.Fatal("Invalid SMTP configuration", zap.Error(err))
		}
		sender = smtpSender
		log.Info("SMTP mail sender enabled", zap.String("host", cfg.SMTP.Host))
	} else {
		sender = mail.NewDisabledSender(log)
		log.Info("Mail delivery disabled, notifications will be dropped")
	}
	notifier := notification.NewService(log, sender, cfg.App.Name, cfg.Admin.NotifyEmail)
	defer notifier.Close()

	// Image storage
	imageStore, err := storage.NewLocalImageStore(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		log.Fatal("Failed to initialize upload storage", zap.Error(err))
	}

	// Application services
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, orderRepo)
	orderService := orderapp.NewService(orderRepo, productRepo, txScope, notifier)

	// Handlers
	systemHandler := handler.NewSystemHandler(db, cfg.App.Name)
	authHandler := handler.NewAuthHandler(sessions)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	uploadHandler := handler.NewUploadHandler(imageStore)

	// Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxy configuration", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check and uploaded images live outside API versioning
	engine.GET("/health", systemHandler.Health)
	engine.Static("/uploads", imageStore.Dir())

	// Storefront routes
	shopRoutes := router.NewGroup("")
	shopRoutes.GET("/categories", categoryHandler.ListActive)
	shopRoutes.GET("/products", productHandler.ListActive)
	shopRoutes.GET("/products/:id", productHandler.GetActive)
	shopRoutes.POST("/orders", orderHandler.Place)
	shopRoutes.GET("/orders/:id", orderHandler.Get)
	shopRoutes.GET("/orders/:id/items", orderHandler.GetItems)

	// Admin routes: login is open, everything else requires a session
	adminAuthRoutes := router.NewGroup("/admin/auth")
	adminAuthRoutes.POST("/login", authHandler.Login)
	adminAuthRoutes.POST("/logout", authHandler.Logout)

	adminRoutes := router.NewGroup("/admin")
	adminRoutes.Use(middleware.RequireAdmin(sessions))
	adminRoutes.GET("/categories", categoryHandler.List)
	adminRoutes.POST("/categories", categoryHandler.Create)
	adminRoutes.PATCH("/categories/:id", categoryHandler.Update)
	adminRoutes.GET("/products", productHandler.List)
	adminRoutes.POST("/products", productHandler.Create)
	adminRoutes.GET("/products/:id", productHandler.Get)
	adminRoutes.PATCH("/products/:id", productHandler.Update)
	adminRoutes.PATCH("/products/:id/active", productHandler.SetActive)
	adminRoutes.DELETE("/products/:id", productHandler.Delete)
	adminRoutes.GET("/orders", orderHandler.List)
	adminRoutes.GET("/orders/:id", orderHandler.GetDetail)
	adminRoutes.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	adminRoutes.POST("/orders/:id/ship", orderHandler.Ship)
	adminRoutes.POST("/uploads/image", uploadHandler.UploadImage)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(shopRoutes).
		Register(adminAuthRoutes).
		Register(adminRoutes)
	r.Setup()

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
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
