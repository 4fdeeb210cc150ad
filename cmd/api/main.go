package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/cache"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/config"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/database"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/handlers"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/middleware"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/repository"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/services"
	"github.com/Alison-Albino/EccoServ88-sub000/internal/storage"
)

func main() {
	cfg := config.Load()

	setupLogging(cfg)
	gin.SetMode(cfg.Server.GinMode)

	dbManager := database.GetManager(cfg)

	ctx := context.Background()
	if err := dbManager.InitPool(ctx); err != nil {
		logrus.Fatalf("Failed to initialize database pool: %v", err)
	}

	redisClient, err := cache.NewClient(&cfg.Redis)
	if err != nil {
		logrus.Fatalf("Failed to initialize Redis client: %v", err)
	}

	storageDriver, err := storage.NewDriver(storageConfig(cfg))
	if err != nil {
		logrus.Fatalf("Failed to initialize storage driver: %v", err)
	}

	pool := dbManager.GetPool()

	userRepo := repository.NewUserRepository(pool)
	clientRepo := repository.NewClientRepository(pool)
	providerRepo := repository.NewProviderRepository(pool)
	wellRepo := repository.NewWellRepository(pool)
	visitRepo := repository.NewVisitRepository(pool)
	scheduledRepo := repository.NewScheduledVisitRepository(pool)
	materialRepo := repository.NewMaterialRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)
	profiles := repository.NewProfiles(clientRepo, providerRepo)

	authService := services.NewAuthService(userRepo, profiles)
	wellService := services.NewWellService(wellRepo, profiles)
	visitService := services.NewVisitService(visitRepo, materialRepo, scheduledRepo, wellRepo, profiles, redisClient)
	invoiceService := services.NewInvoiceService(invoiceRepo, visitRepo, wellRepo)
	reportService := services.NewReportService(materialRepo, redisClient)
	uploadService := services.NewUploadService(storageDriver)

	authHandler := handlers.NewAuthHandler(authService, cfg)
	clientHandler := handlers.NewClientHandler(clientRepo, wellService, visitService, invoiceService, authService)
	providerHandler := handlers.NewProviderHandler(providerRepo, visitService, authService)
	wellHandler := handlers.NewWellHandler(wellService, visitService)
	visitHandler := handlers.NewVisitHandler(visitService, uploadService)
	scheduledHandler := handlers.NewScheduledVisitHandler(visitService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	reportHandler := handlers.NewReportHandler(reportService)

	router := setupRouter(
		cfg,
		authHandler,
		clientHandler,
		providerHandler,
		wellHandler,
		visitHandler,
		scheduledHandler,
		invoiceHandler,
		reportHandler,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logrus.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	dbManager.Close()
	redisClient.Close()

	logrus.Info("Server exited")
}

func setupLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.App.Env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

func storageConfig(cfg *config.Config) *storage.Config {
	return &storage.Config{
		Driver:             cfg.Storage.Driver,
		UploadsPath:        cfg.Storage.UploadsPath,
		AWSAccessKeyID:     cfg.Storage.AWSAccessKeyID,
		AWSSecretAccessKey: cfg.Storage.AWSSecretAccessKey,
		AWSRegion:          cfg.Storage.AWSRegion,
		AWSBucket:          cfg.Storage.AWSBucket,
		R2AccessKeyID:      cfg.Storage.R2AccessKeyID,
		R2SecretAccessKey:  cfg.Storage.R2SecretAccessKey,
		R2AccountID:        cfg.Storage.R2AccountID,
		R2Bucket:           cfg.Storage.R2Bucket,
		R2PublicURL:        cfg.Storage.R2PublicURL,
	}
}

func setupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	clientHandler *handlers.ClientHandler,
	providerHandler *handlers.ProviderHandler,
	wellHandler *handlers.WellHandler,
	visitHandler *handlers.VisitHandler,
	scheduledHandler *handlers.ScheduledVisitHandler,
	invoiceHandler *handlers.InvoiceHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.Metrics())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.Storage.Driver == "local" || cfg.Storage.Driver == "" {
		router.Static("/uploads", cfg.Storage.UploadsPath)
	}

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/login", authHandler.Login)
	}

	// Protected routes (authentication required)
	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		protected.GET("/auth/me", authHandler.Me)

		protected.GET("/clients", clientHandler.List)
		protected.GET("/clients/:id", clientHandler.Get)
		protected.GET("/clients/:id/wells", clientHandler.Wells)
		protected.GET("/clients/:id/visits", clientHandler.Visits)
		protected.GET("/clients/:id/invoices", clientHandler.Invoices)

		protected.GET("/providers", providerHandler.List)
		protected.GET("/providers/:id", providerHandler.Get)
		protected.GET("/providers/:id/visits", providerHandler.Visits)

		protected.POST("/wells", wellHandler.Create)
		protected.GET("/wells", wellHandler.List)
		protected.GET("/wells/:id", wellHandler.Get)
		protected.GET("/wells/:id/visits", wellHandler.Visits)
		protected.PATCH("/wells/:id/status", wellHandler.UpdateStatus)

		protected.POST("/visits", visitHandler.Create)
		protected.GET("/visits", visitHandler.List)
		protected.GET("/visits/:id", visitHandler.Get)
		protected.PATCH("/visits/:id/status", visitHandler.UpdateStatus)

		protected.POST("/scheduled-visits", scheduledHandler.Create)
		protected.GET("/scheduled-visits", scheduledHandler.List)
		protected.PATCH("/scheduled-visits/:id/status", scheduledHandler.UpdateStatus)

		protected.POST("/invoices", invoiceHandler.Create)
		protected.GET("/invoices", invoiceHandler.List)
		protected.GET("/invoices/:id", invoiceHandler.Get)
		protected.POST("/invoices/:id/send", invoiceHandler.Send)
		protected.POST("/invoices/:id/paid", invoiceHandler.Pay)
		protected.PATCH("/invoices/:id/status", invoiceHandler.UpdateStatus)
	}

	// Admin routes
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireUserType(models.UserTypeAdmin))
	{
		admin.DELETE("/providers/:id", providerHandler.Delete)
		admin.POST("/clients/:id/reset-password", clientHandler.ResetPassword)
		admin.POST("/providers/:id/reset-password", providerHandler.ResetPassword)
		admin.DELETE("/wells/:id", wellHandler.Delete)
		admin.GET("/reports/materials/consumption", reportHandler.Consumption)
	}

	return router
}
