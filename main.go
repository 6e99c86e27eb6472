package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eyad6789/Bill-to-OriginCertification/config"
	"github.com/eyad6789/Bill-to-OriginCertification/handler"
	"github.com/eyad6789/Bill-to-OriginCertification/middleware"
	"github.com/eyad6789/Bill-to-OriginCertification/pkg/logger"
	"github.com/eyad6789/Bill-to-OriginCertification/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// The extractor is optional: without an API key only manual generation
	// works.
	var extractor service.Extractor
	if cfg.Gemini.APIKey != "" {
		geminiExtractor, err := service.NewGeminiExtractor(context.Background(), &cfg.Gemini)
		if err != nil {
			slog.Error("failed to initialize extractor", "error", err)
			os.Exit(1)
		}
		extractor = geminiExtractor
	} else {
		slog.Warn("no Gemini API key configured, document extraction disabled")
	}

	// Renderers
	pdfRenderer := service.NewPDFRenderer(cfg.Render.DeclarationPlace)
	var docxRenderer service.DocumentRenderer
	if cfg.Render.DocxTemplate != "" {
		docxRenderer = service.NewDocxRenderer(cfg.Render.DocxTemplate)
		slog.Info("docx output enabled", "template", cfg.Render.DocxTemplate)
	}

	// Optional bundle archival
	var archive *service.ArchiveService
	if cfg.ArchiveEnabled() {
		archive, err = service.NewArchiveService(&cfg.Minio)
		if err != nil {
			slog.Error("failed to initialize archive service", "error", err)
			os.Exit(1)
		}
		if err := archive.EnsureBucket(context.Background()); err != nil {
			slog.Error("failed to ensure archive bucket", "error", err)
			os.Exit(1)
		}
		slog.Info("bundle archival enabled", "bucket", cfg.Minio.Bucket)
	}

	calculator := service.NewCalculator()
	generator := service.NewGenerator(extractor, calculator, pdfRenderer, docxRenderer, cfg.MaxUploadBytes())
	store := service.NewGenerationStore(cfg.Store.MaxGenerations)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	certificateHandler := handler.NewCertificateHandler(generator, store, archive)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware
	router.MaxMultipartMemory = cfg.MaxUploadBytes()

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(corsMiddleware())                       // CORS
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)
		protected.POST("/certificates/generate", certificateHandler.Generate)
		protected.POST("/certificates/generate-combined", certificateHandler.GenerateCombined)
		protected.POST("/certificates/generate-manual", certificateHandler.GenerateManual)
		protected.GET("/certificates", certificateHandler.List)
		protected.GET("/certificates/:id", certificateHandler.Get)
		protected.DELETE("/certificates/:id", certificateHandler.Delete)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  120 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
