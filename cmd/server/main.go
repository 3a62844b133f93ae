package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitstreet-core/internal/application/service"
	"gitstreet-core/internal/config"
	"gitstreet-core/internal/github"
	infraGitHub "gitstreet-core/internal/infrastructure/github"
	"gitstreet-core/internal/infrastructure/narrative"
	"gitstreet-core/internal/openai"
	"gitstreet-core/internal/presentation/handlers"
	"gitstreet-core/internal/scheduler"

	_ "gitstreet-core/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title GitStreet Core API
// @version 1.0
// @description A storytelling backend that turns repository activity into surreal city scenes
// @contact.name GitStreet Team

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// External service clients
	githubClient := github.NewClient(&cfg.GitHub)
	var generator narrative.Generator
	if cfg.Story.OpenAIAPIKey != "" {
		generator = openai.NewClient(&cfg.Story)
	} else {
		log.Println("OPENAI_API_KEY not set, serving fallback narratives only")
	}

	// Infrastructure implementations of domain services
	githubService := infraGitHub.NewGitHubService(githubClient)
	storyService := narrative.NewStoryService(generator)

	// Application layer
	snapshotService := service.NewSnapshotService(githubService, storyService, cfg.Scheduler.CommitPageSize)

	// HTTP handlers
	healthHandler := handlers.NewHealthHandler()
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService)

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()

	// Add middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Routes
	router.GET("/health", healthHandler.Health)
	router.GET("/current", snapshotHandler.GetCurrent)
	router.GET("/next", snapshotHandler.GetNext)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Populate the snapshot pair before the first scheduled refresh; a
	// failure here is retried by the scheduler, not fatal.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := snapshotService.Refresh(startupCtx); err != nil {
		log.Printf("Initial refresh failed, scheduler will retry: %v", err)
	}
	cancelStartup()

	// Scheduler drives refresh and advance at independent intervals
	jobs := scheduler.New(2 * time.Minute)
	if err := jobs.AddInterval("refresh", cfg.Scheduler.RefreshInterval, snapshotService.Refresh); err != nil {
		log.Fatalf("Failed to schedule refresh: %v", err)
	}
	if err := jobs.AddInterval("advance", cfg.Scheduler.AdvanceInterval, snapshotService.Advance); err != nil {
		log.Fatalf("Failed to schedule advance: %v", err)
	}
	jobs.Start()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	jobs.Stop()

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
