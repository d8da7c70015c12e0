package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dsa_sheet/internal/api"
	"dsa_sheet/internal/app/service"
	"dsa_sheet/internal/common/security"
	"dsa_sheet/internal/domain/repository"
	"dsa_sheet/internal/platform/cache"
	"dsa_sheet/internal/platform/config"
	"dsa_sheet/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Migrate schema and seed the topic catalog. Both are fatal on failure.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()
	if err := database.Migrate(startupCtx, database.DB); err != nil {
		log.Fatalf("Schema migration failed: %v", err)
	}
	if err := database.Seed(startupCtx, database.DB); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	fmt.Println("Schema migrated and seeded.")

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	topicRepo := repository.NewPgTopicRepository(database.DB)
	problemRepo := repository.NewPgProblemRepository(database.DB)
	progressRepo := repository.NewPgProgressRepository(database.DB)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo)
	catalogService := service.NewCatalogService(topicRepo, problemRepo, cache.RDB, config.AppConfig.CatalogCacheTTL)
	progressService := service.NewProgressService(progressRepo)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, catalogService, progressService, config.AppConfig.CORSOrigin)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
