package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/kavyamehta/mindscribe/internal/ai"
	"github.com/kavyamehta/mindscribe/internal/config"
	"github.com/kavyamehta/mindscribe/internal/db"
	routes "github.com/kavyamehta/mindscribe/internal/http"
	"github.com/kavyamehta/mindscribe/internal/identity"
	"github.com/kavyamehta/mindscribe/internal/models"
)

const geminiModel = "gemini-2.5-flash"

func main() {
	// Loads .env first; in production the variables are set directly.
	cfg := config.New()

	ctx := context.Background()

	// 1. Initialize Database
	database, err := db.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 2. Run Migrations
	log.Println("Running database migrations...")
	if err := database.AutoMigrate(&models.DiaryEntry{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations complete.")

	// 3. Analysis gateway. No key is not fatal: the create-entry
	// endpoint reports the missing configuration, the insight endpoint
	// degrades to null.
	gateway := ai.NewGateway(nil)
	if cfg.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY not set, entry analysis disabled")
	} else {
		llm, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.GeminiAPIKey),
			googleai.WithDefaultModel(geminiModel),
		)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		gateway = ai.NewGateway(llm)
	}

	// 4. Users service client
	users := identity.NewClient(cfg.UsersServiceURL, cfg.UsersServiceAPIKey)

	// 5. Initialize Gin Router (SetupRoutes installs logging/recovery)
	router := gin.New()

	// 6. Setup Routes
	routes.SetupRoutes(router, database, gateway, users, cfg.CORSOrigin)

	// 7. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Channel to listen for OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
