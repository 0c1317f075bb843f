package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"

	"github.com/sortetech/recarga-sorte-backend/api/routes"
	"github.com/sortetech/recarga-sorte-backend/internal/config"
	"github.com/sortetech/recarga-sorte-backend/internal/drawcal"
	"github.com/sortetech/recarga-sorte-backend/internal/handlers"
	"github.com/sortetech/recarga-sorte-backend/internal/matching"
	"github.com/sortetech/recarga-sorte-backend/internal/repositories"
	mongorepo "github.com/sortetech/recarga-sorte-backend/internal/repositories/mongodb"
	"github.com/sortetech/recarga-sorte-backend/internal/services"
	"github.com/sortetech/recarga-sorte-backend/pkg/mongodb"
)

func main() {
	// Load .env if present; real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	var entryRepo repositories.EntryRepository = mongorepo.NewEntryRepository(db)
	var rechargeRepo repositories.RechargeRepository = mongorepo.NewRechargeRepository(db)
	var runRepo repositories.ValidationRunRepository = mongorepo.NewValidationRunRepository(db)
	var adminUserRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)

	// Draw calendar and matching engine
	calendar := drawcal.New(cfg.DrawCalendar.ToCalendarConfig())
	engine := matching.NewEngine(calendar)

	// Services
	authService := services.NewAuthService(adminUserRepo, cfg)
	entryService := services.NewEntryService(entryRepo)
	rechargeService := services.NewRechargeService(rechargeRepo)
	validationService := services.NewValidationService(engine, entryRepo, rechargeRepo, runRepo)

	// Handlers
	handlerDeps := routes.HandlerDependencies{
		AuthHandler:       handlers.NewAuthHandler(authService),
		EntryHandler:      handlers.NewEntryHandler(entryService),
		RechargeHandler:   handlers.NewRechargeHandler(rechargeService),
		ValidationHandler: handlers.NewValidationHandler(validationService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
