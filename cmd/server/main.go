package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"ufa-alliance/internal/adapters/http/middleware"
	"ufa-alliance/internal/adapters/http/routes"
	"ufa-alliance/internal/adapters/persistence/models"
	"ufa-alliance/internal/adapters/persistence/repositories"
	"ufa-alliance/internal/config"
	"ufa-alliance/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// @title United Future Alliance API
// @version 1.0
// @description Membership, events and community engagement API for the United Future Alliance

// @contact.name API Support
// @contact.email support@unitedfuturealliance.org

// @host api.unitedfuturealliance.org
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// The local fallback store must always open; it is the floor the
	// app stands on when everything else is unconfigured or down.
	localDB, err := config.OpenLocal(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open local store: %v", err)
	}
	defer config.CloseDatabases()

	if err := models.AutoMigrate(localDB); err != nil {
		log.Fatalf("❌ Failed to migrate local store: %v", err)
	}

	// The remote database is optional: a failed connection downgrades
	// to local-only mode instead of aborting startup.
	var remoteDB = connectRemote(cfg)
	health := config.NewRemoteHealth(remoteDB != nil)

	// Seed the primary store
	primary := localDB
	if remoteDB != nil {
		primary = remoteDB
	}
	if err := config.NewSeeder(primary, cfg).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Background jobs: remote health probe + token cleanup
	cronService := services.NewCronService(health, remoteDB,
		repositories.NewRefreshTokenRepository(primary))
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "United Future Alliance API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, remoteDB, localDB, health, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// connectRemote connects and migrates the remote database when one is
// configured. Returns nil when the app should run local-only.
func connectRemote(cfg *config.Config) *gorm.DB {
	if !cfg.RemoteDB.Configured() {
		log.Println("⚠️ No remote database configured, running on local store only")
		return nil
	}

	db, err := config.ConnectRemote(cfg)
	if err != nil {
		log.Printf("⚠️ Remote database unavailable, running on local store only: %v", err)
		return nil
	}

	if err := models.AutoMigrate(db); err != nil {
		log.Printf("⚠️ Remote migration failed, running on local store only: %v", err)
		return nil
	}

	return db
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
