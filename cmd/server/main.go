/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the household chores server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load chores.toml (defaults if absent)
  2. Apply command-line flag overrides
  3. Initialize SQLite store
  4. Seed household users from config when the store has none
  5. Configure HTTP router
  6. Start the override pruner
  7. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  Config file path (default: chores.toml)
  -port    HTTP server port (overrides [server] port)
  -db      SQLite database path (overrides [storage] path)
           Use ":memory:" for in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the pruner
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/chores.db"

  # Run with in-memory database
  ./server -db=":memory:"

SEE ALSO:
  - config/config.go: Configuration file
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/henleyisabel12/teaco-chores/api"
	"github.com/henleyisabel12/teaco-chores/chores"
	"github.com/henleyisabel12/teaco-chores/config"
	"github.com/henleyisabel12/teaco-chores/store/sqlite"
)

func main() {
	// Flags
	configPath := flag.String("config", "chores.toml", "Config file path")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}

	// Initialize store
	store, err := sqlite.New(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	svc := chores.NewService(store, cfg.Engine())
	if err := seedUsers(context.Background(), svc, cfg); err != nil {
		log.Printf("[Server] Warning: failed to seed users: %v", err)
	}

	handler := api.NewHandler(svc)
	router := api.NewRouter(handler, cfg.Server.AllowedOrigins)

	pruner := api.NewOverridePruner(svc)
	pruner.RetentionDays = cfg.Maintenance.RetentionDays
	pruner.CheckInterval = time.Duration(cfg.Maintenance.IntervalHours) * time.Hour
	pruner.Start()
	defer pruner.Stop()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("[Server] Starting on http://localhost:%d (epoch %s, db %s)", cfg.Server.Port, cfg.Epoch, cfg.Storage.Path)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Server] Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("[Server] Stopped")
}

// seedUsers saves the configured household if the database has no users yet.
func seedUsers(ctx context.Context, svc *chores.Service, cfg *config.Config) error {
	users := cfg.HouseholdUsers()
	if len(users) == 0 {
		return nil
	}
	existing, err := svc.Store.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	_, err = svc.SaveUsers(ctx, users)
	return err
}
