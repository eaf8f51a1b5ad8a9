package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fortuna/qbvalue/internal/api/rest"
	"github.com/fortuna/qbvalue/internal/pipeline"
	"github.com/fortuna/qbvalue/internal/publisher"
	"github.com/fortuna/qbvalue/internal/service"
	"github.com/fortuna/qbvalue/internal/store"
)

const (
	serviceName    = "qbvalue"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - QB Value Dataset Service", serviceName, serviceVersion)

	// Load configuration (.env is optional)
	_ = godotenv.Load()
	config := loadConfig()

	// Optional Postgres sink
	var db *store.Database
	if config.PostgresDSN != "" {
		var err error
		db, err = store.NewDatabase(config.PostgresDSN)
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := db.EnsureSchema(ctx); err != nil {
			cancel()
			log.Fatalf("Failed to create schema: %v", err)
		}
		cancel()
		log.Println("✓ Connected to Postgres sink")
	}

	// Optional Redis refresh publisher
	var pub *publisher.RedisPublisher
	if config.RedisURL != "" {
		var err error
		pub, err = publisher.NewRedisPublisher(config.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer pub.Close()
		log.Println("✓ Connected to Redis publisher")
	}

	pipe := pipeline.NewDefault(config.DraftDataPath)
	svc := service.NewModelService(pipe, db, pub)

	// Build the initial dataset. A failure is not fatal: the service starts
	// anyway and serves 503 until a refresh succeeds.
	refreshCtx, cancel := context.WithTimeout(context.Background(), config.RefreshTimeout)
	if err := svc.Refresh(refreshCtx); err != nil {
		log.Printf("⚠ Initial refresh failed: %v", err)
	} else {
		log.Println("✓ Initial dataset built")
	}
	cancel()

	// REST API server
	restServer := rest.NewServer(config.RESTPort, svc)
	go func() {
		log.Printf("Starting REST API server on port %s", config.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	log.Printf("✓ REST API server listening on :%s", config.RESTPort)
	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Printf("Shutting down %s gracefully...", serviceName)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}

type Config struct {
	RESTPort       string
	PostgresDSN    string
	RedisURL       string
	DraftDataPath  string
	RefreshTimeout time.Duration
}

func loadConfig() Config {
	timeout := 5 * time.Minute
	if v := os.Getenv("REFRESH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			timeout = d
		}
	}
	return Config{
		RESTPort:       getEnv("REST_PORT", "8080"),
		PostgresDSN:    getEnv("QBVALUE_DSN", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		DraftDataPath:  getEnv("DRAFT_DATA_PATH", "data/missing_draft_data.csv"),
		RefreshTimeout: timeout,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
