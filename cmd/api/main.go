package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mealstash/backend/config"
	"github.com/mealstash/backend/internal/database"
	"github.com/mealstash/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Redis is optional; without it pending imports are lost on restart,
	// which is acceptable for single-process installs.
	redisClient := tryRedis(cfg)

	srv := server.New(cfg, db, redisClient)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

func tryRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisHost == "" {
		log.Println("Redis not configured, keeping pending imports in memory")
		return nil
	}
	client, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, keeping pending imports in memory: %v", err)
		return nil
	}
	return client
}
