package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dnd-dpr/internal/repositories/reports"
)

func main() {
	ctx := context.Background()

	// Set up Redis
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)
	defer client.Close()

	// Test connection
	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}

	repo := reports.NewRedis(&reports.RedisConfig{Client: client})
	list, err := repo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list reports: %v", err)
	}

	fmt.Printf("Found %d reports:\n", len(list))
	for _, r := range list {
		failures := 0
		for _, s := range r.Series {
			failures += len(s.Failures)
		}
		fmt.Printf("  %s  %-6s  %d series  %d failures  %s\n",
			r.ID, r.Band, len(r.Series), failures, r.CreatedAt.Format("2006-01-02 15:04:05"))
		for _, s := range r.Series {
			fmt.Printf("      %s\n", s.Label)
		}
	}
}
