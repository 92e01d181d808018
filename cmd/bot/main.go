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

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dnd-dpr/internal/clients/dnd5e"
	"github.com/KirkDiggler/dnd-dpr/internal/config"
	"github.com/KirkDiggler/dnd-dpr/internal/handlers/discord"
	"github.com/KirkDiggler/dnd-dpr/internal/logging"
	"github.com/KirkDiggler/dnd-dpr/internal/repositories/reports"
	"github.com/KirkDiggler/dnd-dpr/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateBot(); err != nil {
		log.Fatalf("Invalid bot config: %v", err)
	}

	logCloser := logging.Setup(cfg.Log)
	defer func() {
		if err := logCloser.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}()

	log.Printf("Application ID: %s", cfg.Discord.AppID)
	if cfg.Discord.GuildID != "" {
		log.Printf("Guild ID: %s", cfg.Discord.GuildID)
	}

	// Create Discord session
	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	// Create D&D 5e API client
	dndClient, err := dnd5e.New(&dnd5e.Config{
		HttpClient: &http.Client{
			Timeout: cfg.DND5E.Timeout,
		},
	})
	if err != nil {
		log.Fatalf("Failed to create D&D 5e client: %v", err)
	}

	band, err := cfg.DPR.Band()
	if err != nil {
		log.Fatalf("Invalid accuracy mode: %v", err)
	}

	// Create service provider config
	providerConfig := &services.ProviderConfig{
		DNDClient:   dndClient,
		DefaultBand: band,
	}

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	// Try to connect to Redis if URL is provided
	if cfg.Redis.URL != "" {
		log.Printf("Connecting to Redis at: %s", cfg.Redis.URL)

		opts, parseErr := redis.ParseURL(cfg.Redis.URL)
		if parseErr != nil {
			log.Printf("Failed to parse Redis URL: %v", parseErr)
			log.Println("Falling back to in-memory report cache")
		} else {
			redisClient = redis.NewClient(opts)

			// Test connection
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			pingErr := redisClient.Ping(ctx).Err()
			cancel()

			if pingErr != nil {
				log.Printf("Failed to connect to Redis: %v", pingErr)
				log.Println("Falling back to in-memory report cache")
			} else {
				log.Println("Successfully connected to Redis")
				providerConfig.ReportRepository = reports.NewRedis(&reports.RedisConfig{
					Client: redisClient,
					TTL:    cfg.DPR.CacheTTL,
				})
			}
		}
	} else {
		log.Println("No REDIS_URL found, using in-memory report cache")
	}
	if providerConfig.ReportRepository == nil {
		providerConfig.ReportRepository = reports.NewInMemory(&reports.InMemoryConfig{TTL: cfg.DPR.CacheTTL})
	}

	// Create service provider
	serviceProvider, err := services.NewProvider(providerConfig)
	if err != nil {
		log.Fatalf("Failed to create services: %v", err)
	}

	// Create Discord handler
	handler := discord.NewHandler(&discord.HandlerConfig{
		ServiceProvider: serviceProvider,
	})

	// Register interaction handler
	dg.AddHandler(handler.HandleInteraction)

	// Open connection to Discord
	if err := dg.Open(); err != nil {
		log.Printf("Failed to open Discord connection: %v", err)
		return
	}
	defer func() {
		if clientErr := dg.Close(); clientErr != nil {
			log.Printf("Failed to close Discord connection: %v", clientErr)
		}
	}()

	// Use empty string for global commands, or set a specific guild ID for testing
	if err := handler.RegisterCommands(dg, cfg.Discord.GuildID); err != nil {
		log.Printf("Failed to register commands: %v", err)
		return
	}

	if cfg.Discord.GuildID != "" {
		log.Printf("Registered commands for guild: %s", cfg.Discord.GuildID)
	} else {
		log.Println("Registered global commands (may take up to 1 hour to propagate)")
	}

	fmt.Println("Bot is now running. Press CTRL-C to exit.")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	fmt.Println("Shutting down...")

	// Clean up Redis connection if we have one
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		} else {
			log.Println("Closed Redis connection")
		}
	}
}
