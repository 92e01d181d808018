package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

// Config holds all configuration for the application
type Config struct {
	Discord DiscordConfig
	Redis   RedisConfig
	DND5E   DND5EConfig
	DPR     DPRConfig
	Log     LogConfig
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string `env:"DISCORD_TOKEN"`
	AppID   string `env:"DISCORD_APP_ID"`
	GuildID string `env:"DISCORD_GUILD_ID"` // Optional: for guild-specific commands
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// URL is optional, reports stay in memory without it
	URL string `env:"REDIS_URL"`
}

// DND5EConfig holds D&D 5e API configuration
type DND5EConfig struct {
	Timeout time.Duration `env:"DND5E_API_TIMEOUT" envDefault:"10s"`
}

// DPRConfig holds the damage engine settings
type DPRConfig struct {
	AccuracyMode string        `env:"DPR_ACCURACY_MODE" envDefault:"equal"`
	CacheTTL     time.Duration `env:"DPR_CACHE_TTL" envDefault:"1h"`
}

// LogConfig controls where log output goes
type LogConfig struct {
	// File enables a rotating log file next to stderr
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"10"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "failed to parse environment")
	}

	if _, err := cfg.DPR.Band(); err != nil {
		return nil, err
	}
	if cfg.DPR.CacheTTL < 0 {
		return nil, dnderr.Validationf("DPR_CACHE_TTL %s cannot be negative", cfg.DPR.CacheTTL)
	}
	return cfg, nil
}

// Band parses the configured accuracy mode
func (c DPRConfig) Band() (difficulty.Band, error) {
	band, err := difficulty.ParseBand(c.AccuracyMode)
	if err != nil {
		return "", dnderr.WrapWithCode(err, dnderr.CodeValidation, fmt.Sprintf("DPR_ACCURACY_MODE %q is invalid", c.AccuracyMode))
	}
	return band, nil
}

// ValidateBot checks the settings only the Discord bot needs
func (c *Config) ValidateBot() error {
	if c.Discord.Token == "" {
		return dnderr.Validation("DISCORD_TOKEN is required")
	}
	if c.Discord.AppID == "" {
		return dnderr.Validation("DISCORD_APP_ID is required")
	}
	return nil
}
