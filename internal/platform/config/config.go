package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string `mapstructure:"PORT" validate:"required,numeric"`
	IsProduction bool   `mapstructure:"IS_PRODUCTION"`
	JWTSecret    string `mapstructure:"JWT_SECRET" validate:"required,min=16"`

	// Remote banking backend
	BackendBaseURL string        `mapstructure:"BACKEND_BASE_URL" validate:"required,url"`
	BackendTimeout time.Duration `mapstructure:"BACKEND_TIMEOUT" validate:"gt=0"`

	// Settlement
	SettlementLockTTL   time.Duration `mapstructure:"SETTLEMENT_LOCK_TTL" validate:"gt=0"`
	SettlementRateLimit string        `mapstructure:"SETTLEMENT_RATE_LIMIT" validate:"required"`
	RedisURL            string        `mapstructure:"REDIS_URL" validate:"omitempty,url"`

	// Browser UI
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS" validate:"min=1,dive,required"`
	DefaultLocale      string   `mapstructure:"DEFAULT_LOCALE" validate:"required,bcp47_language_tag"`

	// History
	HistoryPageSize          int `mapstructure:"HISTORY_PAGE_SIZE" validate:"gt=0,lte=500"`
	HistoryParallelThreshold int `mapstructure:"HISTORY_PARALLEL_THRESHOLD" validate:"gte=0"`

	// Analytics
	PosthogAPIKey   string `mapstructure:"POSTHOG_API_KEY"`
	PosthogEndpoint string `mapstructure:"POSTHOG_ENDPOINT" validate:"omitempty,url"`
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8000")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("BACKEND_BASE_URL", "http://localhost:8080")
	v.SetDefault("BACKEND_TIMEOUT", "10s")
	v.SetDefault("SETTLEMENT_LOCK_TTL", "2m")
	v.SetDefault("SETTLEMENT_RATE_LIMIT", "10-M")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("DEFAULT_LOCALE", "ko")
	v.SetDefault("HISTORY_PAGE_SIZE", 20)
	v.SetDefault("HISTORY_PARALLEL_THRESHOLD", 256)
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:                     v.GetString("PORT"),
		IsProduction:             v.GetBool("IS_PRODUCTION"),
		JWTSecret:                v.GetString("JWT_SECRET"),
		BackendBaseURL:           strings.TrimRight(v.GetString("BACKEND_BASE_URL"), "/"),
		BackendTimeout:           v.GetDuration("BACKEND_TIMEOUT"),
		SettlementLockTTL:        v.GetDuration("SETTLEMENT_LOCK_TTL"),
		SettlementRateLimit:      v.GetString("SETTLEMENT_RATE_LIMIT"),
		RedisURL:                 v.GetString("REDIS_URL"),
		CORSAllowedOrigins:       splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		DefaultLocale:            v.GetString("DEFAULT_LOCALE"),
		HistoryPageSize:          v.GetInt("HISTORY_PAGE_SIZE"),
		HistoryParallelThreshold: v.GetInt("HISTORY_PARALLEL_THRESHOLD"),
		PosthogAPIKey:            v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:          v.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.PosthogAPIKey == "" {
		log.Println("Warning: POSTHOG_API_KEY not set. Analytics events will not be sent.")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
