package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is loaded once in main and handed to the components that need it.
// Nothing below main reads the environment directly.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration

	StripeSecretKey     string
	StripeWebhookSecret string
	StripeCurrency      string
	GatewayTimeout      time.Duration
	WebhookTolerance    time.Duration

	RedisAddr     string
	RateLimit     int
	RateWindow    time.Duration
	ReminderEvery time.Duration
	ReminderAhead time.Duration

	CORSOrigins string
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:                envOrDefault("ADDR", ":8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTTTL:              durationOrDefault("JWT_TTL", 24*time.Hour),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripeCurrency:      envOrDefault("STRIPE_CURRENCY", "usd"),
		GatewayTimeout:      durationOrDefault("GATEWAY_TIMEOUT", 10*time.Second),
		WebhookTolerance:    durationOrDefault("STRIPE_WEBHOOK_TOLERANCE", 5*time.Minute),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RateLimit:           intOrDefault("RATE_LIMIT", 60),
		RateWindow:          durationOrDefault("RATE_WINDOW", time.Minute),
		ReminderEvery:       durationOrDefault("REMINDER_EVERY", 15*time.Minute),
		ReminderAhead:       durationOrDefault("REMINDER_AHEAD", 24*time.Hour),
		CORSOrigins:         os.Getenv("CORS_ORIGINS"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	return cfg, nil
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func durationOrDefault(name string, def time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func intOrDefault(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
