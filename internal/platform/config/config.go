package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL      string
	Port             string
	IsProduction     bool
	EnableDBCheck    bool
	JWTSecret        string
	MigrationsPath   string
	AccountRolesFile string // Optional YAML file overriding the default role → account code mapping
	RateLimit        string // ulule/limiter formatted rate, e.g. "300-M"
	CORSOrigins      []string

	Outbox OutboxConfig
}

// OutboxConfig tunes the posting intent worker.
type OutboxConfig struct {
	Enabled      bool
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
	RetryBase    time.Duration // Delay before the second attempt; doubles per attempt
	RetryMax     time.Duration
	LeaseFor     time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("ACCOUNT_ROLES_FILE", "")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	viper.SetDefault("OUTBOX_ENABLED", true)
	viper.SetDefault("OUTBOX_POLL_INTERVAL", "5s")
	viper.SetDefault("OUTBOX_BATCH_SIZE", 20)
	viper.SetDefault("OUTBOX_MAX_ATTEMPTS", 8)
	viper.SetDefault("OUTBOX_RETRY_BASE", "30s")
	viper.SetDefault("OUTBOX_RETRY_MAX", "1h")
	viper.SetDefault("OUTBOX_LEASE", "2m")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.AccountRolesFile = viper.GetString("ACCOUNT_ROLES_FILE")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSOrigins = viper.GetStringSlice("CORS_ORIGINS")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.Outbox = OutboxConfig{
		Enabled:      viper.GetBool("OUTBOX_ENABLED"),
		PollInterval: durationOr("OUTBOX_POLL_INTERVAL", 5*time.Second),
		BatchSize:    viper.GetInt("OUTBOX_BATCH_SIZE"),
		MaxAttempts:  viper.GetInt("OUTBOX_MAX_ATTEMPTS"),
		RetryBase:    durationOr("OUTBOX_RETRY_BASE", 30*time.Second),
		RetryMax:     durationOr("OUTBOX_RETRY_MAX", time.Hour),
		LeaseFor:     durationOr("OUTBOX_LEASE", 2*time.Minute),
	}
	if cfg.Outbox.BatchSize <= 0 {
		cfg.Outbox.BatchSize = 20
	}
	if cfg.Outbox.MaxAttempts <= 0 {
		cfg.Outbox.MaxAttempts = 8
	}

	return cfg, nil
}

// durationOr parses a duration setting, falling back to def on a bad value.
func durationOr(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}
