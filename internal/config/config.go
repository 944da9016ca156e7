package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field maps 1:1 to a documented env var.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// MongoDB
	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	JWTRefreshHours    int    `mapstructure:"JWT_REFRESH_HOURS"`

	// Retry policy for transient store failures
	StoreRetryAttempts int `mapstructure:"STORE_RETRY_ATTEMPTS"`
	StoreRetryBaseMs   int `mapstructure:"STORE_RETRY_BASE_MS"`

	// Reporting
	ReportCacheTTLMin int `mapstructure:"REPORT_CACHE_TTL_MIN"`

	// Per-IP rate limits (requests per minute)
	RateLimitPerMin      int `mapstructure:"RATE_LIMIT_PER_MIN"`
	LoginRateLimitPerMin int `mapstructure:"LOGIN_RATE_LIMIT_PER_MIN"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development.
	// MONGO_URI points at a single-node replica set: multi-document
	// transactions and change streams both require one.
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("WORKER_POOL_SIZE", 3)
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017/?replicaSet=rs0")
	viper.SetDefault("MONGO_DATABASE", "jewelery")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 8)
	viper.SetDefault("JWT_REFRESH_HOURS", 24)
	viper.SetDefault("STORE_RETRY_ATTEMPTS", 3)
	viper.SetDefault("STORE_RETRY_BASE_MS", 100)
	viper.SetDefault("REPORT_CACHE_TTL_MIN", 15)
	viper.SetDefault("RATE_LIMIT_PER_MIN", 1000)
	viper.SetDefault("LOGIN_RATE_LIMIT_PER_MIN", 20)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
