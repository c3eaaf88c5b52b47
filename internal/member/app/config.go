package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/momentree/momentree/pkg/jwtx"
)

type Config struct {
	TokenSecret string        // Required: HMAC signing secret (min 32 bytes)
	Issuer      string        // Optional: issuer claim for tokens (default: momentree)
	AccessTTL   time.Duration // Optional: access token lifetime (default: 30m)
	RefreshTTL  time.Duration // Optional: refresh token lifetime (default: 4368h)

	DatabaseFile  string // Optional: path to SQLite database file (default: ./momentree.db)
	RedisAddr     string // Optional: Redis address for the session store (default: localhost:6379)
	RedisPassword string // Optional: Redis password
	RedisDB       int    // Optional: Redis database index (default: 0)

	FeedURL      string        // Optional: external feed URL; importer disabled when empty
	FeedInterval time.Duration // Optional: feed import interval (default: 1h)

	PushGatewayURL string // Optional: push gateway webhook URL; deliveries dropped when empty

	S3Region          string // Optional: media bucket region
	S3Bucket          string // Optional: media bucket name; uploads rejected when empty
	S3AccessKeyID     string // Optional: static credentials for the media bucket
	S3SecretAccessKey string
	S3Endpoint        string // Optional: custom endpoint for S3-compatible services

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	FeedRetention        time.Duration // Feed item retention window (default: 2160h)
}

// ErrMissingTokenSecret is returned when TOKEN_SECRET is unset. The service
// refuses to start without a signing key rather than generating one silently.
var ErrMissingTokenSecret = errors.New("TOKEN_SECRET is required")

func LoadConfig() (Config, error) {
	cfg := Config{
		TokenSecret: os.Getenv("TOKEN_SECRET"),
		Issuer:      getEnvOrDefault("TOKEN_ISSUER", "momentree"),
		AccessTTL:   getEnvDurationOrDefault("ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:  getEnvDurationOrDefault("REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),

		DatabaseFile:  getEnvOrDefault("DATABASE_FILE", "momentree.db"),
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvIntOrDefault("REDIS_DB", 0),

		FeedURL:      os.Getenv("FEED_URL"),
		FeedInterval: getEnvDurationOrDefault("FEED_INTERVAL", time.Hour),

		PushGatewayURL: os.Getenv("PUSH_GATEWAY_URL"),

		S3Region:          getEnvOrDefault("S3_REGION", "ap-northeast-2"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		FeedRetention:        getEnvDurationOrDefault("FEED_RETENTION", 90*24*time.Hour),
	}

	if cfg.TokenSecret == "" {
		return Config{}, ErrMissingTokenSecret
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
