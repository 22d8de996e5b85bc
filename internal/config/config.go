package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	DatabaseURL             string
	DatabaseMaxOpenConns    int
	DatabaseMaxIdleConns    int
	DatabaseConnMaxLifetime time.Duration
	DatabaseRetryAttempts   int
	DatabaseRetryInterval   time.Duration
	DatabaseMigrate         bool

	// BlockingPoolSize bounds concurrent database work.
	BlockingPoolSize int

	S3Bucket   string
	AWSRegion  string
	S3Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Default().Warn("loading .env failed", "error", err)
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DatabaseURL:             getEnv("DATABASE_URL", ""),
		DatabaseMaxOpenConns:    getInt("DATABASE_MAX_OPEN_CONNS", 10),
		DatabaseMaxIdleConns:    getInt("DATABASE_MAX_IDLE_CONNS", 5),
		DatabaseConnMaxLifetime: getDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		DatabaseRetryAttempts:   getInt("DATABASE_RETRY_ATTEMPTS", 3),
		DatabaseRetryInterval:   getDuration("DATABASE_RETRY_INTERVAL", 2*time.Second),
		DatabaseMigrate:         getBool("DATABASE_MIGRATE", false),

		BlockingPoolSize: getInt("BLOCKING_POOL_SIZE", 16),

		S3Bucket:   getEnv("S3_BUCKET", ""),
		AWSRegion:  getEnv("AWS_REGION", "us-east-1"),
		S3Endpoint: getEnv("S3_ENDPOINT", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Default().Warn("invalid integer in environment, using default", "key", key, "value", value)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		slog.Default().Warn("invalid boolean in environment, using default", "key", key, "value", value)
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Default().Warn("invalid duration in environment, using default", "key", key, "value", value)
		return fallback
	}
	return d
}
