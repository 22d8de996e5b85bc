package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "DATABASE_URL", "DATABASE_MAX_OPEN_CONNS",
		"DATABASE_MIGRATE", "BLOCKING_POOL_SIZE", "S3_BUCKET", "AWS_REGION",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.DatabaseMaxOpenConns)
	assert.False(t, cfg.DatabaseMigrate)
	assert.Equal(t, 16, cfg.BlockingPoolSize)
	assert.Equal(t, "us-east-1", cfg.AWSRegion)
	assert.Empty(t, cfg.S3Bucket)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://blog@localhost/blog")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "25")
	t.Setenv("DATABASE_CONN_MAX_LIFETIME", "5m")
	t.Setenv("DATABASE_MIGRATE", "true")
	t.Setenv("BLOCKING_POOL_SIZE", "4")
	t.Setenv("S3_BUCKET", "posts")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres://blog@localhost/blog", cfg.DatabaseURL)
	assert.Equal(t, 25, cfg.DatabaseMaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.DatabaseConnMaxLifetime)
	assert.True(t, cfg.DatabaseMigrate)
	assert.Equal(t, 4, cfg.BlockingPoolSize)
	assert.Equal(t, "posts", cfg.S3Bucket)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "lots")
	t.Setenv("DATABASE_MIGRATE", "maybe")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 10, cfg.DatabaseMaxOpenConns)
	assert.False(t, cfg.DatabaseMigrate)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}
