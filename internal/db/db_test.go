package db

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_PingsAndAppliesPoolSettings(t *testing.T) {
	t.Parallel()

	cfg := Config{
		URL:           filepath.Join(t.TempDir(), "blog.db"),
		MaxOpenConns:  3,
		MaxIdleConns:  1,
		RetryAttempts: 1,
	}
	sqlDB, err := open(context.Background(), "sqlite3", cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	assert.Equal(t, 3, sqlDB.Stats().MaxOpenConnections)
}

func TestOpen_RetriesThenFails(t *testing.T) {
	t.Parallel()

	cfg := Config{
		URL:           filepath.Join(t.TempDir(), "missing", "dir", "blog.db"),
		RetryAttempts: 2,
		RetryInterval: time.Millisecond,
	}
	_, err := open(context.Background(), "sqlite3", cfg)
	require.ErrorIs(t, err, ErrFailedToOpenDBConnection)
}

func TestOpen_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{
		URL:           filepath.Join(t.TempDir(), "missing", "blog.db"),
		RetryAttempts: 5,
		RetryInterval: time.Hour,
	}
	_, err := open(ctx, "sqlite3", cfg)
	require.ErrorIs(t, err, ErrFailedToOpenDBConnection)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := open(context.Background(), "nope", Config{})
	require.ErrorIs(t, err, ErrFailedToOpenDBConnection)
}

func TestOpen_NoWaitAfterLastAttempt(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := Config{
		URL:           filepath.Join(t.TempDir(), "missing", "blog.db"),
		RetryAttempts: 1,
		RetryInterval: time.Hour,
	}
	_, err := open(ctx, "sqlite3", cfg)
	require.ErrorIs(t, err, ErrFailedToOpenDBConnection)
	assert.NotErrorIs(t, err, context.DeadlineExceeded)
	assert.NoError(t, ctx.Err())
}

func TestMigrateDialect_CreatesPostsTable(t *testing.T) {
	t.Parallel()

	sqlDB, err := open(context.Background(), "sqlite3", Config{
		URL:           filepath.Join(t.TempDir(), "blog.db"),
		RetryAttempts: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, MigrateDialect(context.Background(), sqlDB, goose.DialectSQLite3, log))

	_, err = sqlDB.Exec(`INSERT INTO posts (id, slug, title) VALUES ($1, $2, $3)`,
		"0b8f4c4e-2f7a-4d55-9a51-3c1c2e0d9a10", "hello", "Hello")
	require.NoError(t, err)

	var published time.Time
	require.NoError(t, sqlDB.QueryRow(`SELECT published_at FROM posts WHERE slug = $1`, "hello").Scan(&published))
	assert.False(t, published.IsZero())

	// A second run finds nothing pending.
	require.NoError(t, MigrateDialect(context.Background(), sqlDB, goose.DialectSQLite3, log))
}

func TestMigrateDialect_UnknownDialect(t *testing.T) {
	t.Parallel()

	sqlDB, err := open(context.Background(), "sqlite3", Config{
		URL:           filepath.Join(t.TempDir(), "blog.db"),
		RetryAttempts: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	err = MigrateDialect(context.Background(), sqlDB, goose.Dialect("nope"), log)
	require.ErrorIs(t, err, ErrApplyMigrations)
}
