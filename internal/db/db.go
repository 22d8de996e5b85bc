// Package db opens the PostgreSQL connection pool and applies schema migrations.
package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
)

var (
	ErrFailedToOpenDBConnection = errors.New("db: failed to open database connection")
	ErrApplyMigrations          = errors.New("db migrator: failed to apply migrations")
)

type Config struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	RetryAttempts   int
	RetryInterval   time.Duration
}

// Open returns a pool that has answered a ping. Failed pings are retried with a
// growing wait: attempt i waits i*RetryInterval. The last failure returns at once.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	return open(ctx, "postgres", cfg)
}

func open(ctx context.Context, driver string, cfg Config) (*sql.DB, error) {
	sqlDB, err := sql.Open(driver, cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	attempts := max(cfg.RetryAttempts, 1)
	var pingErr error
	for i := range attempts {
		if pingErr = sqlDB.PingContext(ctx); pingErr == nil {
			return sqlDB, nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			_ = sqlDB.Close()
			return nil, errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	_ = sqlDB.Close()
	return nil, errors.Join(ErrFailedToOpenDBConnection, pingErr)
}
