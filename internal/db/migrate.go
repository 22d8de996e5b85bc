package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the posts schema up to date.
func Migrate(ctx context.Context, sqlDB *sql.DB, log *slog.Logger) error {
	return MigrateDialect(ctx, sqlDB, goose.DialectPostgres, log)
}

// MigrateDialect applies the same migrations for another SQL dialect, e.g.
// goose.DialectSQLite3 in tests. It keeps no package-level goose state, so
// concurrent callers with separate databases are safe.
func MigrateDialect(ctx context.Context, sqlDB *sql.DB, dialect goose.Dialect, log *slog.Logger) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	provider, err := goose.NewProvider(dialect, sqlDB, fsys,
		goose.WithSlog(log),
		goose.WithDisableGlobalRegistry(true),
	)
	if err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}
	for _, r := range results {
		log.InfoContext(ctx, "migration applied",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration_ms", r.Duration.Milliseconds(),
		)
	}
	return nil
}
