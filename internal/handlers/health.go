package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/jeremyjsx/blog/internal/storage"
)

const healthTimeout = 5 * time.Second

type HealthDeps struct {
	DB *sql.DB
	// Storage is nil when post bodies live only in the database.
	Storage storage.Storage
	Logger  *slog.Logger
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func Health(deps *HealthDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		checks := map[string]string{}
		status := "healthy"

		if err := deps.DB.PingContext(ctx); err != nil {
			deps.Logger.WarnContext(ctx, "health check failed", "check", "db", "error", err)
			checks["db"] = "unhealthy"
			status = "unhealthy"
		} else {
			checks["db"] = "ok"
		}

		if deps.Storage != nil {
			if _, err := deps.Storage.Exists(ctx, "__health__"); err != nil {
				deps.Logger.WarnContext(ctx, "health check failed", "check", "s3", "error", err)
				checks["s3"] = "unhealthy"
				if status == "healthy" {
					status = "degraded"
				}
			} else {
				checks["s3"] = "ok"
			}
		} else {
			checks["s3"] = "skipped"
		}

		code := http.StatusOK
		if status == "unhealthy" {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, healthResponse{Status: status, Checks: checks})
	}
}
