package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMockStorage struct {
	exists func(ctx context.Context, key string) (bool, error)
}

func (m *testMockStorage) Download(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("not used")
}

func (m *testMockStorage) Exists(ctx context.Context, key string) (bool, error) {
	if m.exists != nil {
		return m.exists(ctx, key)
	}
	return false, nil
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "health.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func decodeHealth(t *testing.T, body io.Reader) healthResponse {
	t.Helper()
	var resp healthResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestHealth(t *testing.T) {
	t.Run("healthy without storage", func(t *testing.T) {
		t.Parallel()

		h := Health(&HealthDeps{DB: openSQLite(t), Logger: testLogger})
		rec := get(t, h, "/health")

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeHealth(t, rec.Body)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, map[string]string{"db": "ok", "s3": "skipped"}, resp.Checks)
	})

	t.Run("storage failure degrades", func(t *testing.T) {
		t.Parallel()

		st := &testMockStorage{exists: func(context.Context, string) (bool, error) {
			return false, errors.New("access denied")
		}}
		h := Health(&HealthDeps{DB: openSQLite(t), Storage: st, Logger: testLogger})
		rec := get(t, h, "/health")

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeHealth(t, rec.Body)
		assert.Equal(t, "degraded", resp.Status)
		assert.Equal(t, "unhealthy", resp.Checks["s3"])
	})

	t.Run("database down", func(t *testing.T) {
		t.Parallel()

		sqlDB := openSQLite(t)
		require.NoError(t, sqlDB.Close())
		h := Health(&HealthDeps{DB: sqlDB, Storage: &testMockStorage{}, Logger: testLogger})
		rec := get(t, h, "/health")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		resp := decodeHealth(t, rec.Body)
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "unhealthy", resp.Checks["db"])
		assert.Equal(t, "ok", resp.Checks["s3"])
	})
}
