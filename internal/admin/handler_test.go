// InstaBids | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJanitor struct {
	deleted int64
	err     error
}

func (s *stubJanitor) DeleteExpired(context.Context) (int64, error) {
	return s.deleted, s.err
}

type stubCounts struct {
	counts MarketplaceCounts
	err    error
}

func (s *stubCounts) MarketplaceCounts(context.Context) (MarketplaceCounts, error) {
	return s.counts, s.err
}

func passthrough(next http.Handler) http.Handler { return next }

func testRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.RegisterRoutes(r, passthrough, passthrough)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func TestGetSystemStats(t *testing.T) {
	h := NewHandler(HandlerConfig{
		DBStats: func() sql.DBStats {
			return sql.DBStats{MaxOpenConnections: 25, OpenConnections: 3}
		},
		DBPing:    func(context.Context) error { return nil },
		RedisPing: func(context.Context) error { return errors.New("down") },
	})

	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(
		rec,
		httptest.NewRequest(http.MethodGet, "/admin/stats", nil),
	)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats SystemStatsResponse
	decodeData(t, rec, &stats)

	assert.True(t, stats.Database.Healthy)
	require.NotNil(t, stats.Database.Stats)
	assert.Equal(t, 25, stats.Database.Stats.MaxOpenConnections)
	assert.False(t, stats.Redis.Healthy)
	assert.Nil(t, stats.Redis.Stats)
	assert.NotEmpty(t, stats.Runtime.GoVersion)
	assert.Positive(t, stats.Runtime.NumCPU)
}

func TestGetMarketplaceStats(t *testing.T) {
	h := NewHandler(HandlerConfig{
		Counts: &stubCounts{counts: MarketplaceCounts{
			Users:      12,
			Properties: 40,
			Projects:   9,
			OpenBids:   4,
			Quotes:     17,
		}},
	})

	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(
		rec,
		httptest.NewRequest(http.MethodGet, "/admin/stats/marketplace", nil),
	)
	require.Equal(t, http.StatusOK, rec.Code)

	var counts MarketplaceCounts
	decodeData(t, rec, &counts)
	assert.Equal(t, int64(40), counts.Properties)
	assert.Equal(t, int64(4), counts.OpenBids)
}

func TestGetMarketplaceStatsError(t *testing.T) {
	h := NewHandler(HandlerConfig{
		Counts: &stubCounts{err: errors.New("db offline")},
	})

	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(
		rec,
		httptest.NewRequest(http.MethodGet, "/admin/stats/marketplace", nil),
	)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPurgeExpiredTokens(t *testing.T) {
	h := NewHandler(HandlerConfig{Tokens: &stubJanitor{deleted: 42}})

	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(
		rec,
		httptest.NewRequest(http.MethodPost, "/admin/maintenance/expired-tokens", nil),
	)
	require.Equal(t, http.StatusOK, rec.Code)

	var result PurgeResult
	decodeData(t, rec, &result)
	assert.Equal(t, int64(42), result.Deleted)
}

func TestPurgeExpiredTokensUnconfigured(t *testing.T) {
	h := NewHandler(HandlerConfig{})

	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(
		rec,
		httptest.NewRequest(http.MethodPost, "/admin/maintenance/expired-tokens", nil),
	)
	require.Equal(t, http.StatusOK, rec.Code)

	var result PurgeResult
	decodeData(t, rec, &result)
	assert.Zero(t, result.Deleted)
}
