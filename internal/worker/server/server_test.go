package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wallet-reputation/internal/worker/cache"
	"wallet-reputation/internal/worker/config"
	"wallet-reputation/internal/worker/model"
	"wallet-reputation/internal/worker/stats"
)

func newTestServer(t *testing.T) (*StatusServer, *stats.Counters, *cache.ResultCache) {
	t.Helper()
	start := time.Unix(1704067200, 0)
	now := start
	counters := stats.NewWithClock(func() time.Time { return now })
	now = start.Add(1500 * time.Millisecond)

	results := cache.NewResultCache(zap.NewNop(), time.Minute)
	cfg := config.Config{Service: config.ServiceConfig{Name: "defi-reputation-service", Environment: "test"}}
	return NewStatusServer(cfg, zap.NewNop(), counters, results), counters, results
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestStatusServer_RootAndHealth(t *testing.T) {
	s, _, _ := newTestServer(t)
	h := s.Handler()

	rec, body := get(t, h, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "defi-reputation-service", body["service"])
	assert.Equal(t, "running", body["status"])
	assert.Equal(t, "test", body["environment"])

	rec, body = get(t, h, "/api/v1/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])

	// 未注册的路径由 ServeMux 返回纯文本 404
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusServer_Stats(t *testing.T) {
	s, counters, _ := newTestServer(t)
	counters.IncConsumed()
	counters.IncConsumed()
	counters.IncScored()
	counters.IncFailed()
	counters.IncProduced()
	counters.IncProduced()

	rec, body := get(t, s.Handler(), "/api/v1/stats")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 1.5, body["uptime_seconds"], 1e-9)
	assert.EqualValues(t, 2, body["total_consumed"])
	assert.EqualValues(t, 1, body["total_scored"])
	assert.EqualValues(t, 1, body["total_failed"])
	assert.EqualValues(t, 2, body["total_produced"])
}

func TestStatusServer_Wallet(t *testing.T) {
	s, _, results := newTestServer(t)
	zscore := "65.000000000000000000"
	results.Put(&model.ScoreEvent{WalletAddress: "0x742d35cc6634c0532925a3b8d4c9db96590e4265", ZScore: &zscore})

	rec, body := get(t, s.Handler(), "/api/v1/wallets/0x742D35CC6634C0532925A3B8D4C9DB96590E4265")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, zscore, body["zscore"])

	rec, body = get(t, s.Handler(), "/api/v1/wallets/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "wallet not found", body["error"])
}

func TestStatusServer_Disabled(t *testing.T) {
	s := NewStatusServer(config.Config{}, zap.NewNop(), stats.New(), nil)
	s.Run()
	assert.NoError(t, s.Stop(t.Context()))
}
