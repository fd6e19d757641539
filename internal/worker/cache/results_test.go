package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wallet-reputation/internal/worker/model"
)

func TestResultCachePutGet(t *testing.T) {
	c := NewResultCache(zap.NewNop(), time.Minute)

	zscore := "12.000000000000000000"
	c.Put(&model.ScoreEvent{WalletAddress: "0x742d35cc6634c0532925a3b8d4c9db96590e4265", ZScore: &zscore})
	c.Put(nil)
	c.Put(&model.ScoreEvent{})
	assert.Equal(t, 1, c.Len())

	got, ok := c.Get("0x742D35CC6634C0532925A3B8D4C9DB96590E4265")
	require.True(t, ok)
	assert.Equal(t, zscore, *got.ZScore)

	_, ok = c.Get("0x0000000000000000000000000000000000000001")
	assert.False(t, ok)
}

func TestResultCacheOverwrite(t *testing.T) {
	c := NewResultCache(zap.NewNop(), 0)

	errMsg := "No valid transactions found"
	c.Put(&model.ScoreEvent{WalletAddress: "wallet-a", Error: &errMsg})
	zscore := "1.000000000000000000"
	c.Put(&model.ScoreEvent{WalletAddress: "wallet-a", ZScore: &zscore})

	got, ok := c.Get("wallet-a")
	require.True(t, ok)
	assert.True(t, got.IsSuccess())

	c.Shutdown()
	assert.Equal(t, 0, c.Len())
}
