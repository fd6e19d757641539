package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-reputation/internal/worker/model"
)

func swapRow(ts int64, pool string, usd float64, in, out string) model.Transaction {
	return model.Transaction{
		Action:         model.ACTION_SWAP,
		Timestamp:      float64(ts),
		PoolID:         pool,
		AmountUSD:      usd,
		TokenInSymbol:  in,
		TokenOutSymbol: out,
	}
}

func TestExtractSwapFeatures_NoSwapsIsZeroValued(t *testing.T) {
	assert.Nil(t, ExtractSwapFeatures(nil))

	f := ExtractSwapFeatures([]model.Transaction{row(model.ACTION_DEPOSIT, 1, "p", 10)})
	require.NotNil(t, f)
	assert.Equal(t, model.SwapFeatures{}, *f)

	score, b := ScoreSwap(f)
	require.NotNil(t, b)
	assert.Zero(t, score)
}

func TestExtractSwapFeatures(t *testing.T) {
	rows := []model.Transaction{
		swapRow(7200, "p1", 300, "WETH", "USDC"),
		row(model.ACTION_DEPOSIT, 100, "p9", 1000),
		swapRow(0, "p2", 100, "USDT", "PEPE"),
		swapRow(3600, "p1", 200, "USDC", "WETH"),
	}
	f := ExtractSwapFeatures(rows)
	require.NotNil(t, f)
	assert.InDelta(t, 600.0, f.TotalSwapVolume, 1e-9)
	assert.Equal(t, 3, f.NumSwaps)
	assert.Equal(t, 2, f.UniquePoolsSwapped)
	assert.InDelta(t, 200.0, f.AvgSwapSize, 1e-9)
	// USDC, USDT 稳定币; WETH, PEPE 非稳定币
	assert.Equal(t, 2*10+2*15, f.TokenDiversityScore)
	// 排序后间隔 1h, 1h
	assert.Equal(t, 100.0, f.SwapFrequencyScore)
}

func TestTokenDiversityScore_Capped(t *testing.T) {
	var swaps []model.Transaction
	for i := 0; i < 20; i++ {
		swaps = append(swaps, swapRow(int64(i), "p", 1, tokenSymbol(i), "FRAX"))
	}
	assert.Equal(t, 150, tokenDiversityScore(swaps))
}

func TestSwapFrequencyScore_Buckets(t *testing.T) {
	hour := int64(SECONDS_PER_HOUR)
	cases := []struct {
		gapHours int64
		want     float64
	}{
		{1, 100},
		{2, 80},
		{24, 80},
		{100, 60},
		{168, 60},
		{700, 40},
		{720, 40},
		{721, 20},
	}
	for _, c := range cases {
		swaps := []model.Transaction{
			swapRow(0, "p", 1, "A", "B"),
			swapRow(c.gapHours*hour, "p", 1, "A", "B"),
		}
		assert.Equal(t, c.want, swapFrequencyScore(swaps), "gap %dh", c.gapHours)
	}

	assert.Zero(t, swapFrequencyScore([]model.Transaction{swapRow(0, "p", 1, "A", "B")}))
}

func TestScoreSwap_ComponentsCapped(t *testing.T) {
	score, b := ScoreSwap(&model.SwapFeatures{
		TotalSwapVolume:     50_000_000,
		NumSwaps:            10_000,
		UniquePoolsSwapped:  40,
		TokenDiversityScore: 150,
		SwapFrequencyScore:  100,
	})
	assert.Equal(t, 250.0, b.VolumeScore)
	assert.Equal(t, 200.0, b.FrequencyScore)
	assert.Equal(t, 150.0, b.DiversityScore)
	assert.Equal(t, 100.0, b.ActivityScore)
	assert.Equal(t, 100.0, b.PoolDiversityScore)
	assert.Equal(t, 800.0, score)
	assert.Equal(t, score, b.TotalSwapScore)
}

func TestSwapFrequencyScore_FractionalGap(t *testing.T) {
	// 平均间隔 1 小时多 0.5 秒, 落在 24 小时档
	swaps := []model.Transaction{
		{Action: model.ACTION_SWAP, Timestamp: 0},
		{Action: model.ACTION_SWAP, Timestamp: SECONDS_PER_HOUR + 0.5},
	}
	assert.Equal(t, 80.0, swapFrequencyScore(swaps))
}
