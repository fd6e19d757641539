package scoring

import (
	"sort"

	"wallet-reputation/internal/worker/model"
)

const SECONDS_PER_HOUR = 3600.0

// Swap 打分权重与上限
const (
	swapVolumeNorm        = 50000.0
	swapVolumeMax         = 250.0
	swapFrequencyUnit     = 10.0
	swapFrequencyMax      = 200.0
	swapPoolDiversityUnit = 25.0
	swapPoolDiversityMax  = 100.0

	stableTokenWeight   = 10
	volatileTokenWeight = 15
	tokenDiversityMax   = 150
)

// 稳定币集合
var stableTokens = map[string]struct{}{
	"USDC": {},
	"USDT": {},
	"DAI":  {},
	"LUSD": {},
	"USDP": {},
	"TUSD": {},
	"FRAX": {},
}

// 平均 swap 间隔(小时)分档, 依次匹配
var swapGapBuckets = []struct {
	maxHours float64
	score    float64
}{
	{1, 100},
	{24, 80},
	{168, 60},
	{720, 40},
}

const swapGapFallbackScore = 20.0

// ExtractSwapFeatures 计算交易行为特征, rows 为空时返回 nil, 没有 swap 时返回零值特征
func ExtractSwapFeatures(rows []model.Transaction) *model.SwapFeatures {
	if len(rows) == 0 {
		return nil
	}

	swaps := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		if row.IsSwap() {
			swaps = append(swaps, row)
		}
	}
	features := &model.SwapFeatures{}
	if len(swaps) == 0 {
		return features
	}

	for _, s := range swaps {
		features.TotalSwapVolume += s.AmountUSD
	}
	features.NumSwaps = len(swaps)
	features.UniquePoolsSwapped = countUniquePools(swaps)
	features.AvgSwapSize = features.TotalSwapVolume / float64(features.NumSwaps)
	features.TokenDiversityScore = tokenDiversityScore(swaps)
	features.SwapFrequencyScore = swapFrequencyScore(swaps)
	return features
}

// tokenDiversityScore 稳定币 10 分, 其他 token 15 分, 上限 150
func tokenDiversityScore(swaps []model.Transaction) int {
	tokens := make(map[string]struct{})
	for _, s := range swaps {
		for _, symbol := range []string{s.TokenInSymbol, s.TokenOutSymbol} {
			if symbol == "" {
				continue
			}
			tokens[symbol] = struct{}{}
		}
	}

	var stable, volatile int
	for symbol := range tokens {
		if _, ok := stableTokens[symbol]; ok {
			stable++
		} else {
			volatile++
		}
	}
	return min(stable*stableTokenWeight+volatile*volatileTokenWeight, tokenDiversityMax)
}

// swapFrequencyScore 按时间排序后的平均间隔分档, 少于 2 笔为 0
func swapFrequencyScore(swaps []model.Transaction) float64 {
	if len(swaps) < 2 {
		return 0
	}

	ts := make([]float64, len(swaps))
	for i, s := range swaps {
		ts[i] = s.Timestamp
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })

	var gaps float64
	for i := 1; i < len(ts); i++ {
		gaps += (ts[i] - ts[i-1]) / SECONDS_PER_HOUR
	}
	avg := gaps / float64(len(ts)-1)

	for _, bucket := range swapGapBuckets {
		if avg <= bucket.maxHours {
			return bucket.score
		}
	}
	return swapGapFallbackScore
}

// ScoreSwap Swap 子分数, 最高 900
func ScoreSwap(features *model.SwapFeatures) (float64, *model.SwapBreakdown) {
	if features == nil {
		return 0, nil
	}

	b := &model.SwapBreakdown{
		VolumeScore:        capped(features.TotalSwapVolume/swapVolumeNorm*swapVolumeMax, swapVolumeMax),
		FrequencyScore:     capped(float64(features.NumSwaps)*swapFrequencyUnit, swapFrequencyMax),
		DiversityScore:     float64(features.TokenDiversityScore),
		ActivityScore:      features.SwapFrequencyScore,
		PoolDiversityScore: capped(float64(features.UniquePoolsSwapped)*swapPoolDiversityUnit, swapPoolDiversityMax),
	}
	b.TotalSwapScore = b.VolumeScore + b.FrequencyScore + b.DiversityScore + b.ActivityScore + b.PoolDiversityScore
	return b.TotalSwapScore, b
}
