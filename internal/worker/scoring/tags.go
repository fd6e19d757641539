package scoring

import (
	"wallet-reputation/internal/worker/model"
)

const (
	TAG_WHALE_LP              = "Whale LP"
	TAG_LARGE_LP              = "Large LP"
	TAG_MEDIUM_LP             = "Medium LP"
	TAG_SMALL_LP              = "Small LP"
	TAG_LONG_TERM_HOLDER      = "Long-term Holder"
	TAG_MEDIUM_TERM_HOLDER    = "Medium-term Holder"
	TAG_SHORT_TERM_HOLDER     = "Short-term Holder"
	TAG_WHALE_TRADER          = "Whale Trader"
	TAG_LARGE_TRADER          = "Large Trader"
	TAG_ACTIVE_TRADER         = "Active Trader"
	TAG_CASUAL_TRADER         = "Casual Trader"
	TAG_HIGH_FREQUENCY_TRADER = "High Frequency Trader"
	TAG_REGULAR_TRADER        = "Regular Trader"
	TAG_DIVERSIFIED_TRADER    = "Diversified Trader"
	TAG_MULTI_POOL_LP         = "Multi-Pool LP"
)

type threshold struct {
	above float64
	tag   string
}

var (
	lpSizeTiers = []threshold{
		{100000, TAG_WHALE_LP},
		{10000, TAG_LARGE_LP},
		{1000, TAG_MEDIUM_LP},
		{0, TAG_SMALL_LP},
	}
	holdingTiers = []threshold{
		{90, TAG_LONG_TERM_HOLDER},
		{30, TAG_MEDIUM_TERM_HOLDER},
		{0, TAG_SHORT_TERM_HOLDER},
	}
	swapSizeTiers = []threshold{
		{500000, TAG_WHALE_TRADER},
		{50000, TAG_LARGE_TRADER},
		{5000, TAG_ACTIVE_TRADER},
		{0, TAG_CASUAL_TRADER},
	}
	swapCountTiers = []threshold{
		{100, TAG_HIGH_FREQUENCY_TRADER},
		{20, TAG_REGULAR_TRADER},
	}
)

// firstTier 返回第一个严格大于阈值的标签
func firstTier(v float64, tiers []threshold) (string, bool) {
	for _, t := range tiers {
		if v > t.above {
			return t.tag, true
		}
	}
	return "", false
}

// GenerateTags 根据 LP 与 Swap 特征生成用户标签, 每个维度最多一个, 总数不超过 5
func GenerateTags(lp *model.LPFeatures, swap *model.SwapFeatures) []string {
	if lp == nil {
		lp = &model.LPFeatures{}
	}
	if swap == nil {
		swap = &model.SwapFeatures{}
	}

	tags := make([]string, 0, 5)
	for _, c := range []struct {
		v     float64
		tiers []threshold
	}{
		{lp.TotalDepositUSD, lpSizeTiers},
		{lp.AvgHoldTimeDays, holdingTiers},
		{swap.TotalSwapVolume, swapSizeTiers},
		{float64(swap.NumSwaps), swapCountTiers},
	} {
		if tag, ok := firstTier(c.v, c.tiers); ok {
			tags = append(tags, tag)
		}
	}

	// 多样性: token 多样性优先, 否则看 LP 池子数
	if swap.TokenDiversityScore > 100 {
		tags = append(tags, TAG_DIVERSIFIED_TRADER)
	} else if lp.UniquePools > 3 {
		tags = append(tags, TAG_MULTI_POOL_LP)
	}
	return tags
}
