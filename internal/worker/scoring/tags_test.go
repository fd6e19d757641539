package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wallet-reputation/internal/worker/model"
)

func TestGenerateTags(t *testing.T) {
	cases := []struct {
		name string
		lp   model.LPFeatures
		swap model.SwapFeatures
		want []string
	}{
		{
			name: "nothing",
			want: []string{},
		},
		{
			name: "whale everywhere",
			lp:   model.LPFeatures{TotalDepositUSD: 200000, AvgHoldTimeDays: 120, UniquePools: 10},
			swap: model.SwapFeatures{TotalSwapVolume: 600000, NumSwaps: 150, TokenDiversityScore: 150},
			want: []string{TAG_WHALE_LP, TAG_LONG_TERM_HOLDER, TAG_WHALE_TRADER, TAG_HIGH_FREQUENCY_TRADER, TAG_DIVERSIFIED_TRADER},
		},
		{
			name: "mid tiers with multi pool",
			lp:   model.LPFeatures{TotalDepositUSD: 20000, AvgHoldTimeDays: 45, UniquePools: 4},
			swap: model.SwapFeatures{TotalSwapVolume: 60000, NumSwaps: 25, TokenDiversityScore: 100},
			want: []string{TAG_LARGE_LP, TAG_MEDIUM_TERM_HOLDER, TAG_LARGE_TRADER, TAG_REGULAR_TRADER, TAG_MULTI_POOL_LP},
		},
		{
			name: "small tiers",
			lp:   model.LPFeatures{TotalDepositUSD: 1000, AvgHoldTimeDays: 1, UniquePools: 3},
			swap: model.SwapFeatures{TotalSwapVolume: 5000, NumSwaps: 20},
			want: []string{TAG_SMALL_LP, TAG_SHORT_TERM_HOLDER, TAG_CASUAL_TRADER},
		},
		{
			name: "medium and active",
			lp:   model.LPFeatures{TotalDepositUSD: 1500},
			swap: model.SwapFeatures{TotalSwapVolume: 5001},
			want: []string{TAG_MEDIUM_LP, TAG_ACTIVE_TRADER},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tags := GenerateTags(&c.lp, &c.swap)
			assert.Equal(t, c.want, tags)
			assert.LessOrEqual(t, len(tags), 5)

			seen := make(map[string]struct{})
			for _, tag := range tags {
				_, dup := seen[tag]
				assert.False(t, dup, "duplicate tag %s", tag)
				seen[tag] = struct{}{}
			}
		})
	}
}

func TestGenerateTags_NilFeatures(t *testing.T) {
	assert.Empty(t, GenerateTags(nil, nil))
}

func TestCompose_Weights(t *testing.T) {
	final, complete := Compose(500, 250, &model.LPFeatures{UniquePools: 5}, &model.SwapFeatures{}, nil, nil)
	assert.InDelta(t, 0.6*500+0.4*250, final, 1e-9)
	assert.Equal(t, final, complete.FinalScore)
	assert.Equal(t, 500.0, complete.LPScore)
	assert.Equal(t, 250.0, complete.SwapScore)
	assert.Equal(t, 5, complete.UniquePools)
	assert.Equal(t, []string{TAG_MULTI_POOL_LP}, complete.UserTags)
}
