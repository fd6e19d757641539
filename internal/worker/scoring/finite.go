package scoring

import (
	"math"

	"github.com/pkg/errors"

	"wallet-reputation/internal/worker/model"
)

var ErrNonFiniteValue = errors.New("non-finite numeric value")

type namedValue struct {
	name  string
	value float64
}

// checkFinite 出站结果中不能出现 NaN/Inf, 金额超出 float64 范围时会出现
func checkFinite(f model.CompleteFeatures) error {
	values := []namedValue{
		{"total_deposit_usd", f.TotalDepositUSD},
		{"total_withdraw_usd", f.TotalWithdrawUSD},
		{"withdraw_ratio", f.WithdrawRatio},
		{"avg_hold_time_days", f.AvgHoldTimeDays},
		{"account_age_days", f.AccountAgeDays},
		{"total_swap_volume", f.TotalSwapVolume},
		{"avg_swap_size", f.AvgSwapSize},
		{"swap_frequency_score", f.SwapFrequencyScore},
		{"lp_score", f.LPScore},
		{"swap_score", f.SwapScore},
		{"final_score", f.FinalScore},
	}
	if b := f.ScoreBreakdown.LP; b != nil {
		values = append(values,
			namedValue{"lp_breakdown.volume_score", b.VolumeScore},
			namedValue{"lp_breakdown.frequency_score", b.FrequencyScore},
			namedValue{"lp_breakdown.retention_score", b.RetentionScore},
			namedValue{"lp_breakdown.holding_score", b.HoldingScore},
			namedValue{"lp_breakdown.diversity_score", b.DiversityScore},
			namedValue{"lp_breakdown.total_lp_score", b.TotalLPScore},
		)
	}
	if b := f.ScoreBreakdown.Swap; b != nil {
		values = append(values,
			namedValue{"swap_breakdown.volume_score", b.VolumeScore},
			namedValue{"swap_breakdown.frequency_score", b.FrequencyScore},
			namedValue{"swap_breakdown.diversity_score", b.DiversityScore},
			namedValue{"swap_breakdown.activity_score", b.ActivityScore},
			namedValue{"swap_breakdown.pool_diversity_score", b.PoolDiversityScore},
			namedValue{"swap_breakdown.total_swap_score", b.TotalSwapScore},
		)
	}

	for _, v := range values {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return errors.Wrap(ErrNonFiniteValue, v.name)
		}
	}
	return nil
}
