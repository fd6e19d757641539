package scoring

import (
	"math"
	"time"

	"wallet-reputation/internal/worker/model"
)

const SECONDS_PER_DAY = 86400.0

// LP 打分权重与上限
const (
	lpVolumeNorm    = 10000.0
	lpVolumeMax     = 300.0
	lpFrequencyUnit = 20.0
	lpFrequencyMax  = 200.0
	lpRetentionMax  = 250.0
	lpHoldingNorm   = 30.0
	lpHoldingMax    = 150.0
	lpDiversityUnit = 20.0
	lpDiversityMax  = 100.0
)

// ExtractLPFeatures 计算 LP 行为特征, rows 为空时返回 nil
func ExtractLPFeatures(rows []model.Transaction, now time.Time) *model.LPFeatures {
	if len(rows) == 0 {
		return nil
	}

	var deposits, withdraws []model.Transaction
	features := &model.LPFeatures{}
	for _, row := range rows {
		switch {
		case row.IsDeposit():
			deposits = append(deposits, row)
			features.TotalDepositUSD += row.AmountUSD
		case row.IsWithdraw():
			withdraws = append(withdraws, row)
			features.TotalWithdrawUSD += row.AmountUSD
		}
	}
	features.NumDeposits = len(deposits)
	features.NumWithdraws = len(withdraws)
	if features.TotalDepositUSD > 0 {
		features.WithdrawRatio = features.TotalWithdrawUSD / features.TotalDepositUSD
	}

	minTs, maxTs := rows[0].Timestamp, rows[0].Timestamp
	for _, row := range rows[1:] {
		minTs = min(minTs, row.Timestamp)
		maxTs = max(maxTs, row.Timestamp)
	}
	features.AccountAgeDays = (maxTs - minTs) / SECONDS_PER_DAY
	features.AvgHoldTimeDays = avgHoldTimeDays(deposits, withdraws, now)
	features.UniquePools = countUniquePools(rows)
	return features
}

// avgHoldTimeDays 每笔 deposit 匹配其后最早的一笔 withdraw(不区分池子), 没有则持有到 now
func avgHoldTimeDays(deposits, withdraws []model.Transaction, now time.Time) float64 {
	if len(deposits) == 0 {
		return 0
	}

	nowTs := float64(now.UnixNano()) / float64(time.Second)
	var total float64
	for _, dep := range deposits {
		matched := false
		var earliest float64
		for _, wd := range withdraws {
			if wd.Timestamp <= dep.Timestamp {
				continue
			}
			if !matched || wd.Timestamp < earliest {
				earliest = wd.Timestamp
				matched = true
			}
		}
		if matched {
			total += (earliest - dep.Timestamp) / SECONDS_PER_DAY
		} else {
			total += (nowTs - dep.Timestamp) / SECONDS_PER_DAY
		}
	}
	return total / float64(len(deposits))
}

// capped 分项得分限制在 [0, limit]
func capped(v, limit float64) float64 {
	return math.Min(math.Max(v, 0), limit)
}

func countUniquePools(rows []model.Transaction) int {
	pools := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		pools[row.PoolID] = struct{}{}
	}
	return len(pools)
}

// ScoreLP LP 子分数, 最高 1000
func ScoreLP(features *model.LPFeatures) (float64, *model.LPBreakdown) {
	if features == nil {
		return 0, nil
	}

	b := &model.LPBreakdown{
		VolumeScore:    capped(features.TotalDepositUSD/lpVolumeNorm*lpVolumeMax, lpVolumeMax),
		FrequencyScore: capped(float64(features.NumDeposits)*lpFrequencyUnit, lpFrequencyMax),
		RetentionScore: capped((1-features.WithdrawRatio)*lpRetentionMax, lpRetentionMax),
		HoldingScore:   capped(features.AvgHoldTimeDays/lpHoldingNorm*lpHoldingMax, lpHoldingMax),
		DiversityScore: capped(float64(features.UniquePools)*lpDiversityUnit, lpDiversityMax),
	}
	b.TotalLPScore = b.VolumeScore + b.FrequencyScore + b.RetentionScore + b.HoldingScore + b.DiversityScore
	return b.TotalLPScore, b
}
