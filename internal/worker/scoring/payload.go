package scoring

import (
	"math"
	"strconv"
	"time"

	"wallet-reputation/internal/worker/model"
)

// ZSCORE_DECIMALS zscore 固定 18 位小数, 下游按文本格式解析
const ZSCORE_DECIMALS = 18

// FormatZScore 与 "%.18f" 一致的定点格式
func FormatZScore(score float64) string {
	return strconv.FormatFloat(score, 'f', ZSCORE_DECIMALS, 64)
}

// BuildEvent 根据处理结果构建出站消息, 成功与失败二选一
func BuildEvent(out Outcome, now time.Time) *model.ScoreEvent {
	event := &model.ScoreEvent{
		WalletAddress:    out.WalletAddress,
		Timestamp:        chooseTimestamp(out.Rows, now),
		ProcessingTimeMs: out.Elapsed.Milliseconds(),
	}

	if !out.OK() {
		errMsg := ErrNoValidTransactions.Error()
		reason := errMsg
		if out.Failure != nil {
			errMsg = out.Failure.Err.Error()
			reason = out.Failure.Reason
		}
		event.Error = &errMsg
		event.Categories = []model.CategoryResult{{
			Category:         model.CATEGORY_DEXES,
			Error:            &reason,
			TransactionCount: len(out.Rows),
		}}
		return event
	}

	score := out.Scored.FinalScore
	zscore := FormatZScore(score)
	f := out.Scored.Features
	event.ZScore = &zscore
	event.Categories = []model.CategoryResult{{
		Category:         model.CATEGORY_DEXES,
		Score:            &score,
		TransactionCount: len(out.Rows),
		Features: &model.CategoryFeatures{
			TotalDepositUSD:  f.TotalDepositUSD,
			TotalWithdrawUSD: f.TotalWithdrawUSD,
			NumDeposits:      f.NumDeposits,
			NumWithdraws:     f.NumWithdraws,
			TotalSwapVolume:  f.TotalSwapVolume,
			NumSwaps:         f.NumSwaps,
			UniquePools:      f.UniquePools,
		},
	}}
	return event
}

// chooseTimestamp 最早一笔交易时间, 没有交易时取当前时间
func chooseTimestamp(rows []model.Transaction, now time.Time) int64 {
	if len(rows) == 0 {
		return now.Unix()
	}
	ts := rows[0].Timestamp
	for _, row := range rows[1:] {
		ts = min(ts, row.Timestamp)
	}
	return int64(math.Floor(ts))
}
