package model

const CATEGORY_DEXES = "dexes"

// ScoreEvent 出站消息, ZScore 与 Error 有且只有一个
type ScoreEvent struct {
	WalletAddress    string           `json:"wallet_address"`
	ZScore           *string          `json:"zscore,omitempty"`
	Error            *string          `json:"error,omitempty"`
	Timestamp        int64            `json:"timestamp"`
	ProcessingTimeMs int64            `json:"processing_time_ms"`
	Categories       []CategoryResult `json:"categories"`
}

// CategoryResult 分类结果, 成功时带 score/features, 失败时带 error
type CategoryResult struct {
	Category         string            `json:"category"`
	Score            *float64          `json:"score,omitempty"`
	Error            *string           `json:"error,omitempty"`
	TransactionCount int               `json:"transaction_count"`
	Features         *CategoryFeatures `json:"features,omitempty"`
}

// CategoryFeatures 下游需要的特征子集
type CategoryFeatures struct {
	TotalDepositUSD  float64 `json:"total_deposit_usd"`
	TotalWithdrawUSD float64 `json:"total_withdraw_usd"`
	NumDeposits      int     `json:"num_deposits"`
	NumWithdraws     int     `json:"num_withdraws"`
	TotalSwapVolume  float64 `json:"total_swap_volume"`
	NumSwaps         int     `json:"num_swaps"`
	UniquePools      int     `json:"unique_pools"`
}

func (e *ScoreEvent) IsSuccess() bool {
	return e.ZScore != nil && e.Error == nil
}
