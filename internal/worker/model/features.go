package model

// LPFeatures 流动性提供行为特征
type LPFeatures struct {
	TotalDepositUSD  float64 `json:"total_deposit_usd"`
	TotalWithdrawUSD float64 `json:"total_withdraw_usd"`
	NumDeposits      int     `json:"num_deposits"`
	NumWithdraws     int     `json:"num_withdraws"`
	WithdrawRatio    float64 `json:"withdraw_ratio"` // 仅在 TotalDepositUSD > 0 时有意义
	AvgHoldTimeDays  float64 `json:"avg_hold_time_days"`
	AccountAgeDays   float64 `json:"account_age_days"`
	UniquePools      int     `json:"unique_pools"`
}

// SwapFeatures 交易行为特征, 没有 swap 时所有字段为零值
type SwapFeatures struct {
	TotalSwapVolume     float64 `json:"total_swap_volume"`
	NumSwaps            int     `json:"num_swaps"`
	UniquePoolsSwapped  int     `json:"unique_pools_swapped"`
	AvgSwapSize         float64 `json:"avg_swap_size"`
	TokenDiversityScore int     `json:"token_diversity_score"`
	SwapFrequencyScore  float64 `json:"swap_frequency_score"`
}

// LPBreakdown LP 分项得分
type LPBreakdown struct {
	VolumeScore    float64 `json:"volume_score"`
	FrequencyScore float64 `json:"frequency_score"`
	RetentionScore float64 `json:"retention_score"`
	HoldingScore   float64 `json:"holding_score"`
	DiversityScore float64 `json:"diversity_score"`
	TotalLPScore   float64 `json:"total_lp_score"`
}

// SwapBreakdown Swap 分项得分
type SwapBreakdown struct {
	VolumeScore        float64 `json:"volume_score"`
	FrequencyScore     float64 `json:"frequency_score"`
	DiversityScore     float64 `json:"diversity_score"`
	ActivityScore      float64 `json:"activity_score"`
	PoolDiversityScore float64 `json:"pool_diversity_score"`
	TotalSwapScore     float64 `json:"total_swap_score"`
}

type ScoreBreakdown struct {
	LP   *LPBreakdown   `json:"lp_breakdown"`
	Swap *SwapBreakdown `json:"swap_breakdown"`
}

// CompleteFeatures 合并后的完整特征, 是构建 payload 的唯一来源
type CompleteFeatures struct {
	LPFeatures
	SwapFeatures
	UserTags       []string       `json:"user_tags"`
	LPScore        float64        `json:"lp_score"`
	SwapScore      float64        `json:"swap_score"`
	FinalScore     float64        `json:"final_score"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`
}

// ScoredWallet 单个钱包的打分结果
type ScoredWallet struct {
	WalletAddress string           `json:"wallet_address"`
	FinalScore    float64          `json:"final_score"`
	Features      CompleteFeatures `json:"features"`
}
