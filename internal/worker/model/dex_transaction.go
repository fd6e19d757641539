package model

import (
	"time"
)

// Transaction 归一化后的交易行
type Transaction struct {
	WalletAddress string    `json:"wallet_address"`
	DocumentID    string    `json:"document_id"`
	Action        string    `json:"action"`
	Timestamp     float64   `json:"timestamp"` // 秒时间戳, 保留小数, 打分只用这个字段
	Datetime      time.Time `json:"datetime"`  // 仅用于展示/调试
	Protocol      string    `json:"protocol"`
	PoolID        string    `json:"pool_id"`
	PoolName      string    `json:"pool_name"`

	// 未识别的 action 不带金额和 symbol
	AmountUSD      float64 `json:"amount_usd,omitempty"`
	TokenInSymbol  string  `json:"token_in_symbol,omitempty"`
	TokenOutSymbol string  `json:"token_out_symbol,omitempty"`
	Token0Symbol   string  `json:"token0_symbol,omitempty"`
	Token1Symbol   string  `json:"token1_symbol,omitempty"`
}

func (t Transaction) IsSwap() bool {
	return t.Action == ACTION_SWAP
}

func (t Transaction) IsDeposit() bool {
	return t.Action == ACTION_DEPOSIT
}

func (t Transaction) IsWithdraw() bool {
	return t.Action == ACTION_WITHDRAW
}

// HasAmount 是否为已知形态(swap/deposit/withdraw)
func (t Transaction) HasAmount() bool {
	return t.IsSwap() || t.IsDeposit() || t.IsWithdraw()
}
