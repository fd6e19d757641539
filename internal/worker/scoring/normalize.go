package scoring

import (
	"math"
	"time"

	"wallet-reputation/internal/worker/model"
)

// Normalize 把钱包消息中的 DEX 交易展开成统一的交易行, 顺序与输入一致
// 非 dexes 分组直接跳过; 缺少 action 或 timestamp 的交易视为无效并丢弃
func Normalize(msg model.WalletMessage) []model.Transaction {
	rows := make([]model.Transaction, 0)
	for _, group := range msg.Data {
		if group.ProtocolType != model.PROTOCOL_TYPE_DEXES {
			continue
		}
		for i := range group.Transactions {
			row, ok := normalizeTx(msg.WalletAddress, &group.Transactions[i])
			if !ok {
				continue
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func normalizeTx(walletAddress string, tx *model.DexTransaction) (model.Transaction, bool) {
	if tx.Action == "" || !tx.Timestamp.Valid {
		return model.Transaction{}, false
	}
	ts := tx.Timestamp.Float64()
	if math.IsNaN(ts) || math.IsInf(ts, 0) {
		return model.Transaction{}, false
	}

	row := model.Transaction{
		WalletAddress: walletAddress,
		DocumentID:    tx.DocumentID,
		Action:        tx.Action,
		Timestamp:     ts,
		Datetime:      unixTime(ts),
		Protocol:      tx.Protocol,
		PoolID:        tx.PoolID,
		PoolName:      tx.PoolName,
	}

	switch tx.Action {
	case model.ACTION_SWAP:
		row.AmountUSD = math.Max(tx.TokenIn.USD(), tx.TokenOut.USD())
		row.TokenInSymbol = tx.TokenIn.SymbolOrEmpty()
		row.TokenOutSymbol = tx.TokenOut.SymbolOrEmpty()
	case model.ACTION_DEPOSIT, model.ACTION_WITHDRAW:
		row.AmountUSD = tx.Token0.USD() + tx.Token1.USD()
		row.Token0Symbol = tx.Token0.SymbolOrEmpty()
		row.Token1Symbol = tx.Token1.SymbolOrEmpty()
	}
	return row, true
}

// unixTime 浮点秒转 UTC 时间, 仅用于展示
func unixTime(ts float64) time.Time {
	sec := math.Floor(ts)
	return time.Unix(int64(sec), int64((ts-sec)*float64(time.Second))).UTC()
}
