package model

const (
	PROTOCOL_TYPE_DEXES = "dexes"

	ACTION_SWAP     = "swap"
	ACTION_DEPOSIT  = "deposit"
	ACTION_WITHDRAW = "withdraw"
)

// WalletMessage 入站钱包交易消息
type WalletMessage struct {
	WalletAddress string         `json:"wallet_address"`
	Data          []ProtocolData `json:"data"`
}

// ProtocolData 按协议类型分组的交易
type ProtocolData struct {
	ProtocolType string           `json:"protocolType"`
	Transactions []DexTransaction `json:"transactions"`
}

// DexTransaction 原始 DEX 交易, swap 使用 tokenIn/tokenOut, deposit/withdraw 使用 token0/token1
type DexTransaction struct {
	DocumentID string       `json:"document_id"`
	Action     string       `json:"action"`
	Timestamp  Numeric      `json:"timestamp"` // 秒时间戳, 兼容数字/字符串
	Caller     string       `json:"caller"`
	Protocol   string       `json:"protocol"`
	PoolID     string       `json:"poolId"`
	PoolName   string       `json:"poolName"`
	TokenIn    *TokenAmount `json:"tokenIn,omitempty"`
	TokenOut   *TokenAmount `json:"tokenOut,omitempty"`
	Token0     *TokenAmount `json:"token0,omitempty"`
	Token1     *TokenAmount `json:"token1,omitempty"`
}

// TokenAmount 单边 token 数量
type TokenAmount struct {
	Amount    Numeric `json:"amount"`
	AmountUSD Numeric `json:"amountUSD"`
	Address   string  `json:"address"`
	Symbol    string  `json:"symbol"`
}

// USD 缺失的 token 视为 0
func (t *TokenAmount) USD() float64 {
	if t == nil {
		return 0
	}
	return t.AmountUSD.Float64()
}

func (t *TokenAmount) SymbolOrEmpty() string {
	if t == nil {
		return ""
	}
	return t.Symbol
}
