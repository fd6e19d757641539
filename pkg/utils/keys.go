package utils

import "fmt"

// WalletResultKey 钱包最近一次打分结果的缓存 key, 大小写不同的同一 EVM 地址得到同一个 key
func WalletResultKey(category, walletAddress string) string {
	return fmt.Sprintf("reputation:%s:%s", category, NormalizeWalletAddress(walletAddress))
}
