package utils

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// NormalizeWalletAddress EVM 地址转换为 EIP-55 Checksum 格式, 其他地址只去掉首尾空白
func NormalizeWalletAddress(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}
	if common.IsHexAddress(addr) {
		return common.HexToAddress(addr).Hex()
	}
	return addr
}
