package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wallet = `{"wallet_address":"0xabc","data":[{"protocolType":"dexes","transactions":[
	{"document_id":"a","action":"swap","timestamp":1703980800,"poolId":"p1",
	 "tokenIn":{"amountUSD":1000,"symbol":"USDC"},"tokenOut":{"amountUSD":1000,"symbol":"WETH"}}
]}]}`

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "config.worker.yaml")
	body := "log:\n  level: error\n  dir: " + filepath.Join(dir, "logs") + "\n"
	require.NoError(t, os.WriteFile(file, []byte(body), 0644))
	return file
}

func TestRun_FromStdin(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, run(writeConfig(t), "-", false, strings.NewReader(wallet), &stdout))

	var event map[string]any
	require.NoError(t, sonic.Unmarshal(stdout.Bytes(), &event))
	assert.Equal(t, "0xabc", event["wallet_address"])
	// LP 250 (无取出) + 20 (1 个池子), Swap 5 + 10 + 25 + 25
	zscore, err := strconv.ParseFloat(event["zscore"].(string), 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.6*270+0.4*65, zscore, 1e-9)
	assert.EqualValues(t, 1703980800, event["timestamp"])
}

func TestRun_FromFileWithFailure(t *testing.T) {
	input := filepath.Join(t.TempDir(), "wallet.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"wallet_address":"0xabc","data":[]}`), 0644))

	var stdout bytes.Buffer
	require.NoError(t, run(writeConfig(t), input, true, nil, &stdout))
	assert.Contains(t, stdout.String(), `"error": "No valid transactions found"`)
}

func TestRun_MissingInput(t *testing.T) {
	err := run(writeConfig(t), filepath.Join(t.TempDir(), "missing.json"), false, nil, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.json")
}
