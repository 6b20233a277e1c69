package config

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routerHex = "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("ETH_RPC_URL", "http://localhost:8545")
	t.Setenv("CHAIN_ID", "31337")
	t.Setenv("ROUTER_ADDRESS", routerHex)
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)
	for _, k := range []string{"ADDR", "LOG_LEVEL", "FACTORY_ADDRESS", "CHEF_ADDRESS", "FARM_TOKEN_ADDRESS", "REWARD_TOKEN_ADDRESS", "WALLET_PRIVATE_KEY", "SLIPPAGE_BPS", "TX_DEADLINE", "RECEIPT_POLL_INTERVAL"} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":1337", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(31337), cfg.ChainID.Int64())
	assert.Equal(t, common.HexToAddress(routerHex), cfg.Router)
	assert.Equal(t, common.Address{}, cfg.Factory)
	assert.Equal(t, uint32(500), cfg.SlippageBps)
	assert.Equal(t, 20*time.Minute, cfg.TxDeadline)
	assert.Equal(t, 2*time.Second, cfg.ReceiptPollInterval)
	assert.False(t, cfg.FarmConfigured())
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SLIPPAGE_BPS", "50")
	t.Setenv("TX_DEADLINE", "5m")
	t.Setenv("CHEF_ADDRESS", "0x0000000000000000000000000000000000000cef")
	t.Setenv("FARM_TOKEN_ADDRESS", "0x00000000000000000000000000000000000000f1")
	t.Setenv("REWARD_TOKEN_ADDRESS", "0x00000000000000000000000000000000000000f2")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, uint32(50), cfg.SlippageBps)
	assert.Equal(t, 5*time.Minute, cfg.TxDeadline)
	assert.True(t, cfg.FarmConfigured())
}

func TestFromEnv_Errors(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
		err  error
	}{
		{"missing rpc", "ETH_RPC_URL", "", ErrMissingRPCEndpoint},
		{"missing chain", "CHAIN_ID", "", ErrMissingChainID},
		{"bad chain", "CHAIN_ID", "abc", ErrInvalidChainID},
		{"missing router", "ROUTER_ADDRESS", "", ErrMissingVariable},
		{"bad router", "ROUTER_ADDRESS", "0x1234", ErrInvalidAddress},
		{"bad slippage", "SLIPPAGE_BPS", "10001", ErrInvalidSlippage},
		{"bad deadline", "TX_DEADLINE", "-1s", ErrInvalidDuration},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tc.key, tc.val)
			_, err := FromEnv()
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
