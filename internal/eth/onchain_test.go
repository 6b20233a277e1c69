package eth

import (
	"context"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/nulln0ne/rdx-dex/pkg/uniswapv2"
)

// Uniswap V2 Router02 on mainnet.
var mainnetRouter = common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")

// TestGetAmountOut_Onchain compares the local math to Router02's getAmountOut
// via eth_call. Skips if ETH_RPC_URL is not set.
func TestGetAmountOut_Onchain(t *testing.T) {
	rpcURL := os.Getenv("ETH_RPC_URL")
	if rpcURL == "" {
		t.Skip("ETH_RPC_URL not set; skipping on-chain comparison test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := Dial(ctx, rpcURL)
	require.NoError(t, err, "dial eth rpc")
	defer client.Close()

	router := NewContracts(client, nil).Router(mainnetRouter)

	cases := []struct {
		name       string
		amountIn   *big.Int
		reserveIn  *big.Int
		reserveOut *big.Int
	}{
		{"small_balanced", big.NewInt(1_000), big.NewInt(1_000_000), big.NewInt(1_000_000)},
		{"skewed_reserves", big.NewInt(50_000_000_000_000), new(big.Int).SetUint64(5_000_000_000_000_000), new(big.Int).SetUint64(100_000_000_000_000_000)},
		{"large_values", new(big.Int).SetUint64(1_000_000_000_000_000), new(big.Int).SetUint64(50_000_000_000_000_000), new(big.Int).SetUint64(75_000_000_000_000_000)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var dst, t1, t2 big.Int
			local := uniswapv2.GetAmountOut(&dst, &t1, &t2, tc.amountIn, tc.reserveIn, tc.reserveOut)

			onchain, err := router.GetAmountOut(ctx, tc.amountIn, tc.reserveIn, tc.reserveOut)
			require.NoError(t, err)
			require.Zerof(t, local.Cmp(onchain), "mismatch: local=%s onchain=%s (in=%s rIn=%s rOut=%s)", local, onchain, tc.amountIn, tc.reserveIn, tc.reserveOut)
		})
	}
}
