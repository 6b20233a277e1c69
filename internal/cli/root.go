// Package cli implements the rdx command line.
package cli

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/nulln0ne/rdx-dex/internal/quote"
)

// NewRootCmd builds the rdx command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rdx",
		Short: "rdx - quote and inspect constant-product pools",
		Long: `rdx quotes swaps and liquidity changes against constant-product pools.

The quote commands work offline from reserves passed as flags. The session
command reads a live pair through ETH_RPC_URL using the same configuration as
the API server.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newQuoteCmd(), newTokensCmd(), newSessionCmd())
	return root
}

func parseUnits(flag, v string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(v, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("--%s: %w", flag, quote.ErrInvalidAmount)
	}
	return n, nil
}
