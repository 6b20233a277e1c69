package cli

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/nulln0ne/rdx-dex/internal/quote"
)

func newQuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Offline quotes from explicit reserves",
	}
	cmd.AddCommand(newQuoteSwapCmd(), newQuoteAddCmd(), newQuoteRemoveCmd())
	return cmd
}

func newQuoteSwapCmd() *cobra.Command {
	var (
		reserveIn, reserveOut, amount string
		decimalsIn, decimalsOut       int32
		slippageBps                   uint32
	)
	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Estimate the output of selling an exact amount",
		Example: `    rdx quote swap --reserve-in 1000 --reserve-out 2000 --amount 100
    rdx quote swap --reserve-in 5000000000 --reserve-out 9000000000 --amount 1.5 --decimals-in 6 --decimals-out 6`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rIn, err := parseUnits("reserve-in", reserveIn)
			if err != nil {
				return err
			}
			rOut, err := parseUnits("reserve-out", reserveOut)
			if err != nil {
				return err
			}
			in, err := quote.CorrectDecimals(amount, decimalsIn)
			if err != nil {
				return fmt.Errorf("--amount: %w", err)
			}
			out := quote.QuoteSwapOutput(in, rIn, rOut)
			exact := quote.QuoteSwapOutputExact(in, rIn, rOut)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "amount in:      %s (%s units)\n", quote.FormatAmount(in, decimalsIn), in)
			fmt.Fprintf(w, "amount out:     %s (%s units)\n", quote.FormatAmount(out, decimalsOut), out)
			fmt.Fprintf(w, "exact out:      %s units\n", exact.FloatString(6))
			fmt.Fprintf(w, "minimum out:    %s (%d bps)\n", quote.FormatAmount(quote.MinimumOutput(out, slippageBps), decimalsOut), slippageBps)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&reserveIn, "reserve-in", "", "reserve of the sold token, in smallest units")
	f.StringVar(&reserveOut, "reserve-out", "", "reserve of the bought token, in smallest units")
	f.StringVar(&amount, "amount", "", "human amount to sell")
	f.Int32Var(&decimalsIn, "decimals-in", 0, "decimals of the sold token")
	f.Int32Var(&decimalsOut, "decimals-out", 0, "decimals of the bought token")
	f.Uint32Var(&slippageBps, "slippage-bps", quote.DefaultSlippageBps, "slippage tolerance in basis points")
	_ = cmd.MarkFlagRequired("reserve-in")
	_ = cmd.MarkFlagRequired("reserve-out")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newQuoteAddCmd() *cobra.Command {
	var (
		reserveA, reserveB, amount string
		decimalsA, decimalsB       int32
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Pair a deposit of token A with the amount of token B keeping the pool ratio",
		RunE: func(cmd *cobra.Command, args []string) error {
			rA, err := parseUnits("reserve-a", reserveA)
			if err != nil {
				return err
			}
			rB, err := parseUnits("reserve-b", reserveB)
			if err != nil {
				return err
			}
			in, err := quote.CorrectDecimals(amount, decimalsA)
			if err != nil {
				return fmt.Errorf("--amount: %w", err)
			}
			w := cmd.OutOrStdout()
			paired, ok := quote.QuoteLiquidityPair(in, rA, rB, rA.Sign() > 0 && rB.Sign() > 0)
			if !ok {
				fmt.Fprintln(w, "pool is empty: any ratio is accepted")
				return nil
			}
			fmt.Fprintf(w, "amount a:       %s (%s units)\n", quote.FormatAmount(in, decimalsA), in)
			fmt.Fprintf(w, "amount b:       %s (%s units)\n", quote.FormatAmount(paired, decimalsB), paired)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&reserveA, "reserve-a", "", "reserve of token A, in smallest units")
	f.StringVar(&reserveB, "reserve-b", "", "reserve of token B, in smallest units")
	f.StringVar(&amount, "amount", "", "human amount of token A")
	f.Int32Var(&decimalsA, "decimals-a", 0, "decimals of token A")
	f.Int32Var(&decimalsB, "decimals-b", 0, "decimals of token B")
	_ = cmd.MarkFlagRequired("reserve-a")
	_ = cmd.MarkFlagRequired("reserve-b")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newQuoteRemoveCmd() *cobra.Command {
	var (
		lp, lpBalance, lpSupply, reserveA, reserveB string
		decimalsA, decimalsB                        int32
	)
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Estimate the tokens returned for burning liquidity",
		RunE: func(cmd *cobra.Command, args []string) error {
			values := map[string]string{"lp": lp, "lp-balance": lpBalance, "lp-supply": lpSupply, "reserve-a": reserveA, "reserve-b": reserveB}
			parsed := map[string]*big.Int{}
			for name, v := range values {
				n, err := parseUnits(name, v)
				if err != nil {
					return err
				}
				parsed[name] = n
			}
			if parsed["lp"].Cmp(parsed["lp-balance"]) > 0 {
				return fmt.Errorf("--lp: %w", quote.ErrInsufficientBalance)
			}
			est := quote.EstimateRemove(parsed["lp"], parsed["lp-balance"], parsed["lp-supply"], parsed["reserve-a"], parsed["reserve-b"])

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "pooled a:       %s\n", quote.FormatAmount(est.PooledA, decimalsA))
			fmt.Fprintf(w, "pooled b:       %s\n", quote.FormatAmount(est.PooledB, decimalsB))
			fmt.Fprintf(w, "receive a:      %s (%s units)\n", quote.FormatAmount(est.AmountA, decimalsA), est.AmountA)
			fmt.Fprintf(w, "receive b:      %s (%s units)\n", quote.FormatAmount(est.AmountB, decimalsB), est.AmountB)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&lp, "lp", "", "LP tokens to burn, in smallest units")
	f.StringVar(&lpBalance, "lp-balance", "", "LP balance of the account, in smallest units")
	f.StringVar(&lpSupply, "lp-supply", "", "total LP supply, in smallest units")
	f.StringVar(&reserveA, "reserve-a", "", "reserve of token A, in smallest units")
	f.StringVar(&reserveB, "reserve-b", "", "reserve of token B, in smallest units")
	f.Int32Var(&decimalsA, "decimals-a", 0, "decimals of token A")
	f.Int32Var(&decimalsB, "decimals-b", 0, "decimals of token B")
	for _, name := range []string{"lp", "lp-balance", "lp-supply", "reserve-a", "reserve-b"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
