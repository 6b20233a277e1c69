package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nulln0ne/rdx-dex/internal/app"
	"github.com/nulln0ne/rdx-dex/internal/config"
	"github.com/nulln0ne/rdx-dex/internal/form"
	"github.com/nulln0ne/rdx-dex/internal/logging"
	"github.com/nulln0ne/rdx-dex/internal/quote"
	"github.com/nulln0ne/rdx-dex/internal/token"
)

func newTokensCmd() *cobra.Command {
	var exclude []string
	cmd := &cobra.Command{
		Use:   "tokens [query]",
		Short: "List the known tokens",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			q := ""
			if len(args) == 1 {
				q = args[0]
			}
			for _, d := range token.DefaultRegistry().Search(q, exclude) {
				fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", d.Name, d.Address.Hex())
			}
		},
	}
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "token names to leave out")
	return cmd
}

func newSessionCmd() *cobra.Command {
	var a, b, amount string
	var percent uint32
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Load a live pair and fill its swap and liquidity forms",
		Long: `session connects to ETH_RPC_URL, loads the pair a/b for the configured
wallet and shows how the swap, supply and remove forms judge the amount.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkPercent(percent); err != nil {
				return err
			}
			_ = godotenv.Load()
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			rdx, err := app.New(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer rdx.Close()

			pair, err := resolvePair(rdx.Registry, a, b)
			if err != nil {
				return err
			}
			s := form.NewSession(rdx.Loader, cfg.SlippageBps)
			return runSession(ctx, cmd.OutOrStdout(), s, pair, amount, percent)
		},
	}
	f := cmd.Flags()
	f.StringVar(&a, "a", "", "token A name or address")
	f.StringVar(&b, "b", "", "token B name or address")
	f.StringVar(&amount, "amount", "", "human amount of token A")
	f.Uint32Var(&percent, "percent", 0, "use a balance shortcut (25, 50, 75 or 100) instead of --amount")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")
	return cmd
}

// checkPercent accepts 0 (no shortcut) or one of the offered shortcuts.
func checkPercent(percent uint32) error {
	if percent == 0 || slice.Contain(quote.Shortcuts, percent) {
		return nil
	}
	return fmt.Errorf("--percent: %d is not one of %v", percent, quote.Shortcuts)
}

func resolvePair(r *token.Registry, a, b string) (token.Pair, error) {
	ta, err := r.Find(a)
	if err != nil {
		return token.Pair{}, fmt.Errorf("--a: %w", err)
	}
	tb, err := r.Find(b)
	if err != nil {
		return token.Pair{}, fmt.Errorf("--b: %w", err)
	}
	return token.NewPair(ta, tb)
}

func runSession(ctx context.Context, w io.Writer, s *form.Session, pair token.Pair, amount string, percent uint32) error {
	if err := checkPercent(percent); err != nil {
		return err
	}
	snap, err := s.SelectPair(ctx, pair)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "pair:           %s/%s (lp %s)\n", snap.Pair.A.Name, snap.Pair.B.Name, snap.Pair.LP.Address.Hex())
	fmt.Fprintf(w, "reserves:       %s %s / %s %s\n",
		quote.FormatAmount(snap.ReserveA, snap.DecimalsA), snap.Pair.A.Name,
		quote.FormatAmount(snap.ReserveB, snap.DecimalsB), snap.Pair.B.Name)
	fmt.Fprintf(w, "balances:       %s %s / %s %s / %s LP\n",
		quote.FormatAmount(snap.BalanceA, snap.DecimalsA), snap.Pair.A.Name,
		quote.FormatAmount(snap.BalanceB, snap.DecimalsB), snap.Pair.B.Name,
		quote.FormatAmount(snap.BalanceLP, snap.DecimalsLP))

	var swap form.SwapForm
	if percent > 0 {
		swap, err = s.SetSwapPercent(percent)
		fmt.Fprintf(w, "shortcut:       %s\n", quote.ShortcutLabel(percent))
	} else {
		swap, err = s.SetSwapInput(amount)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "swap:           %s %s -> %s %s, min %s [%s]\n",
		swap.In.Value, snap.Pair.A.Name,
		quote.FormatAmount(swap.Out.Units, snap.DecimalsB), snap.Pair.B.Name,
		quote.FormatAmount(swap.MinOut, snap.DecimalsB), swap.Label(snap))

	var liq form.LiquidityForm
	if percent > 0 {
		liq, err = s.SetLiquidityPercent(percent)
	} else {
		liq, err = s.SetLiquidityA(swap.In.Value)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "supply:         %s %s + %s %s [%s]\n",
		quote.FormatAmount(liq.A.Units, snap.DecimalsA), snap.Pair.A.Name,
		quote.FormatAmount(liq.B.Units, snap.DecimalsB), snap.Pair.B.Name, liq.Label(snap))

	rm, err := s.SetRemoveLP(quote.ToHuman(snap.BalanceLP, snap.DecimalsLP).String())
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "remove all LP:  %s %s + %s %s [%s]\n",
		quote.FormatAmount(rm.AmountA, snap.DecimalsA), snap.Pair.A.Name,
		quote.FormatAmount(rm.AmountB, snap.DecimalsB), snap.Pair.B.Name,
		rm.Label(snap))
	return nil
}
