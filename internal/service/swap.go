package service

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/nulln0ne/rdx-dex/internal/form"
	"github.com/nulln0ne/rdx-dex/internal/quote"
	"github.com/nulln0ne/rdx-dex/internal/token"
)

// SwapQuote is the result of quoting an exact-input swap.
type SwapQuote struct {
	Snapshot form.Snapshot `json:"snapshot"`
	Form     form.SwapForm `json:"form"`
	// RouterOut is the router's fee-bearing output, nil when the router could
	// not quote.
	RouterOut *big.Int `json:"router_out,omitempty"`
	// RouterErr is the failure of the router quote call, if any.
	RouterErr error  `json:"-"`
	Label     string `json:"label"`
	CanSubmit bool   `json:"can_submit"`
}

// ExactOutQuote is the result of quoting an exact-output swap.
type ExactOutQuote struct {
	Snapshot  form.Snapshot `json:"snapshot"`
	AmountOut *big.Int      `json:"amount_out"`
	AmountIn  *big.Int      `json:"amount_in"`
	MaximumIn *big.Int      `json:"maximum_in"`
	Verdict   quote.Verdict `json:"verdict"`
}

// SwapService quotes and executes swaps through the router.
type SwapService struct {
	BaseService
	loader AccountLoader
	router common.Address
}

func NewSwapService(d Deps, loader AccountLoader, router common.Address) *SwapService {
	return &SwapService{BaseService: newBase(d), loader: loader, router: router}
}

func path(pair token.Pair) []common.Address {
	return []common.Address{pair.A.Address, pair.B.Address}
}

// Quote estimates selling humanAmount of pair.A for pair.B, validated against
// the balance of account (the wallet's when zero).
func (s *SwapService) Quote(ctx context.Context, pair token.Pair, account common.Address, humanAmount string) (SwapQuote, error) {
	snap, err := s.loader.LoadFor(ctx, pair, account)
	if err != nil {
		return SwapQuote{}, err
	}
	f := form.NewSwapForm(s.slippageBps)
	f.SetInput(humanAmount, snap)

	q := SwapQuote{Snapshot: snap}
	if positive(f.In.Units) && snap.PoolHasDeposited() {
		amounts, err := s.chain.Router(s.router).GetAmountsOut(ctx, f.In.Units, path(pair))
		switch {
		case err != nil:
			s.logger.Warn("router quote failed", "err", err)
			q.RouterErr = fmt.Errorf("router amounts out: %w", err)
		case len(amounts) != 2:
			q.RouterErr = ErrRouterQuote
		default:
			q.RouterOut = amounts[1]
			f.MinOut = quote.MinimumOutput(amounts[1], s.slippageBps)
		}
	}
	q.Form = f
	q.Label = f.Label(snap)
	q.CanSubmit = f.CanSubmit(snap)
	s.metrics.Quote("swap", f.In.State.String())
	return q, nil
}

// QuoteExactOut prices buying humanAmount of pair.B with pair.A.
func (s *SwapService) QuoteExactOut(ctx context.Context, pair token.Pair, humanAmount string) (ExactOutQuote, error) {
	snap, err := s.loader.Load(ctx, pair)
	if err != nil {
		return ExactOutQuote{}, err
	}
	out, err := quote.CorrectDecimals(humanAmount, snap.DecimalsB)
	if err != nil {
		s.metrics.Quote("swap_exact_out", form.Invalid.String())
		return ExactOutQuote{}, err
	}
	if out.Sign() == 0 {
		s.metrics.Quote("swap_exact_out", form.Invalid.String())
		return ExactOutQuote{}, quote.ErrInvalidAmount
	}
	if out.Cmp(snap.ReserveB) >= 0 {
		s.metrics.Quote("swap_exact_out", "insufficient_liquidity")
		return ExactOutQuote{}, ErrInsufficientLiquidity
	}
	amounts, err := s.chain.Router(s.router).GetAmountsIn(ctx, out, path(pair))
	if err != nil {
		return ExactOutQuote{}, fmt.Errorf("router amounts in: %w", err)
	}
	if len(amounts) != 2 {
		return ExactOutQuote{}, ErrRouterQuote
	}
	verdict := quote.Validate(amounts[0], snap.BalanceA)
	s.metrics.Quote("swap_exact_out", verdictLabel(verdict))
	return ExactOutQuote{
		Snapshot:  snap,
		AmountOut: out,
		AmountIn:  amounts[0],
		MaximumIn: quote.MaximumInput(amounts[0], s.slippageBps),
		Verdict:   verdict,
	}, nil
}

// Swap sells exactly humanAmount of pair.A, accepting no less than the
// router's quote minus the slippage tolerance.
func (s *SwapService) Swap(ctx context.Context, pair token.Pair, humanAmount string) (res TxResult, err error) {
	defer func() { s.report(err, "Success, please check your "+pair.B.Name+" balance") }()

	account, err := s.signerAccount(ctx)
	if err != nil {
		return TxResult{}, err
	}
	q, err := s.Quote(ctx, pair, account, humanAmount)
	if err != nil {
		return TxResult{}, err
	}
	if err := inputErr(q.Form.In); err != nil {
		return TxResult{}, err
	}
	if q.RouterErr != nil {
		return TxResult{}, q.RouterErr
	}
	if q.RouterOut == nil || q.RouterOut.Sign() == 0 {
		return TxResult{}, ErrInsufficientLiquidity
	}
	amountIn, minOut := q.Form.In.Units, q.Form.MinOut

	if err := s.ensureAllowance(ctx, s.chain.Token(pair.A.Address), account, s.router, amountIn); err != nil {
		return TxResult{}, err
	}
	return s.execute(ctx, "swap", func(ctx context.Context) (*types.Transaction, error) {
		return s.chain.Router(s.router).SwapExactTokensForTokens(ctx, amountIn, minOut, path(pair), account, s.deadlineUnix())
	})
}

// SwapExactOut buys exactly humanAmount of pair.B, spending no more than the
// router's quote plus the slippage tolerance.
func (s *SwapService) SwapExactOut(ctx context.Context, pair token.Pair, humanAmount string) (res TxResult, err error) {
	defer func() { s.report(err, "Success, please check your "+pair.B.Name+" balance") }()

	account, err := s.signerAccount(ctx)
	if err != nil {
		return TxResult{}, err
	}
	q, err := s.QuoteExactOut(ctx, pair, humanAmount)
	if err != nil {
		return TxResult{}, err
	}
	if err := q.Verdict.Err(); err != nil {
		return TxResult{}, err
	}

	if err := s.ensureAllowance(ctx, s.chain.Token(pair.A.Address), account, s.router, q.MaximumIn); err != nil {
		return TxResult{}, err
	}
	return s.execute(ctx, "swap_exact_out", func(ctx context.Context) (*types.Transaction, error) {
		return s.chain.Router(s.router).SwapTokensForExactTokens(ctx, q.AmountOut, q.MaximumIn, path(pair), account, s.deadlineUnix())
	})
}

// inputErr maps a form input state to the quote sentinels.
func inputErr(in form.Input) error {
	switch in.State {
	case form.Valid:
		return nil
	case form.Insufficient:
		return quote.ErrInsufficientBalance
	default:
		return quote.ErrInvalidAmount
	}
}

func verdictLabel(v quote.Verdict) string {
	switch {
	case v.Valid:
		return form.Valid.String()
	case v.Insufficient:
		return form.Insufficient.String()
	default:
		return form.Invalid.String()
	}
}

func positive(v *big.Int) bool {
	return v != nil && v.Sign() > 0
}
