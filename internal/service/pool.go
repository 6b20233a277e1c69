package service

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/nulln0ne/rdx-dex/internal/eth"
	"github.com/nulln0ne/rdx-dex/internal/form"
	"github.com/nulln0ne/rdx-dex/internal/quote"
	"github.com/nulln0ne/rdx-dex/internal/token"
)

// Side names the input of a liquidity form the user typed into.
type Side int

const (
	SideA Side = iota
	SideB
)

type LiquidityQuote struct {
	Snapshot  form.Snapshot      `json:"snapshot"`
	Form      form.LiquidityForm `json:"form"`
	Label     string             `json:"label"`
	CanSubmit bool               `json:"can_submit"`
}

type RemoveQuote struct {
	Snapshot  form.Snapshot        `json:"snapshot"`
	Form      form.RemoveForm      `json:"form"`
	Estimate  quote.RemoveEstimate `json:"estimate"`
	Label     string               `json:"label"`
	CanSubmit bool                 `json:"can_submit"`
}

// PoolService adds and removes liquidity through the router.
type PoolService struct {
	BaseService
	loader AccountLoader
	router common.Address
}

func NewPoolService(d Deps, loader AccountLoader, router common.Address) *PoolService {
	return &PoolService{BaseService: newBase(d), loader: loader, router: router}
}

// QuoteAdd pairs humanAmount of the given side with the amount of the other
// token that keeps the pool ratio. Balances are those of account, or the
// wallet's when zero.
func (s *PoolService) QuoteAdd(ctx context.Context, pair token.Pair, account common.Address, side Side, humanAmount string) (LiquidityQuote, error) {
	snap, err := s.loader.LoadFor(ctx, pair, account)
	if err != nil {
		return LiquidityQuote{}, err
	}
	var f form.LiquidityForm
	if side == SideB {
		f.SetB(humanAmount, snap)
	} else {
		f.SetA(humanAmount, snap)
	}
	s.metrics.Quote("add_liquidity", liquidityState(f).String())
	return LiquidityQuote{Snapshot: snap, Form: f, Label: f.Label(snap), CanSubmit: f.CanSubmit(snap)}, nil
}

// QuoteAddPair validates both amounts of a deposit into a pool that has no
// price yet. Pools with a price ignore humanB and derive it.
func (s *PoolService) QuoteAddPair(ctx context.Context, pair token.Pair, account common.Address, humanA, humanB string) (LiquidityQuote, error) {
	snap, err := s.loader.LoadFor(ctx, pair, account)
	if err != nil {
		return LiquidityQuote{}, err
	}
	var f form.LiquidityForm
	if !snap.PoolHasDeposited() {
		f.SetB(humanB, snap)
	}
	f.SetA(humanA, snap)
	s.metrics.Quote("add_liquidity", liquidityState(f).String())
	return LiquidityQuote{Snapshot: snap, Form: f, Label: f.Label(snap), CanSubmit: f.CanSubmit(snap)}, nil
}

// AddLiquidity deposits humanA of pair.A and the matching amount of pair.B.
// humanB is only used while the pool is empty.
func (s *PoolService) AddLiquidity(ctx context.Context, pair token.Pair, humanA, humanB string) (res TxResult, err error) {
	defer func() { s.report(err, "Success, please check your "+pair.A.Name+"-"+pair.B.Name+" LP balance") }()

	account, err := s.signerAccount(ctx)
	if err != nil {
		return TxResult{}, err
	}
	q, err := s.QuoteAddPair(ctx, pair, account, humanA, humanB)
	if err != nil {
		return TxResult{}, err
	}
	if err := inputErr(q.Form.A); err != nil {
		return TxResult{}, err
	}
	if err := inputErr(q.Form.B); err != nil {
		return TxResult{}, err
	}
	amountA, amountB := q.Form.A.Units, q.Form.B.Units

	if err := s.ensureAllowance(ctx, s.chain.Token(pair.A.Address), account, s.router, amountA); err != nil {
		return TxResult{}, err
	}
	if err := s.ensureAllowance(ctx, s.chain.Token(pair.B.Address), account, s.router, amountB); err != nil {
		return TxResult{}, err
	}
	params := eth.AddLiquidityParams{
		TokenA:         pair.A.Address,
		TokenB:         pair.B.Address,
		AmountADesired: amountA,
		AmountBDesired: amountB,
		AmountAMin:     quote.MinimumOutput(amountA, s.slippageBps),
		AmountBMin:     quote.MinimumOutput(amountB, s.slippageBps),
		To:             account,
		Deadline:       s.deadlineUnix(),
	}
	return s.execute(ctx, "add_liquidity", func(ctx context.Context) (*types.Transaction, error) {
		return s.chain.Router(s.router).AddLiquidity(ctx, params)
	})
}

// QuoteRemove estimates the tokens returned to account (the wallet's when
// zero) for burning humanLP.
func (s *PoolService) QuoteRemove(ctx context.Context, pair token.Pair, account common.Address, humanLP string) (RemoveQuote, error) {
	snap, err := s.loader.LoadFor(ctx, pair, account)
	if err != nil {
		return RemoveQuote{}, err
	}
	var f form.RemoveForm
	f.SetLP(humanLP, snap)
	est := quote.EstimateRemove(orZero(f.LP.Units), snap.BalanceLP, snap.LPSupply, snap.ReserveA, snap.ReserveB)
	s.metrics.Quote("remove_liquidity", f.LP.State.String())
	return RemoveQuote{Snapshot: snap, Form: f, Estimate: est, Label: f.Label(snap), CanSubmit: f.CanSubmit(snap)}, nil
}

// RemoveLiquidity burns humanLP of the pair's liquidity token.
func (s *PoolService) RemoveLiquidity(ctx context.Context, pair token.Pair, humanLP string) (res TxResult, err error) {
	defer func() { s.report(err, "Success, please check your "+pair.A.Name+" and "+pair.B.Name+" balance") }()

	account, err := s.signerAccount(ctx)
	if err != nil {
		return TxResult{}, err
	}
	q, err := s.QuoteRemove(ctx, pair, account, humanLP)
	if err != nil {
		return TxResult{}, err
	}
	if !q.Snapshot.Pair.LP.Selected() {
		return TxResult{}, eth.ErrNoPair
	}
	if err := inputErr(q.Form.LP); err != nil {
		return TxResult{}, err
	}
	liquidity := q.Form.LP.Units

	if err := s.ensureAllowance(ctx, s.chain.Token(q.Snapshot.Pair.LP.Address), account, s.router, liquidity); err != nil {
		return TxResult{}, err
	}
	params := eth.RemoveLiquidityParams{
		TokenA:     pair.A.Address,
		TokenB:     pair.B.Address,
		Liquidity:  liquidity,
		AmountAMin: quote.MinimumOutput(q.Estimate.AmountA, s.slippageBps),
		AmountBMin: quote.MinimumOutput(q.Estimate.AmountB, s.slippageBps),
		To:         account,
		Deadline:   s.deadlineUnix(),
	}
	return s.execute(ctx, "remove_liquidity", func(ctx context.Context) (*types.Transaction, error) {
		return s.chain.Router(s.router).RemoveLiquidity(ctx, params)
	})
}

// liquidityState is the least advanced state of the two inputs.
func liquidityState(f form.LiquidityForm) form.State {
	if f.A.State < f.B.State {
		return f.A.State
	}
	return f.B.State
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
