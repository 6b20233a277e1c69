package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nulln0ne/rdx-dex/internal/eth"
	"github.com/nulln0ne/rdx-dex/internal/form"
	"github.com/nulln0ne/rdx-dex/internal/token"
	"github.com/nulln0ne/rdx-dex/internal/wallet"
)

const (
	decimalsCacheSize = 256
	// lpDecimals is used for pairs that do not exist yet.
	lpDecimals = 18
)

// StateLoader reads the on-chain state of a pair for the forms.
type StateLoader struct {
	logger   *slog.Logger
	chain    Chain
	wallet   wallet.Provider
	router   common.Address
	factory  common.Address
	decimals *lru.Cache[common.Address, int32]
}

func NewStateLoader(logger *slog.Logger, chain Chain, w wallet.Provider, router, factory common.Address) (*StateLoader, error) {
	cache, err := lru.New[common.Address, int32](decimalsCacheSize)
	if err != nil {
		return nil, err
	}
	return &StateLoader{
		logger:   logger,
		chain:    chain,
		wallet:   w,
		router:   router,
		factory:  factory,
		decimals: cache,
	}, nil
}

// Decimals returns the decimals of a token, cached since they never change.
func (l *StateLoader) Decimals(ctx context.Context, address common.Address) (int32, error) {
	if d, ok := l.decimals.Get(address); ok {
		return d, nil
	}
	raw, err := l.chain.Token(address).Decimals(ctx)
	if err != nil {
		return 0, fmt.Errorf("decimals of %s: %w", address.Hex(), err)
	}
	d := int32(raw)
	l.decimals.Add(address, d)
	return d, nil
}

// AccountLoader loads pair snapshots for the wallet's account or for an
// explicit one.
type AccountLoader interface {
	form.Loader
	LoadFor(ctx context.Context, pair token.Pair, account common.Address) (form.Snapshot, error)
}

// Load implements form.Loader for the wallet's account.
func (l *StateLoader) Load(ctx context.Context, pair token.Pair) (form.Snapshot, error) {
	return l.LoadFor(ctx, pair, common.Address{})
}

// LoadFor reads pair with the balances and allowances of account. The zero
// address means the wallet's account; without one the balances are zero. A
// pair the factory has not created yet loads as an empty pool.
func (l *StateLoader) LoadFor(ctx context.Context, pair token.Pair, account common.Address) (form.Snapshot, error) {
	snap := form.Snapshot{
		Pair:       pair,
		DecimalsLP: lpDecimals,
		ReserveA:   new(big.Int),
		ReserveB:   new(big.Int),
		LPSupply:   new(big.Int),
		BalanceA:   new(big.Int),
		BalanceB:   new(big.Int),
		BalanceLP:  new(big.Int),
	}

	var err error
	if snap.DecimalsA, err = l.Decimals(ctx, pair.A.Address); err != nil {
		return form.Snapshot{}, err
	}
	if snap.DecimalsB, err = l.Decimals(ctx, pair.B.Address); err != nil {
		return form.Snapshot{}, err
	}

	pairAddr, err := l.chain.Factory(l.factory).GetPair(ctx, pair.A.Address, pair.B.Address)
	switch {
	case errors.Is(err, eth.ErrNoPair):
		l.logger.Debug("pair not created yet", "a", pair.A.Name, "b", pair.B.Name)
	case err != nil:
		return form.Snapshot{}, fmt.Errorf("get pair: %w", err)
	default:
		snap.Pair.LP = token.Descriptor{Address: pairAddr, Name: pair.A.Name + "-" + pair.B.Name + " LP"}
		if err := l.loadPool(ctx, &snap); err != nil {
			return form.Snapshot{}, err
		}
	}

	if account == (common.Address{}) {
		var ok bool
		if account, ok = l.wallet.Account(ctx); !ok {
			return snap, nil
		}
	}
	snap.Account = account
	if err := l.loadAccount(ctx, &snap); err != nil {
		return form.Snapshot{}, err
	}
	return snap, nil
}

func (l *StateLoader) loadPool(ctx context.Context, snap *form.Snapshot) error {
	p := l.chain.Pair(snap.Pair.LP.Address)
	var err error
	if snap.DecimalsLP, err = l.Decimals(ctx, snap.Pair.LP.Address); err != nil {
		return err
	}
	r0, r1, err := p.GetReserves(ctx)
	if err != nil {
		return fmt.Errorf("reserves: %w", err)
	}
	token0, err := p.Token0(ctx)
	if err != nil {
		return fmt.Errorf("token0: %w", err)
	}
	if token0 == snap.Pair.A.Address {
		snap.ReserveA, snap.ReserveB = r0, r1
	} else {
		snap.ReserveA, snap.ReserveB = r1, r0
	}
	if snap.LPSupply, err = p.TotalSupply(ctx); err != nil {
		return fmt.Errorf("lp supply: %w", err)
	}
	return nil
}

func (l *StateLoader) loadAccount(ctx context.Context, snap *form.Snapshot) error {
	var err error
	snap.BalanceA, snap.NeedApproveA, err = l.holding(ctx, snap.Pair.A.Address, snap.Account)
	if err != nil {
		return err
	}
	snap.BalanceB, snap.NeedApproveB, err = l.holding(ctx, snap.Pair.B.Address, snap.Account)
	if err != nil {
		return err
	}
	if snap.Pair.LP.Selected() {
		snap.BalanceLP, snap.NeedApproveLP, err = l.holding(ctx, snap.Pair.LP.Address, snap.Account)
		if err != nil {
			return err
		}
	}
	return nil
}

// holding reads the balance of account and whether the router allowance
// falls short of it.
func (l *StateLoader) holding(ctx context.Context, tokenAddr, account common.Address) (*big.Int, bool, error) {
	tok := l.chain.Token(tokenAddr)
	balance, err := tok.BalanceOf(ctx, account)
	if err != nil {
		return nil, false, fmt.Errorf("balance of %s: %w", tokenAddr.Hex(), err)
	}
	allowance, err := tok.Allowance(ctx, account, l.router)
	if err != nil {
		return nil, false, fmt.Errorf("allowance of %s: %w", tokenAddr.Hex(), err)
	}
	return balance, allowance.Cmp(balance) < 0, nil
}
