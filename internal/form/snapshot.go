package form

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/nulln0ne/rdx-dex/internal/token"
)

// Snapshot is the on-chain state the forms of one pair are validated
// against. Reserves are ordered as Pair.A / Pair.B regardless of the pair
// contract's token0. It is stale between refreshes.
type Snapshot struct {
	Pair    token.Pair     `json:"pair"`
	Account common.Address `json:"account"`

	DecimalsA  int32 `json:"decimals_a"`
	DecimalsB  int32 `json:"decimals_b"`
	DecimalsLP int32 `json:"decimals_lp"`

	ReserveA *big.Int `json:"reserve_a"`
	ReserveB *big.Int `json:"reserve_b"`
	LPSupply *big.Int `json:"lp_supply"`

	BalanceA  *big.Int `json:"balance_a"`
	BalanceB  *big.Int `json:"balance_b"`
	BalanceLP *big.Int `json:"balance_lp"`

	NeedApproveA  bool `json:"need_approve_a"`
	NeedApproveB  bool `json:"need_approve_b"`
	NeedApproveLP bool `json:"need_approve_lp"`
}

// PoolHasDeposited reports whether the pool already has a price.
func (s Snapshot) PoolHasDeposited() bool {
	return positive(s.ReserveA) && positive(s.ReserveB)
}

// K is the constant-product invariant reserveA*reserveB.
func (s Snapshot) K() *big.Int {
	if s.ReserveA == nil || s.ReserveB == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(s.ReserveA, s.ReserveB)
}

// Reversed describes the same pool with A and B swapped.
func (s Snapshot) Reversed() Snapshot {
	r := s
	r.Pair = s.Pair.Reversed()
	r.DecimalsA, r.DecimalsB = s.DecimalsB, s.DecimalsA
	r.ReserveA, r.ReserveB = s.ReserveB, s.ReserveA
	r.BalanceA, r.BalanceB = s.BalanceB, s.BalanceA
	r.NeedApproveA, r.NeedApproveB = s.NeedApproveB, s.NeedApproveA
	return r
}

// Loader fetches a Snapshot for a pair. Implementations perform the remote
// calls; the forms only ever see completed values.
type Loader interface {
	Load(ctx context.Context, pair token.Pair) (Snapshot, error)
}

func positive(v *big.Int) bool {
	return v != nil && v.Sign() > 0
}
