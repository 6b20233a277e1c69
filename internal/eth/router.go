package eth

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// RouterContract is a Uniswap V2 Router02 compatible router.
type RouterContract struct {
	contract
}

type AddLiquidityParams struct {
	TokenA, TokenB common.Address
	AmountADesired *big.Int
	AmountBDesired *big.Int
	AmountAMin     *big.Int
	AmountBMin     *big.Int
	To             common.Address
	Deadline       *big.Int
}

type RemoveLiquidityParams struct {
	TokenA, TokenB common.Address
	Liquidity      *big.Int
	AmountAMin     *big.Int
	AmountBMin     *big.Int
	To             common.Address
	Deadline       *big.Int
}

func (r *RouterContract) Factory(ctx context.Context) (common.Address, error) {
	return r.callAddress(ctx, "factory")
}

// GetAmountOut runs the router's pure fee-bearing formula.
func (r *RouterContract) GetAmountOut(ctx context.Context, amountIn, reserveIn, reserveOut *big.Int) (*big.Int, error) {
	return r.callBig(ctx, common.Address{}, "getAmountOut", amountIn, reserveIn, reserveOut)
}

func (r *RouterContract) GetAmountsOut(ctx context.Context, amountIn *big.Int, path []common.Address) ([]*big.Int, error) {
	values, err := r.call(ctx, common.Address{}, "getAmountsOut", amountIn, path)
	if err != nil {
		return nil, err
	}
	return bigsAt(values, 0, "getAmountsOut")
}

func (r *RouterContract) GetAmountsIn(ctx context.Context, amountOut *big.Int, path []common.Address) ([]*big.Int, error) {
	values, err := r.call(ctx, common.Address{}, "getAmountsIn", amountOut, path)
	if err != nil {
		return nil, err
	}
	return bigsAt(values, 0, "getAmountsIn")
}

func (r *RouterContract) AddLiquidity(ctx context.Context, p AddLiquidityParams) (*types.Transaction, error) {
	return r.transact(ctx, "addLiquidity", p.TokenA, p.TokenB, p.AmountADesired, p.AmountBDesired, p.AmountAMin, p.AmountBMin, p.To, p.Deadline)
}

func (r *RouterContract) RemoveLiquidity(ctx context.Context, p RemoveLiquidityParams) (*types.Transaction, error) {
	return r.transact(ctx, "removeLiquidity", p.TokenA, p.TokenB, p.Liquidity, p.AmountAMin, p.AmountBMin, p.To, p.Deadline)
}

func (r *RouterContract) SwapExactTokensForTokens(ctx context.Context, amountIn, amountOutMin *big.Int, path []common.Address, to common.Address, deadline *big.Int) (*types.Transaction, error) {
	return r.transact(ctx, "swapExactTokensForTokens", amountIn, amountOutMin, path, to, deadline)
}

func (r *RouterContract) SwapTokensForExactTokens(ctx context.Context, amountOut, amountInMax *big.Int, path []common.Address, to common.Address, deadline *big.Int) (*types.Transaction, error) {
	return r.transact(ctx, "swapTokensForExactTokens", amountOut, amountInMax, path, to, deadline)
}
