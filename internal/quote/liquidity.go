package quote

import (
	"math/big"

	"github.com/nulln0ne/rdx-dex/pkg/uniswapv2"
)

// QuoteLiquidityPair returns the amount of the other token to deposit
// alongside inputAmount so the pool ratio is kept. An empty pool has no ratio
// yet; ok is false and the paired side is left to the depositor.
func QuoteLiquidityPair(inputAmount, reserveSelf, reserveOther *big.Int, poolHasDeposited bool) (paired *big.Int, ok bool) {
	if !poolHasDeposited {
		return nil, false
	}
	if !nonNegative(inputAmount) || !nonNegative(reserveOther) || reserveSelf == nil || reserveSelf.Sign() <= 0 {
		return nil, false
	}
	var dst, t1 big.Int
	return new(big.Int).Set(uniswapv2.Quote(&dst, &t1, inputAmount, reserveSelf, reserveOther)), true
}

// ComputePooledShareAmount estimates lpAmountIn/lpTotal of
// totalReserveOfToken, multiplying before dividing. It is advisory: the pair
// contract decides the real payout.
func ComputePooledShareAmount(lpAmountIn, lpTotal, totalReserveOfToken *big.Int) *big.Int {
	if !nonNegative(lpAmountIn) || !nonNegative(totalReserveOfToken) || lpTotal == nil || lpTotal.Sign() <= 0 {
		return new(big.Int)
	}
	var dst, t1 big.Int
	return new(big.Int).Set(uniswapv2.LiquidityShare(&dst, &t1, lpAmountIn, lpTotal, totalReserveOfToken))
}

// RemoveEstimate is the advisory payout of burning LP tokens.
type RemoveEstimate struct {
	// PooledA and PooledB are the account's whole position in the pool.
	PooledA *big.Int
	PooledB *big.Int
	// AmountA and AmountB are the share of the position redeemed by the burn.
	AmountA *big.Int
	AmountB *big.Int
}

// EstimateRemove splits the account's LP position into pooled token amounts
// and then the burnt fraction of them.
func EstimateRemove(lpAmountIn, lpBalance, lpSupply, reserveA, reserveB *big.Int) RemoveEstimate {
	pooledA := ComputePooledShareAmount(lpBalance, lpSupply, reserveA)
	pooledB := ComputePooledShareAmount(lpBalance, lpSupply, reserveB)
	return RemoveEstimate{
		PooledA: pooledA,
		PooledB: pooledB,
		AmountA: ComputePooledShareAmount(lpAmountIn, lpBalance, pooledA),
		AmountB: ComputePooledShareAmount(lpAmountIn, lpBalance, pooledB),
	}
}
