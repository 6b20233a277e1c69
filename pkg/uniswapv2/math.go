// Package uniswapv2 mirrors the integer arithmetic of Uniswap V2 style pairs
// and routers. Functions taking dst/t1/t2 reuse caller-owned temporaries so
// that hot paths do not allocate.
package uniswapv2

import "math/big"

// fee: 0.3% => multiplier 997/1000
var (
	feeMul = big.NewInt(997)
	feeDen = big.NewInt(1000)
	one    = big.NewInt(1)
)

// GetAmountOut mirrors UniswapV2Library.getAmountOut (fee-bearing).
func GetAmountOut(dst, t1, t2 *big.Int, amountIn, reserveIn, reserveOut *big.Int) *big.Int {
	// t1 = amountIn * 997
	t1.Mul(amountIn, feeMul)
	// t2 = reserveIn * 1000
	t2.Mul(reserveIn, feeDen)
	// t2 = t2 + t1  (denominator)
	t2.Add(t2, t1)
	// dst = t1 * reserveOut (numerator)
	dst.Mul(t1, reserveOut)
	// dst = dst / t2  (avoid aliasing z==y)
	return dst.Div(dst, t2)
}

// GetAmountIn mirrors UniswapV2Library.getAmountIn. amountOut must be below
// reserveOut; otherwise the pair cannot supply it and nil is returned.
func GetAmountIn(dst, t1, t2 *big.Int, amountOut, reserveIn, reserveOut *big.Int) *big.Int {
	if amountOut.Cmp(reserveOut) >= 0 {
		return nil
	}
	// t1 = reserveIn * amountOut * 1000
	t1.Mul(reserveIn, amountOut)
	t1.Mul(t1, feeDen)
	// t2 = (reserveOut - amountOut) * 997
	t2.Sub(reserveOut, amountOut)
	t2.Mul(t2, feeMul)
	dst.Div(t1, t2)
	return dst.Add(dst, one)
}

// ConstantProductOut returns the fee-free constant-product output
// reserveOut - k/(reserveIn+amountIn), rounded down to whole units. It is
// computed as amountIn*reserveOut/(reserveIn+amountIn), which is the same
// quantity without the intermediate k.
func ConstantProductOut(dst, t1, t2 *big.Int, amountIn, reserveIn, reserveOut *big.Int) *big.Int {
	if amountIn.Sign() == 0 || reserveIn.Sign() == 0 {
		return dst.SetInt64(0)
	}
	t1.Mul(amountIn, reserveOut)
	t2.Add(reserveIn, amountIn)
	return dst.Div(t1, t2)
}

// ConstantProductOutRat is the exact rational value of ConstantProductOut.
func ConstantProductOutRat(amountIn, reserveIn, reserveOut *big.Int) *big.Rat {
	if amountIn.Sign() == 0 || reserveIn.Sign() == 0 {
		return new(big.Rat)
	}
	k := new(big.Int).Mul(reserveIn, reserveOut)
	denom := new(big.Int).Add(reserveIn, amountIn)
	out := new(big.Rat).SetFrac(k, denom)
	return out.Sub(new(big.Rat).SetInt(reserveOut), out)
}

// Quote mirrors UniswapV2Library.quote: the amount of the other token that
// keeps the pool ratio when depositing amountA. reserveA must be non-zero.
func Quote(dst, t1 *big.Int, amountA, reserveA, reserveB *big.Int) *big.Int {
	t1.Mul(amountA, reserveB)
	return dst.Div(t1, reserveA)
}

// LiquidityShare returns liquidity*reserve/totalSupply, the amount of a
// reserve token a burn of liquidity redeems. Zero supply yields zero.
func LiquidityShare(dst, t1 *big.Int, liquidity, totalSupply, reserve *big.Int) *big.Int {
	if totalSupply.Sign() == 0 {
		return dst.SetInt64(0)
	}
	t1.Mul(liquidity, reserve)
	return dst.Div(t1, totalSupply)
}
