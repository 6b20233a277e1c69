package quote

import (
	"math/big"

	"github.com/nulln0ne/rdx-dex/pkg/uniswapv2"
)

// BasisPoints is the denominator of slippage tolerances: 10000 = 100%.
const BasisPoints = 10_000

// DefaultSlippageBps is the default slippage tolerance (5%).
const DefaultSlippageBps = 500

var bpsDen = big.NewInt(BasisPoints)

// QuoteSwapOutput estimates the output of swapping inputAmount against a
// constant-product pool holding reserveIn and reserveOut. The result is the
// floor of reserveOut - k/(reserveIn+inputAmount), zero when there is no
// input or no liquidity, and always below reserveOut.
func QuoteSwapOutput(inputAmount, reserveIn, reserveOut *big.Int) *big.Int {
	if !nonNegative(inputAmount) || !nonNegative(reserveIn) || !nonNegative(reserveOut) {
		return new(big.Int)
	}
	var dst, t1, t2 big.Int
	return new(big.Int).Set(uniswapv2.ConstantProductOut(&dst, &t1, &t2, inputAmount, reserveIn, reserveOut))
}

// QuoteSwapOutputExact is QuoteSwapOutput without rounding.
func QuoteSwapOutputExact(inputAmount, reserveIn, reserveOut *big.Int) *big.Rat {
	if !nonNegative(inputAmount) || !nonNegative(reserveIn) || !nonNegative(reserveOut) {
		return new(big.Rat)
	}
	return uniswapv2.ConstantProductOutRat(inputAmount, reserveIn, reserveOut)
}

// MinimumOutput applies a slippage tolerance to an estimated output, rounding
// down: amount*(10000-bps)/10000.
func MinimumOutput(amount *big.Int, slippageBps uint32) *big.Int {
	if amount == nil {
		return new(big.Int)
	}
	if slippageBps > BasisPoints {
		slippageBps = BasisPoints
	}
	out := new(big.Int).Mul(amount, big.NewInt(int64(BasisPoints-slippageBps)))
	return out.Div(out, bpsDen)
}

// MaximumInput applies a slippage tolerance to a required input, rounding
// up: ceil(amount*(10000+bps)/10000).
func MaximumInput(amount *big.Int, slippageBps uint32) *big.Int {
	if amount == nil {
		return new(big.Int)
	}
	num := new(big.Int).Mul(amount, big.NewInt(int64(BasisPoints)+int64(slippageBps)))
	num.Add(num, new(big.Int).Sub(bpsDen, big.NewInt(1)))
	return num.Div(num, bpsDen)
}

func nonNegative(v *big.Int) bool {
	return v != nil && v.Sign() >= 0
}
