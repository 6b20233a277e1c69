// Package quote translates one side of a swap, add-liquidity or
// remove-liquidity entry into the other side and judges whether the entry can
// be submitted. It performs no I/O: reserves, balances and allowances are
// fetched by callers and passed in as values.
package quote

import (
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// RoundedPlaces is the number of fractional digits used when rendering
// amounts for display.
const RoundedPlaces = 6

// maxUint256Digits is the number of decimal digits of 2^256-1.
const maxUint256Digits = 78

// CorrectDecimals converts a human readable amount into the token's smallest
// unit: round(humanValue * 10^decimals).
func CorrectDecimals(humanValue string, decimals int32) (*big.Int, error) {
	if decimals < 0 {
		return nil, ErrInvalidAmount
	}
	d, err := parseHuman(humanValue)
	if err != nil {
		return nil, err
	}
	// Integer digits of the scaled value; bounded before Shift materializes it.
	if int64(d.NumDigits())+int64(d.Exponent())+int64(decimals) > maxUint256Digits {
		return nil, ErrInvalidAmount
	}
	units := d.Shift(decimals).Round(0).BigInt()
	if !FitsUint256(units) {
		return nil, ErrInvalidAmount
	}
	return units, nil
}

func parseHuman(v string) (decimal.Decimal, error) {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, ".")
	if strings.HasPrefix(v, ".") {
		v = "0" + v
	}
	// Plain decimal notation only.
	if v == "" || strings.ContainsAny(v, "eE") {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ToHuman returns the exact human readable value of units.
func ToHuman(units *big.Int, decimals int32) decimal.Decimal {
	if units == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(units, -decimals)
}

// FormatAmount renders units rounded to RoundedPlaces fractional digits, or
// "-" when the amount is not known yet.
func FormatAmount(units *big.Int, decimals int32) string {
	if units == nil {
		return "-"
	}
	return ToHuman(units, decimals).StringFixed(RoundedPlaces)
}

// FitsUint256 reports whether v can be passed to a contract as a uint256.
func FitsUint256(v *big.Int) bool {
	if v == nil || v.Sign() < 0 {
		return false
	}
	_, overflow := uint256.FromBig(v)
	return !overflow
}

// MaxUint256 returns 2^256-1, the amount used for unlimited approvals.
func MaxUint256() *big.Int {
	return new(uint256.Int).SetAllOne().ToBig()
}
