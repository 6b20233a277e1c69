package quote

import (
	"math/big"
	"strconv"
)

// Shortcuts are the balance percentages offered next to amount inputs; 100
// is labelled "Max".
var Shortcuts = []uint32{25, 50, 75, 100}

// PercentOfBalance returns percent% of balance in smallest units, rounded
// down. Percentages above 100 are clamped.
func PercentOfBalance(balance *big.Int, percent uint32) *big.Int {
	if balance == nil || balance.Sign() <= 0 {
		return new(big.Int)
	}
	if percent >= 100 {
		return new(big.Int).Set(balance)
	}
	out := new(big.Int).Mul(balance, big.NewInt(int64(percent)))
	return out.Div(out, big.NewInt(100))
}

// ShortcutLabel names a percentage shortcut.
func ShortcutLabel(percent uint32) string {
	if percent >= 100 {
		return "Max"
	}
	return strconv.FormatUint(uint64(percent), 10) + "%"
}
