// Package handler defines HTTP request handlers and related utilities.
package handler

import (
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/nulln0ne/rdx-dex/internal/quote"
	"github.com/nulln0ne/rdx-dex/internal/token"
)

// BaseHandler provides common dependencies for HTTP handlers.
type BaseHandler struct {
	logger   *slog.Logger
	registry *token.Registry
}

// Amount is a token amount in smallest units plus its display form.
type Amount struct {
	Units     string `json:"units"`
	Formatted string `json:"formatted"`
}

func amount(units *big.Int, decimals int32) Amount {
	if units == nil {
		return Amount{Formatted: quote.FormatAmount(nil, decimals)}
	}
	return Amount{Units: units.String(), Formatted: quote.FormatAmount(units, decimals)}
}

// pair resolves two token names or addresses into a pair.
func (h *BaseHandler) pair(a, b string) (token.Pair, error) {
	ta, err := h.registry.Find(a)
	if err != nil {
		return token.Pair{}, err
	}
	tb, err := h.registry.Find(b)
	if err != nil {
		return token.Pair{}, err
	}
	return token.NewPair(ta, tb)
}

// account parses the optional account parameter; empty selects the wallet's
// account.
func account(s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, ErrInvalidAccount
	}
	return common.HexToAddress(s), nil
}
