package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/nulln0ne/rdx-dex/internal/eth"
	"github.com/nulln0ne/rdx-dex/internal/quote"
	"github.com/nulln0ne/rdx-dex/internal/service"
	"github.com/nulln0ne/rdx-dex/internal/token"
	"github.com/nulln0ne/rdx-dex/internal/wallet"
)

// ErrInvalidQueryParameters indicates that the request query string could not
// be parsed into the expected structure.
var ErrInvalidQueryParameters = fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")

// ErrInvalidBody indicates that the request body could not be decoded.
var ErrInvalidBody = fiber.NewError(fiber.StatusBadRequest, "invalid request body")

// ErrSameTokens is returned when both sides of a pair are the same token.
var ErrSameTokens = fiber.NewError(fiber.StatusBadRequest, "tokens of a pair cannot be the same")

// ErrUnknownToken is returned when a token is neither listed nor an address.
var ErrUnknownToken = fiber.NewError(fiber.StatusBadRequest, "unknown token")

// ErrAmountRequired is returned when the amount parameter is missing.
var ErrAmountRequired = fiber.NewError(fiber.StatusBadRequest, "amount is required")

// ErrInvalidAmount is returned for amounts that do not parse or are zero.
var ErrInvalidAmount = fiber.NewError(fiber.StatusBadRequest, "invalid amount")

// ErrInvalidAccount is returned when the account parameter is not an address.
var ErrInvalidAccount = fiber.NewError(fiber.StatusBadRequest, "invalid account")

// ErrInsufficientBalance is returned when an amount exceeds the balance.
var ErrInsufficientBalance = fiber.NewError(fiber.StatusUnprocessableEntity, "insufficient balance")

// ErrInsufficientLiquidity is returned when the pool cannot serve the trade.
var ErrInsufficientLiquidity = fiber.NewError(fiber.StatusUnprocessableEntity, "insufficient liquidity")

// ErrPairNotFound is returned when the factory has no pool for the tokens.
var ErrPairNotFound = fiber.NewError(fiber.StatusNotFound, "pair does not exist")

// ErrFarmNotConfigured is returned by farm routes without chef addresses.
var ErrFarmNotConfigured = fiber.NewError(fiber.StatusNotFound, "farm is not configured")

// ErrWalletNotConnected is returned when an action needs a signing wallet.
var ErrWalletNotConnected = fiber.NewError(fiber.StatusForbidden, "wallet is not connected")

// ErrWrongNetwork is returned when the node serves another chain.
var ErrWrongNetwork = fiber.NewError(fiber.StatusConflict, "wrong network")

// ErrRemoteFailure signals a failed contract call or transaction.
var ErrRemoteFailure = fiber.NewError(fiber.StatusBadGateway, service.FailureMessage)


func (h *BaseHandler) mapError(err error) error {
	switch {
	case errors.Is(err, token.ErrSameToken):
		return ErrSameTokens
	case errors.Is(err, token.ErrUnknownToken):
		return ErrUnknownToken
	case errors.Is(err, quote.ErrInvalidAmount):
		return ErrInvalidAmount
	case errors.Is(err, quote.ErrInsufficientBalance):
		return ErrInsufficientBalance
	case errors.Is(err, service.ErrInsufficientLiquidity):
		return ErrInsufficientLiquidity
	case errors.Is(err, eth.ErrNoPair):
		return ErrPairNotFound
	case errors.Is(err, service.ErrFarmNotConfigured):
		return ErrFarmNotConfigured
	case errors.Is(err, service.ErrNoAccount), errors.Is(err, wallet.ErrNoSigner):
		return ErrWalletNotConnected
	case errors.Is(err, wallet.ErrWrongNetwork):
		return ErrWrongNetwork
	default:
		h.logger.Error("service call failed", "err", err)
		return ErrRemoteFailure
	}
}
