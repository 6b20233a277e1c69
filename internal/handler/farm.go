package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/nulln0ne/rdx-dex/internal/service"
)

// Farmer is the staking capability the handler needs.
type Farmer interface {
	Info(ctx context.Context) (service.FarmInfo, error)
	Deposit(ctx context.Context, humanAmount string) (service.TxResult, error)
	Withdraw(ctx context.Context, humanAmount string) (service.TxResult, error)
	Claim(ctx context.Context) (service.TxResult, error)
}

type FarmHandler struct {
	BaseHandler
	service Farmer
}

func NewFarmHandler(logger *slog.Logger, svc Farmer) *FarmHandler {
	return &FarmHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

type FarmAmountRequest struct {
	Amount string `json:"amount"`
}

type FarmInfoResponse struct {
	Account       string `json:"account"`
	Deposited     Amount `json:"deposited"`
	FarmBalance   Amount `json:"farm_balance"`
	RewardBalance Amount `json:"reward_balance"`
	PendingReward Amount `json:"pending_reward"`
}

// Info handles GET /farm.
func (h *FarmHandler) Info() fiber.Handler {
	return func(c fiber.Ctx) error {
		info, err := h.service.Info(c.Context())
		if err != nil {
			return h.mapError(err)
		}
		return c.JSON(FarmInfoResponse{
			Account:       info.Account.Hex(),
			Deposited:     amount(info.Deposited, info.FarmDecimals),
			FarmBalance:   amount(info.FarmBalance, info.FarmDecimals),
			RewardBalance: amount(info.RewardBalance, info.RewardDecimals),
			PendingReward: amount(info.PendingReward, info.RewardDecimals),
		})
	}
}

// Deposit handles POST /farm/deposit.
func (h *FarmHandler) Deposit() fiber.Handler {
	return h.amountAction(h.service.Deposit)
}

// Withdraw handles POST /farm/withdraw.
func (h *FarmHandler) Withdraw() fiber.Handler {
	return h.amountAction(h.service.Withdraw)
}

// Claim handles POST /farm/claim.
func (h *FarmHandler) Claim() fiber.Handler {
	return func(c fiber.Ctx) error {
		res, err := h.service.Claim(c.Context())
		if err != nil {
			return h.mapError(err)
		}
		return c.JSON(res)
	}
}

func (h *FarmHandler) amountAction(action func(ctx context.Context, humanAmount string) (service.TxResult, error)) fiber.Handler {
	return func(c fiber.Ctx) error {
		var req FarmAmountRequest
		if err := c.Bind().Body(&req); err != nil {
			h.logger.Debug("failed to bind body", "err", err)
			return ErrInvalidBody
		}
		if req.Amount == "" {
			return ErrAmountRequired
		}
		res, err := action(c.Context(), req.Amount)
		if err != nil {
			return h.mapError(err)
		}
		return c.JSON(res)
	}
}
