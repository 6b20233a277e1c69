package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v3"

	"github.com/nulln0ne/rdx-dex/internal/service"
	"github.com/nulln0ne/rdx-dex/internal/token"
)

// Pooler is the liquidity capability the handler needs.
type Pooler interface {
	QuoteAdd(ctx context.Context, pair token.Pair, account common.Address, side service.Side, humanAmount string) (service.LiquidityQuote, error)
	QuoteAddPair(ctx context.Context, pair token.Pair, account common.Address, humanA, humanB string) (service.LiquidityQuote, error)
	AddLiquidity(ctx context.Context, pair token.Pair, humanA, humanB string) (service.TxResult, error)
	QuoteRemove(ctx context.Context, pair token.Pair, account common.Address, humanLP string) (service.RemoveQuote, error)
	RemoveLiquidity(ctx context.Context, pair token.Pair, humanLP string) (service.TxResult, error)
}

type PoolHandler struct {
	BaseHandler
	service Pooler
}

func NewPoolHandler(logger *slog.Logger, registry *token.Registry, svc Pooler) *PoolHandler {
	return &PoolHandler{
		BaseHandler: BaseHandler{
			logger:   logger,
			registry: registry,
		},
		service: svc,
	}
}

type LiquidityRequest struct {
	A       string `query:"a" json:"a"`
	B       string `query:"b" json:"b"`
	Amount  string `query:"amount" json:"amount"`
	Side    string `query:"side" json:"side"`
	AmountB string `query:"amount_b" json:"amount_b"`
	Account string `query:"account" json:"-"`
}

type RemoveRequest struct {
	A        string `query:"a" json:"a"`
	B        string `query:"b" json:"b"`
	LPAmount string `query:"lp_amount" json:"lp_amount"`
	Account  string `query:"account" json:"-"`
}

type LiquidityQuoteResponse struct {
	A            token.Descriptor `json:"a"`
	B            token.Descriptor `json:"b"`
	AmountA      Amount           `json:"amount_a"`
	AmountB      Amount           `json:"amount_b"`
	StateA       string           `json:"state_a"`
	StateB       string           `json:"state_b"`
	PoolDeposits bool             `json:"pool_has_deposited"`
	Label        string           `json:"label"`
	CanSubmit    bool             `json:"can_submit"`
}

type RemoveQuoteResponse struct {
	LP        token.Descriptor `json:"lp"`
	LPAmount  Amount           `json:"lp_amount"`
	State     string           `json:"state"`
	PooledA   Amount           `json:"pooled_a"`
	PooledB   Amount           `json:"pooled_b"`
	AmountA   Amount           `json:"amount_a"`
	AmountB   Amount           `json:"amount_b"`
	Label     string           `json:"label"`
	CanSubmit bool             `json:"can_submit"`
}

// QuoteAdd handles GET /quote/liquidity.
func (h *PoolHandler) QuoteAdd() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req LiquidityRequest
		if err := c.Bind().Query(&req); err != nil {
			h.logger.Debug("failed to bind query parameters", "err", err)
			return ErrInvalidQueryParameters
		}
		pair, err := h.parsePair(req.A, req.B, req.Amount)
		if err != nil {
			return err
		}
		acc, err := account(req.Account)
		if err != nil {
			return err
		}

		var q service.LiquidityQuote
		switch {
		case req.AmountB != "":
			q, err = h.service.QuoteAddPair(c.Context(), pair, acc, req.Amount, req.AmountB)
		case strings.EqualFold(req.Side, "b"):
			q, err = h.service.QuoteAdd(c.Context(), pair, acc, service.SideB, req.Amount)
		default:
			q, err = h.service.QuoteAdd(c.Context(), pair, acc, service.SideA, req.Amount)
		}
		if err != nil {
			return h.mapError(err)
		}
		snap := q.Snapshot
		return c.JSON(LiquidityQuoteResponse{
			A:            snap.Pair.A,
			B:            snap.Pair.B,
			AmountA:      amount(q.Form.A.Units, snap.DecimalsA),
			AmountB:      amount(q.Form.B.Units, snap.DecimalsB),
			StateA:       q.Form.A.State.String(),
			StateB:       q.Form.B.State.String(),
			PoolDeposits: snap.PoolHasDeposited(),
			Label:        q.Label,
			CanSubmit:    q.CanSubmit,
		})
	}
}

// Add handles POST /liquidity/add.
func (h *PoolHandler) Add() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req LiquidityRequest
		if err := c.Bind().Body(&req); err != nil {
			h.logger.Debug("failed to bind body", "err", err)
			return ErrInvalidBody
		}
		pair, err := h.parsePair(req.A, req.B, req.Amount)
		if err != nil {
			return err
		}
		res, err := h.service.AddLiquidity(c.Context(), pair, req.Amount, req.AmountB)
		if err != nil {
			return h.mapError(err)
		}
		return c.JSON(res)
	}
}

// QuoteRemove handles GET /quote/remove.
func (h *PoolHandler) QuoteRemove() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req RemoveRequest
		if err := c.Bind().Query(&req); err != nil {
			h.logger.Debug("failed to bind query parameters", "err", err)
			return ErrInvalidQueryParameters
		}
		pair, err := h.parsePair(req.A, req.B, req.LPAmount)
		if err != nil {
			return err
		}
		acc, err := account(req.Account)
		if err != nil {
			return err
		}

		q, err := h.service.QuoteRemove(c.Context(), pair, acc, req.LPAmount)
		if err != nil {
			return h.mapError(err)
		}
		snap := q.Snapshot
		return c.JSON(RemoveQuoteResponse{
			LP:        snap.Pair.LP,
			LPAmount:  amount(q.Form.LP.Units, snap.DecimalsLP),
			State:     q.Form.LP.State.String(),
			PooledA:   amount(q.Estimate.PooledA, snap.DecimalsA),
			PooledB:   amount(q.Estimate.PooledB, snap.DecimalsB),
			AmountA:   amount(q.Estimate.AmountA, snap.DecimalsA),
			AmountB:   amount(q.Estimate.AmountB, snap.DecimalsB),
			Label:     q.Label,
			CanSubmit: q.CanSubmit,
		})
	}
}

// Remove handles POST /liquidity/remove.
func (h *PoolHandler) Remove() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req RemoveRequest
		if err := c.Bind().Body(&req); err != nil {
			h.logger.Debug("failed to bind body", "err", err)
			return ErrInvalidBody
		}
		pair, err := h.parsePair(req.A, req.B, req.LPAmount)
		if err != nil {
			return err
		}
		res, err := h.service.RemoveLiquidity(c.Context(), pair, req.LPAmount)
		if err != nil {
			return h.mapError(err)
		}
		return c.JSON(res)
	}
}

func (h *PoolHandler) parsePair(a, b, amt string) (token.Pair, error) {
	if a == "" || b == "" {
		return token.Pair{}, ErrInvalidQueryParameters
	}
	if amt == "" {
		return token.Pair{}, ErrAmountRequired
	}
	pair, err := h.pair(a, b)
	if err != nil {
		return token.Pair{}, h.mapError(err)
	}
	return pair, nil
}
