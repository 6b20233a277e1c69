package handler

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v3"

	"github.com/nulln0ne/rdx-dex/internal/service"
	"github.com/nulln0ne/rdx-dex/internal/token"
)

// Swapper is the swap capability the handler needs.
type Swapper interface {
	Quote(ctx context.Context, pair token.Pair, account common.Address, humanAmount string) (service.SwapQuote, error)
	QuoteExactOut(ctx context.Context, pair token.Pair, humanAmount string) (service.ExactOutQuote, error)
	Swap(ctx context.Context, pair token.Pair, humanAmount string) (service.TxResult, error)
	SwapExactOut(ctx context.Context, pair token.Pair, humanAmount string) (service.TxResult, error)
}

type SwapHandler struct {
	BaseHandler
	service Swapper
}

func NewSwapHandler(logger *slog.Logger, registry *token.Registry, svc Swapper) *SwapHandler {
	return &SwapHandler{
		BaseHandler: BaseHandler{
			logger:   logger,
			registry: registry,
		},
		service: svc,
	}
}

type SwapRequest struct {
	Src      string `query:"src" json:"src"`
	Dst      string `query:"dst" json:"dst"`
	Amount   string `query:"amount" json:"amount"`
	ExactOut bool   `query:"exact_out" json:"exact_out"`
	// Account is only read by quotes; submissions use the wallet.
	Account string `query:"account" json:"-"`
}

type SwapQuoteResponse struct {
	Src        token.Descriptor `json:"src"`
	Dst        token.Descriptor `json:"dst"`
	AmountIn   Amount           `json:"amount_in"`
	AmountOut  Amount           `json:"amount_out"`
	RouterOut  *Amount          `json:"router_out,omitempty"`
	MinimumOut Amount           `json:"minimum_out"`
	State      string           `json:"state"`
	Label      string           `json:"label"`
	CanSubmit  bool             `json:"can_submit"`
}

type ExactOutQuoteResponse struct {
	Src       token.Descriptor `json:"src"`
	Dst       token.Descriptor `json:"dst"`
	AmountOut Amount           `json:"amount_out"`
	AmountIn  Amount           `json:"amount_in"`
	MaximumIn Amount           `json:"maximum_in"`
	Valid     bool             `json:"valid"`
	Short     bool             `json:"insufficient"`
}

// Quote handles GET /quote/swap.
func (h *SwapHandler) Quote() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req SwapRequest
		if err := c.Bind().Query(&req); err != nil {
			h.logger.Debug("failed to bind query parameters", "err", err)
			return ErrInvalidQueryParameters
		}
		pair, err := h.parseSwap(req)
		if err != nil {
			return err
		}
		acc, err := account(req.Account)
		if err != nil {
			return err
		}

		q, err := h.service.Quote(c.Context(), pair, acc, req.Amount)
		if err != nil {
			return h.mapError(err)
		}
		snap := q.Snapshot
		resp := SwapQuoteResponse{
			Src:        snap.Pair.A,
			Dst:        snap.Pair.B,
			AmountIn:   amount(q.Form.In.Units, snap.DecimalsA),
			AmountOut:  amount(q.Form.Out.Units, snap.DecimalsB),
			MinimumOut: amount(q.Form.MinOut, snap.DecimalsB),
			State:      q.Form.In.State.String(),
			Label:      q.Label,
			CanSubmit:  q.CanSubmit,
		}
		if q.RouterOut != nil {
			ro := amount(q.RouterOut, snap.DecimalsB)
			resp.RouterOut = &ro
		}
		return c.JSON(resp)
	}
}

// QuoteExactOut handles GET /quote/swap/exact-out.
func (h *SwapHandler) QuoteExactOut() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req SwapRequest
		if err := c.Bind().Query(&req); err != nil {
			h.logger.Debug("failed to bind query parameters", "err", err)
			return ErrInvalidQueryParameters
		}
		pair, err := h.parseSwap(req)
		if err != nil {
			return err
		}

		q, err := h.service.QuoteExactOut(c.Context(), pair, req.Amount)
		if err != nil {
			return h.mapError(err)
		}
		snap := q.Snapshot
		return c.JSON(ExactOutQuoteResponse{
			Src:       snap.Pair.A,
			Dst:       snap.Pair.B,
			AmountOut: amount(q.AmountOut, snap.DecimalsB),
			AmountIn:  amount(q.AmountIn, snap.DecimalsA),
			MaximumIn: amount(q.MaximumIn, snap.DecimalsA),
			Valid:     q.Verdict.Valid,
			Short:     q.Verdict.Insufficient,
		})
	}
}

// Swap handles POST /swap.
func (h *SwapHandler) Swap() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req SwapRequest
		if err := c.Bind().Body(&req); err != nil {
			h.logger.Debug("failed to bind body", "err", err)
			return ErrInvalidBody
		}
		pair, err := h.parseSwap(req)
		if err != nil {
			return err
		}

		var res service.TxResult
		if req.ExactOut {
			res, err = h.service.SwapExactOut(c.Context(), pair, req.Amount)
		} else {
			res, err = h.service.Swap(c.Context(), pair, req.Amount)
		}
		if err != nil {
			return h.mapError(err)
		}
		return c.JSON(res)
	}
}

func (h *SwapHandler) parseSwap(req SwapRequest) (token.Pair, error) {
	if req.Src == "" || req.Dst == "" {
		return token.Pair{}, ErrInvalidQueryParameters
	}
	if req.Amount == "" {
		return token.Pair{}, ErrAmountRequired
	}
	pair, err := h.pair(req.Src, req.Dst)
	if err != nil {
		return token.Pair{}, h.mapError(err)
	}
	return pair, nil
}
