package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups every route handler of the API. Nil handlers leave their
// routes unregistered.
type Handlers struct {
	Tokens        *TokenHandler
	Swap          *SwapHandler
	Pool          *PoolHandler
	Farm          *FarmHandler
	Notifications *NotificationHandler
	Gatherer      prometheus.Gatherer
}

func Register(app *fiber.App, h Handlers) {
	if h.Tokens != nil {
		app.Get("/tokens", h.Tokens.List())
	}
	if h.Swap != nil {
		app.Get("/quote/swap", h.Swap.Quote())
		app.Get("/quote/swap/exact-out", h.Swap.QuoteExactOut())
		app.Post("/swap", h.Swap.Swap())
	}
	if h.Pool != nil {
		app.Get("/quote/liquidity", h.Pool.QuoteAdd())
		app.Get("/quote/remove", h.Pool.QuoteRemove())
		app.Post("/liquidity/add", h.Pool.Add())
		app.Post("/liquidity/remove", h.Pool.Remove())
	}
	if h.Farm != nil {
		app.Get("/farm", h.Farm.Info())
		app.Post("/farm/deposit", h.Farm.Deposit())
		app.Post("/farm/withdraw", h.Farm.Withdraw())
		app.Post("/farm/claim", h.Farm.Claim())
	}
	if h.Notifications != nil {
		app.Get("/notifications", h.Notifications.List())
	}
	if h.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{})))
	}
}
