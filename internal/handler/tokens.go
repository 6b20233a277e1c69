package handler

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/nulln0ne/rdx-dex/internal/notify"
	"github.com/nulln0ne/rdx-dex/internal/token"
)

type TokenHandler struct {
	BaseHandler
}

func NewTokenHandler(logger *slog.Logger, registry *token.Registry) *TokenHandler {
	return &TokenHandler{BaseHandler: BaseHandler{logger: logger, registry: registry}}
}

type TokenSearchRequest struct {
	Query   string `query:"q"`
	Exclude string `query:"exclude"`
}

// List handles GET /tokens. exclude is a comma separated list of names.
func (h *TokenHandler) List() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req TokenSearchRequest
		if err := c.Bind().Query(&req); err != nil {
			h.logger.Debug("failed to bind query parameters", "err", err)
			return ErrInvalidQueryParameters
		}
		var exclude []string
		for _, name := range strings.Split(req.Exclude, ",") {
			if name = strings.TrimSpace(name); name != "" {
				exclude = append(exclude, name)
			}
		}
		return c.JSON(h.registry.Search(req.Query, exclude))
	}
}

type NotificationHandler struct {
	BaseHandler
	recorder *notify.Recorder
}

func NewNotificationHandler(logger *slog.Logger, recorder *notify.Recorder) *NotificationHandler {
	return &NotificationHandler{BaseHandler: BaseHandler{logger: logger}, recorder: recorder}
}

// List handles GET /notifications.
func (h *NotificationHandler) List() fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.JSON(h.recorder.Messages())
	}
}
