package handler

import (
	"io"
	"net/http"

	"defiant-meals-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type WebhookHandler struct {
	webhookService service.WebhookService
}

func NewWebhookHandler(webhookService service.WebhookService) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
	}
}

// StripeWebhook reads the raw body before anything can decode it: the
// signature covers the exact byte sequence Stripe sent. 400 only on
// verification failure; once verified, always 200 so Stripe stops retrying.
func (h *WebhookHandler) StripeWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	sigHeader := c.Request().Header.Get("Stripe-Signature")
	if err := h.webhookService.HandleWebhook(ctx, sigHeader, body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "webhook signature verification failed")
	}

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}
