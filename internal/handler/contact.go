package handler

import (
	"net/http"

	"defiant-meals-backend/internal/dto"
	"defiant-meals-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type ContactHandler struct {
	notifications service.NotificationService
}

func NewContactHandler(notifications service.NotificationService) *ContactHandler {
	return &ContactHandler{
		notifications: notifications,
	}
}

func (h *ContactHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Email == "" || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and message are required")
	}

	if err := h.notifications.SendContactMessage(ctx, req.Name, req.Email, req.Message); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "error sending message")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "message sent"})
}
