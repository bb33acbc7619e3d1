package handler

import (
	"errors"
	"net/http"

	"defiant-meals-backend/internal/dto"
	"defiant-meals-backend/internal/service"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type GrabAndGoHandler struct {
	grabAndGoService service.GrabAndGoService
}

func NewGrabAndGoHandler(grabAndGoService service.GrabAndGoService) *GrabAndGoHandler {
	return &GrabAndGoHandler{
		grabAndGoService: grabAndGoService,
	}
}

func (h *GrabAndGoHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.grabAndGoService.ListOrders(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *GrabAndGoHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.grabAndGoService.UpdateOrderStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, order)
}
