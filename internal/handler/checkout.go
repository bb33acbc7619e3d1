package handler

import (
	"errors"
	"net/http"

	"defiant-meals-backend/internal/dto"
	"defiant-meals-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// clientError maps cart-validation failures to 400s; anything else is a
// provider or storage failure and surfaces as a 5xx.
func clientError(err error) error {
	var unavailable *service.ItemUnavailableError
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
	case errors.As(err, &unavailable):
		return echo.NewHTTPError(http.StatusBadRequest, unavailable.Error())
	}
	return nil
}

func (h *CheckoutHandler) CreateSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.checkoutService.CreateSession(ctx, &req)
	if err != nil {
		if clientErr := clientError(err); clientErr != nil {
			return clientErr
		}
		return echo.NewHTTPError(http.StatusBadGateway, "error creating checkout session")
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHandler) CreateGrabAndGoSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.GrabAndGoCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.checkoutService.CreateGrabAndGoSession(ctx, &req)
	if err != nil {
		if clientErr := clientError(err); clientErr != nil {
			return clientErr
		}
		return echo.NewHTTPError(http.StatusBadGateway, "error creating checkout session")
	}

	return c.JSON(http.StatusOK, resp)
}
