package handler

import (
	"errors"
	"net/http"

	"defiant-meals-backend/internal/model"
	"defiant-meals-backend/internal/service"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type MenuHandler struct {
	menuService service.MenuService
}

func NewMenuHandler(menuService service.MenuService) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
	}
}

func (h *MenuHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.menuService.List(ctx, c.QueryParam("category"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) ListGrabAndGo(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.menuService.ListGrabAndGo(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	item, err := h.menuService.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "menu item not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var item model.MenuItem
	if err := c.Bind(&item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if item.Name == "" || item.Price <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name and a positive price are required")
	}

	created, err := h.menuService.Create(ctx, &item)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *MenuHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var item model.MenuItem
	if err := c.Bind(&item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	item.ID = c.Param("id")

	if err := h.menuService.Update(ctx, &item); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "menu item not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, &item)
}

func (h *MenuHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.menuService.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "menu item not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "menu item deleted"})
}
