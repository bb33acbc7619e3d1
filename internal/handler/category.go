package handler

import (
	"errors"
	"net/http"

	"defiant-meals-backend/internal/model"
	"defiant-meals-backend/internal/service"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

func (h *CategoryHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.categoryService.List(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var category model.Category
	if err := c.Bind(&category); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if category.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	created, err := h.categoryService.Create(ctx, &category)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *CategoryHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var category model.Category
	if err := c.Bind(&category); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	category.ID = c.Param("id")

	if err := h.categoryService.Update(ctx, &category); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, &category)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.categoryService.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "category deleted"})
}
