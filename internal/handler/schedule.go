package handler

import (
	"net/http"
	"strconv"
	"time"

	"defiant-meals-backend/internal/model"
	"defiant-meals-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

func (h *ScheduleHandler) GetWeek(c echo.Context) error {
	ctx := c.Request().Context()

	days, err := h.scheduleService.GetWeek(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, days)
}

func (h *ScheduleHandler) UpdateDay(c echo.Context) error {
	ctx := c.Request().Context()

	weekday, err := strconv.Atoi(c.Param("weekday"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "weekday must be 0-6")
	}

	var day model.ScheduleDay
	if err := c.Bind(&day); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	day.Weekday = weekday

	if err := h.scheduleService.UpdateDay(ctx, &day); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, &day)
}

func (h *ScheduleHandler) SlotsForDate(c echo.Context) error {
	ctx := c.Request().Context()

	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	slots, err := h.scheduleService.SlotsForDate(ctx, date)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"date":  c.Param("date"),
		"slots": slots,
	})
}
