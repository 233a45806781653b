package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cropplanner/pkg/history/service"
)

type HistoryCtrl struct{ s service.HistoryService }

// New accepts a nil service; the endpoint then reports that history is off.
func New(s service.HistoryService) *HistoryCtrl { return &HistoryCtrl{s} }

func (h *HistoryCtrl) List(c echo.Context) error {
	if h.s == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "history disabled"})
	}
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}
	out, err := h.s.Recent(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
