package router

import (
	"github.com/labstack/echo/v4"

	"cropplanner/pkg/middleware"
)

func New(
	e *echo.Echo,
	predictCtrl interface{ Predict(echo.Context) error },
	historyCtrl interface{ List(echo.Context) error },
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(middleware.RequestLogger())

	e.GET("/health", healthCtrl.Health)

	// every method reaches Predict so it can answer 405 in the API's own shape
	api := e.Group("/api")
	api.Any("/predict", predictCtrl.Predict)
	api.Any("/predict/", predictCtrl.Predict)
	api.GET("/predictions", historyCtrl.List)
	return e
}
