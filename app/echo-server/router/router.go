package router

import (
	"liverRisk/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupPredictionRoutes(api *echo.Group, handler *rest.PredictionHandler) {
	api.POST("/predict", handler.Predict)
	api.GET("/health", handler.Health)
}

func SetupAuditRoutes(api *echo.Group, handler *rest.AuditHandler) {
	api.GET("/audit", handler.Recent)
}

func SetupMetricsRoutes(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
