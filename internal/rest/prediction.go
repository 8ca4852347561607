package rest

import (
	"context"
	"errors"
	"net/http"

	"liverRisk/business/prediction"
	"liverRisk/domain"
	"liverRisk/pkg/logger"
	jsonres "liverRisk/pkg/response"

	"github.com/labstack/echo/v4"
)

type (
	PredictionHandler struct {
		predictionService PredictionService
	}

	PredictionService interface {
		Predict(ctx context.Context, in domain.PredictionInput) (domain.PredictionResponse, error)
		Status() domain.HealthStatus
	}
)

const invalidInputMessage = "Invalid input data"

func NewPredictionHandler(svc PredictionService) *PredictionHandler {
	return &PredictionHandler{
		predictionService: svc,
	}
}

// POST /api/predict
func (h *PredictionHandler) Predict(c echo.Context) error {
	var req domain.PredictionInput
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(invalidInputMessage, []string{bindDetail(err)}))
	}

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	ctx := prediction.WithRequestID(c.Request().Context(), requestID)

	resp, err := h.predictionService.Predict(ctx, req)
	if err != nil {
		var verr *prediction.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, jsonres.Error(invalidInputMessage, verr.Details))
		}
		logger.Error("Prediction failed", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, jsonres.Error("Prediction failed", nil))
	}

	return c.JSON(http.StatusOK, resp)
}

// GET /api/health
func (h *PredictionHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.predictionService.Status())
}

func bindDetail(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return "body: " + msg
		}
	}
	return "body: malformed JSON"
}
