package rest

import (
	"context"
	"net/http"
	"strconv"

	"liverRisk/domain"
	"liverRisk/pkg/logger"
	jsonres "liverRisk/pkg/response"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	AuditHandler struct {
		auditRepo AuditReader
	}

	AuditReader interface {
		Recent(ctx context.Context, limit int) ([]domain.PredictionAudit, error)
	}
)

func NewAuditHandler(repo AuditReader) *AuditHandler {
	return &AuditHandler{auditRepo: repo}
}

// GET /api/v1/audit?limit=50
func (h *AuditHandler) Recent(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, jsonres.Error("invalid limit", nil))
		}
		limit = n
	}

	rows, err := h.auditRepo.Recent(c.Request().Context(), limit)
	if err != nil {
		logger.Error("Failed to read prediction audit", err)
		return c.JSON(http.StatusInternalServerError, jsonres.Error("Failed to read audit log", nil))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rows))
}
