package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"liverRisk/pkg/logger"
	jsonres "liverRisk/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders errors that escape handlers. Echo's own HTTP errors
// keep their status and message; anything else becomes an opaque 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(http.StatusInternalServerError)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(he.Code)
		}
	} else {
		logger.Error("Unhandled error",
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"path", c.Path(),
			"error", fmt.Sprintf("%v", err),
		)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, jsonres.Error(message, nil))
	}
	if writeErr != nil {
		logger.Error("Failed to write error response", writeErr)
	}
}
