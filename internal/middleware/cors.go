package middleware

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// CORS admits the configured origins with any method and any request header.
func CORS(allowOrigins []string) echo.MiddlewareFunc {
	return echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{"*"},
		AllowHeaders: []string{"*"},
	})
}
