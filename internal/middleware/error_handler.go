package middleware

import (
	"net/http"
	"smartMarket/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler. Handlers map their own
// domain errors; anything reaching here is unexpected.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", "method", c.Request().Method, "path", c.Path(), "error", err)
	}

	if jsonErr := c.JSON(code, map[string]interface{}{"error": message}); jsonErr != nil {
		logger.Error("Failed to write error response", jsonErr)
	}
}
