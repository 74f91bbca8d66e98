package middleware

import (
	"errors"
	"net/http"
	"strings"

	"shopReco/pkg/logger"

	jsonres "shopReco/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler: stray errors and
// echo.HTTPError values become the shared JSON envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal Server Error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(code)
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("request failed", "method", c.Request().Method, "path", c.Request().URL.Path, err)
	}

	if writeErr := c.JSON(code, jsonres.Error(statusCodeLabel(code), message, nil)); writeErr != nil {
		logger.Error("failed to write error response", writeErr)
	}
}

// statusCodeLabel renders 404 as "NOT_FOUND" and so on.
func statusCodeLabel(code int) string {
	return strings.ReplaceAll(strings.ToUpper(http.StatusText(code)), " ", "_")
}
