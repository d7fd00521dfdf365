package server

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// setupErrorHandling installs the central error handler. Errors that are not
// *echo.HTTPError are bugs: they are logged with a stack trace and answered
// with a bare 500.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Internal != nil {
				slog.WarnContext(c.Request().Context(), "Request failed",
					"status", he.Code,
					"path", c.Path(),
					"error", he.Internal,
				)
			}
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		slog.ErrorContext(c.Request().Context(), "Internal Server Error (Unhandled)",
			"error", err.Error(),
			"path", c.Path(),
			"stack_trace", string(debug.Stack()),
		)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(http.StatusInternalServerError)
			return
		}
		_ = c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
