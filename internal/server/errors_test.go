package server

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/clubportal/internal/logging"
)

// captureLogs routes the default logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.NewWithWriter(&buf, "text", "debug"))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestErrorHandler_UnhandledErrorLogsStackTrace(t *testing.T) {
	logs := captureLogs(t)
	e := echo.New()
	setupErrorHandling(e)
	e.GET("/boom", func(c echo.Context) error {
		return fmt.Errorf("render byte page: %w", errors.New("template exploded"))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", rec.Body.String())

	out := logs.String()
	assert.Contains(t, out, "Internal Server Error (Unhandled)")
	assert.Contains(t, out, `error="render byte page: template exploded"`)
	assert.Contains(t, out, "path=/boom")
	assert.Contains(t, out, "runtime/debug/stack.go")
	assert.Contains(t, out, "internal/server/errors.go")
}

func TestErrorHandler_HTTPErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantLog  string
	}{
		{
			name:     "plain http error is not logged",
			err:      echo.NewHTTPError(http.StatusNotFound, "no such event"),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "internal cause is logged as a warning",
			err:      echo.NewHTTPError(http.StatusBadGateway, "backend unavailable").SetInternal(errors.New("dial tcp: refused")),
			wantCode: http.StatusBadGateway,
			wantLog:  "dial tcp: refused",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)
			e := echo.New()
			setupErrorHandling(e)
			e.GET("/fail", func(c echo.Context) error { return tt.err })

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.NotContains(t, logs.String(), "stack_trace=")
			if tt.wantLog == "" {
				assert.Empty(t, logs.String())
			} else {
				assert.Contains(t, logs.String(), "level=WARN")
				assert.Contains(t, logs.String(), tt.wantLog)
			}
		})
	}
}

func TestErrorHandler_HeadHasNoBody(t *testing.T) {
	captureLogs(t)
	e := echo.New()
	setupErrorHandling(e)
	e.HEAD("/boom", func(c echo.Context) error { return errors.New("x") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Zero(t, rec.Body.Len())
}
