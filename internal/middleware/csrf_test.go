package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCSRFKey = []byte("0123456789abcdef0123456789abcdef")

func TestCSRF(t *testing.T) {
	e := echo.New()
	e.Use(CSRF(testCSRFKey, false))
	e.GET("/form", func(c echo.Context) error {
		return c.String(http.StatusOK, CSRFToken(c))
	})
	e.POST("/form", func(c echo.Context) error {
		return c.String(http.StatusOK, "accepted")
	})

	t.Run("post without token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/form", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("post with the issued token is accepted", func(t *testing.T) {
		getRec := httptest.NewRecorder()
		e.ServeHTTP(getRec, httptest.NewRequest(http.MethodGet, "/form", nil))
		require.Equal(t, http.StatusOK, getRec.Code)
		token := getRec.Body.String()
		require.NotEmpty(t, token)

		form := url.Values{CSRFFieldName: {token}}
		req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		for _, ck := range getRec.Result().Cookies() {
			req.AddCookie(ck)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "accepted", rec.Body.String())
	})
}

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	e.Use(SecurityHeaders())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "unpkg.com")
}

func TestLoggerInjectsRequestLogger(t *testing.T) {
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		assert.NotNil(t, FromContext(c.Request().Context()))
		return c.NoContent(http.StatusOK)
	}, Logger)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
