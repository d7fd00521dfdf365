package middleware

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"
)

// CSRFFieldName is the form field the token is posted in.
const CSRFFieldName = "csrf_token"

// CSRF protects every unsafe request with gorilla/csrf. key must be 32 bytes.
// Over plain HTTP (local development) the strict Referer check is skipped,
// since gorilla/csrf otherwise assumes TLS.
func CSRF(key []byte, secure bool) echo.MiddlewareFunc {
	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.FieldName(CSRFFieldName),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
	)
	wrapped := echo.WrapMiddleware(protect)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		h := wrapped(next)
		return func(c echo.Context) error {
			if c.Request().TLS == nil {
				c.SetRequest(csrf.PlaintextHTTPRequest(c.Request()))
			}
			return h(c)
		}
	}
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	FromContext(r.Context()).Warn("CSRF check failed", "path", r.URL.Path, "reason", csrf.FailureReason(r))
	http.Error(w, "Forbidden - invalid or missing CSRF token", http.StatusForbidden)
}

// CSRFToken returns the token to embed in forms rendered for this request.
func CSRFToken(c echo.Context) string {
	return csrf.Token(c.Request())
}
