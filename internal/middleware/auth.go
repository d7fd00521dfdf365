package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/clubportal/internal/identity"
)

// HeaderHXRequest marks requests issued by htmx.
const HeaderHXRequest = "HX-Request"

// headerHXRedirect makes htmx navigate instead of swapping the response.
const headerHXRedirect = "HX-Redirect"

// RequireMember protects pages that call the backend as the signed-in member.
// Browsers without a member session are sent to the login page.
func RequireMember(next echo.HandlerFunc) echo.HandlerFunc {
	return requireIdentity("/login", (*identity.Identity).SignedIn)(next)
}

// RequireAdmin protects the admin dashboard.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return requireIdentity("/admin/login", (*identity.Identity).AdminSignedIn)(next)
}

func requireIdentity(loginPath string, ok func(*identity.Identity) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := identity.Load(c)
			if err != nil {
				FromContext(c.Request().Context()).Warn("Failed to load portal identity", "error", err)
				return Redirect(c, loginPath)
			}
			if !ok(id) {
				return Redirect(c, loginPath)
			}
			return next(c)
		}
	}
}

// Redirect sends the browser to path. htmx requests get an HX-Redirect so the
// whole page navigates rather than the target element.
func Redirect(c echo.Context, path string) error {
	if c.Request().Header.Get(HeaderHXRequest) == "true" {
		c.Response().Header().Set(headerHXRedirect, path)
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, path)
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(c echo.Context) bool {
	return c.Request().Header.Get(HeaderHXRequest) == "true"
}
