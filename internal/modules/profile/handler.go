package profile

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/handlers"
	"github.com/nfrund/clubportal/internal/middleware"
	"github.com/nfrund/clubportal/internal/view/dto"
	"github.com/nfrund/clubportal/web/src/templates/pages"
)

// Handler handles requests for the profile page.
type Handler struct {
	backend *backend.Factory
}

// NewHandler creates a new profile Handler.
func NewHandler(factory *backend.Factory) *Handler {
	return &Handler{backend: factory}
}

// Get renders the signed-in user's profile. A failed fetch renders the
// not-found view.
func (h *Handler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := handlers.CurrentIdentity(c)
	if err != nil {
		return err
	}

	data := dto.ProfilePage{}
	profile, err := h.backend.For(id.User).Profile(ctx)
	if err != nil {
		middleware.FromContext(ctx).Warn("Could not retrieve profile", "error", err)
	} else {
		data = dto.ProfilePage{Found: true, Profile: profile, Initials: Initials(profile.Name)}
	}
	handlers.SaveIdentity(c, id)

	chrome := handlers.NewChrome(c, "Profile", dto.NavProfile)
	return handlers.Page(c, http.StatusOK, chrome, pages.Profile(data))
}

// Initials returns the upper-cased first letter of up to two words of name.
func Initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		if len(out) == 2 {
			break
		}
		first := []rune(word)[0]
		out = append(out, unicode.ToUpper(first))
	}
	return string(out)
}
