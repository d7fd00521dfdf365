package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/events"
	"github.com/nfrund/clubportal/internal/middleware"
	"github.com/nfrund/clubportal/internal/view/dto"
	"github.com/nfrund/clubportal/web/src/templates/pages"
)

// byteTitle is the catalog entry the home page pins first.
const byteTitle = "BYTE"

// HomeHandler handles requests for the home page.
type HomeHandler struct {
	backend *backend.Factory
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(factory *backend.Factory) *HomeHandler {
	return &HomeHandler{backend: factory}
}

// HomeGet lists the events catalog. A failed fetch renders an empty list.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := CurrentIdentity(c)
	if err != nil {
		return err
	}

	list, err := h.backend.For(id.User).Events(ctx)
	if err != nil {
		middleware.FromContext(ctx).Warn("Failed to fetch events for home page", "error", err)
		list = nil
	}
	SaveIdentity(c, id)

	chrome := NewChrome(c, "Home", dto.NavHome)
	return Page(c, http.StatusOK, chrome, pages.Home(events.PinFirst(list, byteTitle)))
}
