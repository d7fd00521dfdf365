package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	cmp "maragu.dev/gomponents"

	"github.com/nfrund/clubportal/internal/feedback"
	"github.com/nfrund/clubportal/internal/identity"
	"github.com/nfrund/clubportal/internal/middleware"
	"github.com/nfrund/clubportal/internal/view"
	"github.com/nfrund/clubportal/internal/view/dto"
	"github.com/nfrund/clubportal/web/src/templates/layouts"
)

// NewChrome collects what the base layout needs for the current request.
// Reading it consumes pending flash messages.
func NewChrome(c echo.Context, title, active string) dto.Chrome {
	chrome := dto.Chrome{
		Title:     title,
		Active:    active,
		CSRFToken: middleware.CSRFToken(c),
		Flash:     view.GetFlashData(c),
	}
	if id, err := identity.Load(c); err == nil {
		chrome.SignedIn = id.SignedIn()
		chrome.Admin = id.AdminSignedIn()
	}
	return chrome
}

// Page renders content inside the base layout.
func Page(c echo.Context, status int, chrome dto.Chrome, content ...cmp.Node) error {
	return c.Render(status, "", layouts.Base(chrome, content...))
}

// Fragment renders nodes on their own, for htmx swaps.
func Fragment(c echo.Context, status int, nodes ...cmp.Node) error {
	var buf bytes.Buffer
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if err := n.Render(&buf); err != nil {
			return err
		}
	}
	return c.HTMLBlob(status, buf.Bytes())
}

// refreshRetry is how soon a slot polls again when its message outlived the
// delay the browser waited (clock skew between the timer and the request).
const refreshRetry = 250 * time.Millisecond

// FeedbackView builds the render model of a feedback channel. A nil channel
// renders as an empty slot.
func FeedbackView(page string, ch *feedback.Channel) dto.Feedback {
	fb := dto.Feedback{Page: page}
	if ch == nil {
		return fb
	}
	msg, ok := ch.Current()
	if !ok {
		return fb
	}
	fb.Visible = true
	fb.Text = msg.Text
	fb.Severity = string(msg.Severity)
	fb.TTL = ch.TTL()
	return fb
}

// SaveIdentity persists credential changes a backend call captured. A failure
// is logged; the page still renders.
func SaveIdentity(c echo.Context, id *identity.Identity) {
	if err := identity.Save(c, id); err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to save portal session", "error", err)
	}
}

// CurrentIdentity loads the identity for handlers behind an auth gate.
func CurrentIdentity(c echo.Context) (*identity.Identity, error) {
	id, err := identity.Load(c)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session unavailable").SetInternal(err)
	}
	return id, nil
}
