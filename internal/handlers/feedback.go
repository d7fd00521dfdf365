package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/clubportal/internal/feedback"
	"github.com/nfrund/clubportal/web/src/templates/partials"
)

// FeedbackHandler serves the feedback slots pages poll and dismiss.
type FeedbackHandler struct {
	hub *feedback.Hub
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(hub *feedback.Hub) *FeedbackHandler {
	return &FeedbackHandler{hub: hub}
}

// Get renders the current slot of a page (GET /feedback/:page). A message the
// timer has not cleared yet is polled again shortly.
func (h *FeedbackHandler) Get(c echo.Context) error {
	page := c.Param("page")
	ch, err := h.channel(c, page)
	if err != nil {
		return err
	}
	fb := FeedbackView(page, ch)
	if fb.Visible {
		fb.TTL = refreshRetry
	}
	return Fragment(c, http.StatusOK, partials.Feedback(fb))
}

// Dismiss hides the message of a page before its timer fires
// (POST /feedback/:page/dismiss).
func (h *FeedbackHandler) Dismiss(c echo.Context) error {
	page := c.Param("page")
	ch, err := h.channel(c, page)
	if err != nil {
		return err
	}
	if ch != nil {
		ch.Dismiss()
	}
	return Fragment(c, http.StatusOK, partials.Feedback(FeedbackView(page, nil)))
}

// channel returns the open channel of page for this browser, or nil.
func (h *FeedbackHandler) channel(c echo.Context, page string) (*feedback.Channel, error) {
	id, err := CurrentIdentity(c)
	if err != nil {
		return nil, err
	}
	ch, _ := h.hub.Get(feedback.Key(id.ViewID, page))
	return ch, nil
}
