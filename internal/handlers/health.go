package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/clubportal/internal/activity"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status        string                     `json:"status"`
	Registrations map[string]activity.Counts `json:"registrations"`
}

// HealthHandler reports liveness and registration activity since start.
type HealthHandler struct {
	activity *activity.Log
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(log *activity.Log) *HealthHandler {
	return &HealthHandler{activity: log}
}

// Get handles GET /health.
func (h *HealthHandler) Get(c echo.Context) error {
	resp := HealthResponse{Status: "ok", Registrations: map[string]activity.Counts{}}
	if h.activity != nil {
		resp.Registrations = h.activity.Snapshot()
	}
	return c.JSON(http.StatusOK, resp)
}
