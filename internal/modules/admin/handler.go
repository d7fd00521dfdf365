package admin

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/handlers"
	"github.com/nfrund/clubportal/internal/middleware"
	"github.com/nfrund/clubportal/internal/view/dto"
	"github.com/nfrund/clubportal/web/src/templates/pages"
)

// Handler serves the admin dashboard.
type Handler struct {
	backend *backend.Factory
}

// NewHandler creates a new admin Handler.
func NewHandler(factory *backend.Factory) *Handler {
	return &Handler{backend: factory}
}

// Dashboard renders GET /admin/dashboard.
func (h *Handler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := handlers.CurrentIdentity(c)
	if err != nil {
		return err
	}

	data, err := Load(ctx, h.backend.For(id.Admin))
	if err != nil {
		middleware.FromContext(ctx).Error("Error fetching dashboard data", "error", err)
	}
	handlers.SaveIdentity(c, id)

	chrome := handlers.NewChrome(c, "Admin Dashboard", dto.NavAdmin)
	return handlers.Page(c, http.StatusOK, chrome, pages.AdminDashboard(ctx, data))
}

// Load issues the four dashboard requests concurrently. If any of them fails
// the whole bundle is discarded and an empty, unloaded dashboard is returned
// with the first error.
func Load(ctx context.Context, client *backend.Client) (dto.Dashboard, error) {
	var d dto.Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Stats, err = client.DashboardStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Upcoming, err = client.UpcomingEvents(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Attendance, err = client.RecentAttendance(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Members, err = client.NewMembers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return dto.Dashboard{}, err
	}
	d.Loaded = true
	return d, nil
}
