package admin

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/testutils"
)

func stubDashboard(fb *testutils.FakeBackend) {
	fb.On("/api"+backend.PathDashboardStats, http.StatusOK, `{"totalUsers":42,"totalEvents":7,"totalBYTEParticipants":19}`)
	fb.On("/api"+backend.PathDashboardEvents, http.StatusOK, `{"events":[{"_id":"u1","title":"Go Workshop","date":"2026-11-02T10:00:00Z","time":"10:00","location":"Lab 1"}]}`)
	fb.On("/api"+backend.PathDashboardAttend, http.StatusOK, `{"attendance":[{"_id":"a1","name":"Ada","date":"2026-10-01","domain":"ml"}]}`)
	fb.On("/api"+backend.PathDashboardMembers, http.StatusOK, `{"members":[{"_id":"m1","name":"Grace","email":"grace@example.com"}]}`)
}

func TestLoad(t *testing.T) {
	t.Run("all four requests succeed", func(t *testing.T) {
		fb, factory := testutils.NewFakeBackend(t)
		stubDashboard(fb)

		d, err := Load(context.Background(), factory.For(backend.Anonymous{}))

		require.NoError(t, err)
		assert.True(t, d.Loaded)
		assert.Equal(t, 42, d.Stats.TotalUsers)
		require.Len(t, d.Upcoming, 1)
		assert.Equal(t, "Go Workshop", d.Upcoming[0].Title)
		require.Len(t, d.Attendance, 1)
		require.Len(t, d.Members, 1)
	})

	t.Run("one failure empties the whole bundle", func(t *testing.T) {
		fb, factory := testutils.NewFakeBackend(t)
		stubDashboard(fb)
		fb.On("/api"+backend.PathDashboardMembers, http.StatusInternalServerError, `{}`)

		d, err := Load(context.Background(), factory.For(backend.Anonymous{}))

		require.Error(t, err)
		assert.False(t, d.Loaded)
		assert.Empty(t, d.Upcoming)
		assert.Zero(t, d.Stats.TotalUsers)
	})
}

func TestDashboard(t *testing.T) {
	setup := func(t *testing.T) (*testutils.Browser, *testutils.FakeBackend) {
		fb, factory := testutils.NewFakeBackend(t)
		e := testutils.NewEcho(t, nil)
		e.GET("/admin/dashboard", NewHandler(factory).Dashboard)
		b := testutils.NewBrowser(t, e)
		b.AdminSignIn()
		return b, fb
	}

	t.Run("renders stats and lists with the admin credential", func(t *testing.T) {
		b, fb := setup(t)
		stubDashboard(fb)

		rec := b.Get("/admin/dashboard")

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Total Users")
		assert.Contains(t, body, "42")
		assert.Contains(t, body, "2026-11-02 @ 10:00")
		assert.Contains(t, body, "grace@example.com")

		cookies := fb.Cookies("/api" + backend.PathDashboardStats)
		require.Len(t, cookies, 1)
		assert.Equal(t, "admin_token", cookies[0].Name)
	})

	t.Run("failure renders every empty state", func(t *testing.T) {
		b, fb := setup(t)
		stubDashboard(fb)
		fb.On("/api"+backend.PathDashboardStats, http.StatusBadGateway, ``)

		body := b.Get("/admin/dashboard").Body.String()
		assert.Contains(t, body, "No upcoming events")
		assert.Contains(t, body, "No recent attendance records")
		assert.Contains(t, body, "No new members yet")
		assert.NotContains(t, body, "Total Users")
	})
}
