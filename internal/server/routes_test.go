package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/clubportal/internal/app"
	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/config"
	"github.com/nfrund/clubportal/internal/handlers"
	"github.com/nfrund/clubportal/internal/pubsub"
	"github.com/nfrund/clubportal/internal/registry"
	"github.com/nfrund/clubportal/internal/server"
	"github.com/nfrund/clubportal/internal/testutils"
)

// setupServer builds the full portal against a fake backend, the way
// cmd/server does.
func setupServer(t *testing.T) (*testutils.Browser, *testutils.FakeBackend) {
	t.Helper()
	fb, _ := testutils.NewFakeBackend(t)

	cfg := testutils.ConfigForTests(t, func(c *config.Config) {
		c.BackendURL = fb.URL + "/api"
		c.AdminURL = fb.URL
	})

	core, err := app.NewDependencies(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = core.Bus.Close() })
	require.NoError(t, core.Activity.Start(t.Context(), core.Bus))

	reg := registry.New(cfg)
	app.Populate(reg, core)

	s, err := server.New(server.Dependencies{Config: cfg, Core: core, Echo: echo.New()})
	require.NoError(t, err)
	require.NoError(t, s.InitModules(context.Background(), app.NewModules(), reg))
	s.RegisterRoutes()

	return testutils.NewBrowser(t, s.E), fb
}

var csrfField = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

func csrfToken(t *testing.T, body string) string {
	t.Helper()
	m := csrfField.FindStringSubmatch(body)
	require.Len(t, m, 2, "no csrf field rendered")
	return m[1]
}

func TestServer_Health(t *testing.T) {
	b, _ := setupServer(t)

	rec := b.Get("/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","registrations":{}}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestServer_StaticAssets(t *testing.T) {
	b, _ := setupServer(t)

	rec := b.Get("/static/portal.css")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/css")

	rec = b.Get("/static/portal.js")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "data-enables")
}

func TestServer_MemberPagesRequireLogin(t *testing.T) {
	b, _ := setupServer(t)

	for _, path := range []string{"/byte-register", "/events", "/profile"} {
		rec := b.Get(path)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}

	rec := b.Get("/admin/dashboard")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
}

func TestServer_PostWithoutCSRFTokenIsRejected(t *testing.T) {
	b, fb := setupServer(t)

	rec := b.PostForm("/login", url.Values{"email": {"ada@example.com"}, "password": {"secret"}})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, fb.Count("/api"+backend.PathLogin))
}

func TestServer_LoginThenRegisterForBYTE(t *testing.T) {
	b, fb := setupServer(t)
	fb.OnCookie("/api"+backend.PathLogin, http.StatusOK, `{"message":"Welcome"}`,
		&http.Cookie{Name: "token", Value: "abc"})
	fb.On("/api"+backend.PathByteStatus, http.StatusOK, `{"registered":false}`)
	fb.On("/api"+backend.PathByteRegister, http.StatusOK, `{"message":"ok"}`)

	token := csrfToken(t, b.Get("/login").Body.String())
	rec := b.PostForm("/login", url.Values{
		"csrf_token": {token},
		"email":      {"ada@example.com"},
		"password":   {"secret"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/byte-register", rec.Header().Get("Location"))

	page := b.Get("/byte-register")
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Register for BYTE Class")

	rec = b.HTMX("/byte-register", url.Values{
		"csrf_token": {csrfToken(t, page.Body.String())},
		"domain":     {"ml"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "You have successfully registered!")

	cookies := fb.Cookies("/api" + backend.PathByteRegister)
	require.Len(t, cookies, 1)
	assert.Equal(t, "abc", cookies[0].Value)

	assert.Eventually(t, func() bool {
		var health handlers.HealthResponse
		if err := json.Unmarshal(b.Get("/health").Body.Bytes(), &health); err != nil {
			return false
		}
		return health.Registrations["byte"].Succeeded == 1
	}, time.Second, 10*time.Millisecond)
}

func TestServer_ShutdownClosesBus(t *testing.T) {
	cfg := testutils.ConfigForTests(t)
	core, err := app.NewDependencies(cfg)
	require.NoError(t, err)

	reg := registry.New(cfg)
	app.Populate(reg, core)
	s, err := server.New(server.Dependencies{Config: cfg, Core: core})
	require.NoError(t, err)
	require.NoError(t, s.InitModules(context.Background(), app.NewModules(), reg))

	require.NoError(t, s.Shutdown(context.Background()))
	assert.Error(t, core.Bus.Publish(context.Background(), pubsub.Message{Topic: "t"}))
}

func TestServer_NewRequiresConfig(t *testing.T) {
	_, err := server.New(server.Dependencies{})
	assert.Error(t, err)
}
