package testutils

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/identity"
	"github.com/nfrund/clubportal/internal/rendering"
)

// Keys for the session cookies of test servers.
const (
	SessionSecret        = "a-very-secret-key-for-testing-!"
	SessionEncryptionKey = "fedcba9876543210fedcba9876543210"
)

// Helper routes NewEcho mounts.
const (
	PathWhoAmI      = "/_test/whoami"
	PathSignIn      = "/_test/signin"
	PathAdminSignIn = "/_test/admin-signin"
)

// FakeBackend is an httptest club API. Paths answer a fixed response and
// every request is recorded.
type FakeBackend struct {
	URL string

	mu        sync.Mutex
	responses map[string]Response
	requests  map[string]int
	bodies    map[string]string
	cookies   map[string][]*http.Cookie
}

// Response is one canned reply.
type Response struct {
	Status int
	Body   string
	Cookie *http.Cookie
}

// NewFakeBackend starts a fake API whose /api prefix is the member base URL
// and whose root is the admin base URL.
func NewFakeBackend(t *testing.T) (*FakeBackend, *backend.Factory) {
	t.Helper()
	fb := &FakeBackend{
		responses: make(map[string]Response),
		requests:  make(map[string]int),
		bodies:    make(map[string]string),
		cookies:   make(map[string][]*http.Cookie),
	}
	server := httptest.NewServer(fb)
	t.Cleanup(server.Close)
	fb.URL = server.URL
	return fb, backend.NewFactory(server.URL+"/api", server.URL, server.Client())
}

// On sets the reply for path.
func (fb *FakeBackend) On(path string, status int, body string) *FakeBackend {
	return fb.OnResponse(path, Response{Status: status, Body: body})
}

// OnCookie sets the reply for path, which also sets cookie.
func (fb *FakeBackend) OnCookie(path string, status int, body string, cookie *http.Cookie) *FakeBackend {
	return fb.OnResponse(path, Response{Status: status, Body: body, Cookie: cookie})
}

// OnResponse sets the reply for path.
func (fb *FakeBackend) OnResponse(path string, resp Response) *FakeBackend {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.responses[path] = resp
	return fb
}

// Count reports how many requests hit path.
func (fb *FakeBackend) Count(path string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.requests[path]
}

// Body returns the last request body sent to path.
func (fb *FakeBackend) Body(path string) string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.bodies[path]
}

// Cookies returns the cookies the last request to path carried.
func (fb *FakeBackend) Cookies(path string) []*http.Cookie {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.cookies[path]
}

func (fb *FakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)

	fb.mu.Lock()
	fb.requests[r.URL.Path]++
	fb.bodies[r.URL.Path] = string(raw)
	fb.cookies[r.URL.Path] = r.Cookies()
	resp, ok := fb.responses[r.URL.Path]
	fb.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	if resp.Cookie != nil {
		http.SetCookie(w, resp.Cookie)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = io.WriteString(w, resp.Body)
}

// Validator is what NewEcho installs as e.Validator.
type Validator interface {
	Validate(i interface{}) error
}

// NewEcho returns an echo instance with the session store and renderer the
// portal uses, plus helper routes that sign a browser in without a backend.
func NewEcho(t *testing.T, v Validator) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Renderer = rendering.NewUniversalRenderer()
	if v != nil {
		e.Validator = v
	}
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(SessionSecret), []byte(SessionEncryptionKey))))

	e.GET(PathWhoAmI, func(c echo.Context) error {
		id, err := identity.Load(c)
		require.NoError(t, err)
		require.NoError(t, identity.Save(c, id))
		return c.String(http.StatusOK, id.ViewID)
	})
	e.GET(PathSignIn, func(c echo.Context) error {
		return seedCredential(c, func(id *identity.Identity) *backend.CookieCredential { return id.User }, "token")
	})
	e.GET(PathAdminSignIn, func(c echo.Context) error {
		return seedCredential(c, func(id *identity.Identity) *backend.CookieCredential { return id.Admin }, "admin_token")
	})
	return e
}

func seedCredential(c echo.Context, pick func(*identity.Identity) *backend.CookieCredential, name string) error {
	id, err := identity.Load(c)
	if err != nil {
		return err
	}
	rec := httptest.NewRecorder()
	http.SetCookie(rec, &http.Cookie{Name: name, Value: "test-" + name})
	pick(id).Capture(rec.Result())
	if err := identity.Save(c, id); err != nil {
		return err
	}
	return c.String(http.StatusOK, id.ViewID)
}

// Browser replays the cookies earlier responses set.
type Browser struct {
	t       *testing.T
	e       *echo.Echo
	Cookies map[string]*http.Cookie
}

// NewBrowser creates a browser with an empty cookie jar.
func NewBrowser(t *testing.T, e *echo.Echo) *Browser {
	return &Browser{t: t, e: e, Cookies: make(map[string]*http.Cookie)}
}

// Echo returns the server the browser talks to.
func (b *Browser) Echo() *echo.Echo {
	return b.e
}

// Do serves req with the jar's cookies and stores the cookies it sets.
func (b *Browser) Do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, ck := range b.Cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	b.e.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(b.Cookies, ck.Name)
			continue
		}
		b.Cookies[ck.Name] = ck
	}
	return rec
}

// Get issues a GET.
func (b *Browser) Get(path string) *httptest.ResponseRecorder {
	return b.Do(httptest.NewRequest(http.MethodGet, path, nil))
}

// PostForm issues a form POST.
func (b *Browser) PostForm(path string, form url.Values) *httptest.ResponseRecorder {
	return b.Do(FormRequest(path, form))
}

// HTMX issues a form POST the way htmx does.
func (b *Browser) HTMX(path string, form url.Values) *httptest.ResponseRecorder {
	req := FormRequest(path, form)
	req.Header.Set("HX-Request", "true")
	return b.Do(req)
}

// ViewID returns the browser's current view id.
func (b *Browser) ViewID() string {
	b.t.Helper()
	rec := b.Get(PathWhoAmI)
	require.Equal(b.t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

// SignIn gives the browser a member credential and returns its view id.
func (b *Browser) SignIn() string {
	b.t.Helper()
	rec := b.Get(PathSignIn)
	require.Equal(b.t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

// AdminSignIn gives the browser an admin credential and returns its view id.
func (b *Browser) AdminSignIn() string {
	b.t.Helper()
	rec := b.Get(PathAdminSignIn)
	require.Equal(b.t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

// Flashes decodes the flash session the browser holds.
func (b *Browser) Flashes(key string) []interface{} {
	b.t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range b.Cookies {
		req.AddCookie(ck)
	}
	sess, err := sessions.NewCookieStore([]byte(SessionSecret), []byte(SessionEncryptionKey)).Get(req, "flash-session")
	require.NoError(b.t, err)
	return sess.Flashes(key)
}

// FormRequest builds a url-encoded POST.
func FormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}
