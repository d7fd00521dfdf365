// Package identity keeps the portal's side of a signed-in user: the backend
// cookies the user's browser would otherwise hold, and the id of the view the
// user currently has open. Both live in a gorilla session cookie that is
// signed and AES encrypted, so the backend cookie values never reach the
// browser in readable form.
package identity

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/nfrund/clubportal/internal/backend"
)

// SessionName is the name of the portal session cookie.
const SessionName = "portal-session"

const (
	keyUserCookies  = "backend_cookies"
	keyAdminCookies = "admin_cookies"
	keyViewID       = "view_id"
)

// contextKey caches the loaded identity on the echo context so the auth gate
// and the handler share one instance per request.
const contextKey = "portal_identity"

// Identity is the portal's record of one browser.
type Identity struct {
	// ViewID scopes in-memory view state and feedback channels to this browser.
	ViewID string
	// User replays the member session cookies to the API base URL.
	User *backend.CookieCredential
	// Admin replays the admin session cookies to the admin base URL.
	Admin *backend.CookieCredential
}

// SignedIn reports whether the member credential holds a backend session.
func (id *Identity) SignedIn() bool {
	return id != nil && id.User != nil && !id.User.Empty()
}

// AdminSignedIn reports whether the admin credential holds a backend session.
func (id *Identity) AdminSignedIn() bool {
	return id != nil && id.Admin != nil && !id.Admin.Empty()
}

type storedCookie struct {
	Name  string `json:"n"`
	Value string `json:"v"`
}

// Load returns the identity for the request, creating a fresh one (with a new
// view id) when the browser has no session yet.
func Load(c echo.Context) (*Identity, error) {
	if cached, ok := c.Get(contextKey).(*Identity); ok {
		return cached, nil
	}

	sess, err := session.Get(SessionName, c)
	if sess == nil {
		return nil, fmt.Errorf("load portal session: %w", err)
	}
	if err != nil {
		// A cookie that no longer decodes (rotated secret) yields a new
		// session, which is what a signed-out browser looks like.
		slog.DebugContext(c.Request().Context(), "Discarding undecodable portal session", "error", err)
	}

	id := &Identity{ViewID: stringValue(sess, keyViewID)}
	if id.ViewID == "" {
		id.ViewID = uuid.NewString()
	}
	if id.User, err = decodeCredential(stringValue(sess, keyUserCookies)); err != nil {
		return nil, err
	}
	if id.Admin, err = decodeCredential(stringValue(sess, keyAdminCookies)); err != nil {
		return nil, err
	}

	c.Set(contextKey, id)
	return id, nil
}

// Save writes the identity back to the session cookie. The view id is always
// written; credentials are written only when a backend response changed them.
func Save(c echo.Context, id *Identity) error {
	sess, err := session.Get(SessionName, c)
	if sess == nil {
		return fmt.Errorf("save portal session: %w", err)
	}
	sess.Values[keyViewID] = id.ViewID

	for key, cred := range map[string]*backend.CookieCredential{
		keyUserCookies:  id.User,
		keyAdminCookies: id.Admin,
	} {
		if cred == nil || !cred.Dirty() {
			continue
		}
		encoded, err := encodeCredential(cred)
		if err != nil {
			return err
		}
		sess.Values[key] = encoded
		cred.MarkClean()
	}

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("save portal session: %w", err)
	}
	c.Set(contextKey, id)
	return nil
}

// Rotate gives the identity a new view id and returns the previous one so
// the caller can tear down the views it owned.
func Rotate(id *Identity) string {
	prev := id.ViewID
	id.ViewID = uuid.NewString()
	return prev
}

// Clear expires the session cookie and drops both credentials.
func Clear(c echo.Context) error {
	sess, err := session.Get(SessionName, c)
	if sess == nil {
		return fmt.Errorf("clear portal session: %w", err)
	}
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options = &sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true}
	c.Set(contextKey, nil)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("clear portal session: %w", err)
	}
	return nil
}

// Options returns the cookie options the session store should be created with.
func Options(secure bool) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func stringValue(sess *sessions.Session, key string) string {
	if sess == nil {
		return ""
	}
	s, _ := sess.Values[key].(string)
	return s
}

func encodeCredential(cred *backend.CookieCredential) (string, error) {
	cookies := cred.Cookies()
	stored := make([]storedCookie, 0, len(cookies))
	for _, ck := range cookies {
		stored = append(stored, storedCookie{Name: ck.Name, Value: ck.Value})
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("encode credential: %w", err)
	}
	return string(raw), nil
}

func decodeCredential(raw string) (*backend.CookieCredential, error) {
	if raw == "" {
		return backend.NewCookieCredential(), nil
	}
	var stored []storedCookie
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("decode credential: %w", err)
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, sc := range stored {
		cookies = append(cookies, &http.Cookie{Name: sc.Name, Value: sc.Value})
	}
	return backend.NewCookieCredential(cookies...), nil
}
