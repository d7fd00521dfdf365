package backend

import (
	"net/http"
	"sort"
	"sync"
	"time"
)

// Credential is the ambient identity attached to every backend request.
// Views never read or set tokens directly; the transport applies the
// credential on the way out and captures updates on the way back.
type Credential interface {
	// Apply attaches the credential to an outgoing request.
	Apply(req *http.Request)
	// Capture records credential changes carried by a response (Set-Cookie).
	Capture(resp *http.Response)
}

// Anonymous is a credential that carries no identity. It simulates an
// unauthenticated browser.
type Anonymous struct{}

func (Anonymous) Apply(*http.Request)    {}
func (Anonymous) Capture(*http.Response) {}

// CookieCredential replays the session cookies the backend issued, the same
// way a browser does with credentials: "include".
type CookieCredential struct {
	mu      sync.Mutex
	cookies map[string]*http.Cookie
	dirty   bool
}

// NewCookieCredential creates a credential seeded with previously captured cookies.
func NewCookieCredential(cookies ...*http.Cookie) *CookieCredential {
	c := &CookieCredential{cookies: make(map[string]*http.Cookie, len(cookies))}
	for _, ck := range cookies {
		if ck != nil && ck.Name != "" {
			c.cookies[ck.Name] = &http.Cookie{Name: ck.Name, Value: ck.Value}
		}
	}
	return c
}

// Apply implements Credential.
func (c *CookieCredential) Apply(req *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range c.namesLocked() {
		req.AddCookie(&http.Cookie{Name: name, Value: c.cookies[name].Value})
	}
}

// Capture implements Credential. Expired or deleted cookies are dropped.
func (c *CookieCredential) Capture(resp *http.Response) {
	if resp == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for _, ck := range resp.Cookies() {
		expired := ck.MaxAge < 0 || (!ck.Expires.IsZero() && ck.Expires.Before(now)) || ck.Value == ""
		if expired {
			if _, ok := c.cookies[ck.Name]; ok {
				delete(c.cookies, ck.Name)
				c.dirty = true
			}
			continue
		}
		if prev, ok := c.cookies[ck.Name]; ok && prev.Value == ck.Value {
			continue
		}
		c.cookies[ck.Name] = &http.Cookie{Name: ck.Name, Value: ck.Value}
		c.dirty = true
	}
}

// Cookies returns a sorted copy of the held cookies.
func (c *CookieCredential) Cookies() []*http.Cookie {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*http.Cookie, 0, len(c.cookies))
	for _, name := range c.namesLocked() {
		out = append(out, &http.Cookie{Name: name, Value: c.cookies[name].Value})
	}
	return out
}

// Empty reports whether the credential holds no cookies.
func (c *CookieCredential) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cookies) == 0
}

// Dirty reports whether Capture changed the held cookies since the last MarkClean.
func (c *CookieCredential) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// MarkClean resets the dirty flag after the cookies have been persisted.
func (c *CookieCredential) MarkClean() {
	c.mu.Lock()
	c.dirty = false
	c.mu.Unlock()
}

// Clear drops every cookie.
func (c *CookieCredential) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.cookies) > 0 {
		c.dirty = true
	}
	c.cookies = make(map[string]*http.Cookie)
}

func (c *CookieCredential) namesLocked() []string {
	names := make([]string, 0, len(c.cookies))
	for name := range c.cookies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
