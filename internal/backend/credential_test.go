package backend

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseWithCookies(cookies ...*http.Cookie) *http.Response {
	rec := httptest.NewRecorder()
	for _, ck := range cookies {
		http.SetCookie(rec, ck)
	}
	return rec.Result()
}

func TestCookieCredential(t *testing.T) {
	t.Run("apply attaches every cookie", func(t *testing.T) {
		cred := NewCookieCredential(
			&http.Cookie{Name: "token", Value: "t1"},
			&http.Cookie{Name: "admin_token", Value: "a1"},
		)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		cred.Apply(req)

		ck, err := req.Cookie("token")
		require.NoError(t, err)
		assert.Equal(t, "t1", ck.Value)
		ck, err = req.Cookie("admin_token")
		require.NoError(t, err)
		assert.Equal(t, "a1", ck.Value)
	})

	t.Run("capture stores new cookies and marks dirty", func(t *testing.T) {
		cred := NewCookieCredential()
		cred.Capture(responseWithCookies(&http.Cookie{Name: "token", Value: "t1"}))

		assert.True(t, cred.Dirty())
		require.Len(t, cred.Cookies(), 1)
		assert.Equal(t, "t1", cred.Cookies()[0].Value)

		cred.MarkClean()
		cred.Capture(responseWithCookies(&http.Cookie{Name: "token", Value: "t1"}))
		assert.False(t, cred.Dirty(), "same value should not dirty the credential")
	})

	t.Run("capture drops expired cookies", func(t *testing.T) {
		cred := NewCookieCredential(&http.Cookie{Name: "token", Value: "t1"})
		cred.Capture(responseWithCookies(&http.Cookie{Name: "token", Value: "", MaxAge: -1}))

		assert.True(t, cred.Empty())
		assert.True(t, cred.Dirty())
	})

	t.Run("clear empties the jar", func(t *testing.T) {
		cred := NewCookieCredential(&http.Cookie{Name: "token", Value: "t1"})
		cred.Clear()
		assert.True(t, cred.Empty())
	})

	t.Run("anonymous attaches nothing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		Anonymous{}.Apply(req)
		assert.Empty(t, req.Cookies())
	})
}
