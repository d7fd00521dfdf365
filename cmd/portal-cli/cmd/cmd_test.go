package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/nfrund/clubportal/cmd/portal-cli/internal/output"
	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/registration"
	"github.com/nfrund/clubportal/internal/testutils"
)

const catalog = `[
	{"_id":"e1","title":"Go Workshop","description":"Intro","location":"Lab 1","category":"Workshops","attendees":3,"capacity":10},
	{"_id":"e2","title":"Hack Night","description":"Build things","location":"Hall","category":"Hackathons","attendees":50,"capacity":50}
]`

func TestListEvents_FiltersCatalog(t *testing.T) {
	fb, factory := testutils.NewFakeBackend(t)
	fb.On("/api"+backend.PathEvents, http.StatusOK, catalog)

	var out bytes.Buffer
	err := listEvents(context.Background(), &out, factory.For(backend.Anonymous{}), output.FormatJSON, "HACK", "")
	require.NoError(t, err)

	var got struct {
		Events []output.EventRow `json:"events"`
		Count  int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Equal(t, 1, got.Count)
	assert.Equal(t, "e2", got.Events[0].ID)
	assert.True(t, got.Events[0].Full)
}

func TestListEvents_BackendFailure(t *testing.T) {
	fb, factory := testutils.NewFakeBackend(t)
	fb.On("/api"+backend.PathEvents, http.StatusInternalServerError, `{"message":"down"}`)

	var out bytes.Buffer
	err := listEvents(context.Background(), &out, factory.For(backend.Anonymous{}), output.FormatTable, "", "")
	assert.ErrorContains(t, err, "fetch events")
	assert.Empty(t, out.String())
}

func TestSubmit_ByteSuccessReplaysCookie(t *testing.T) {
	fb, factory := testutils.NewFakeBackend(t)
	fb.On("/api"+backend.PathByteRegister, http.StatusOK, `{"message":"ok"}`)

	cred, err := credential("token=abc")
	require.NoError(t, err)
	flow := registration.NewFlow(registration.ByteEndpoint(), factory.For(cred))

	var out bytes.Buffer
	require.NoError(t, submit(context.Background(), &out, flow, output.FormatTable, "ml"))
	assert.Contains(t, out.String(), "ok")
	assert.JSONEq(t, `{"domain":"ml"}`, fb.Body("/api"+backend.PathByteRegister))

	cookies := fb.Cookies("/api" + backend.PathByteRegister)
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, "abc", cookies[0].Value)
}

func TestSubmit_FailureReportsBackendMessage(t *testing.T) {
	fb, factory := testutils.NewFakeBackend(t)
	fb.On("/api"+backend.PathRegisterEvent, http.StatusBadRequest, `{"message":"Already registered"}`)

	flow := registration.NewFlow(registration.EventsEndpoint(), factory.For(backend.Anonymous{}))

	var out bytes.Buffer
	err := submit(context.Background(), &out, flow, output.FormatJSON, "e1")
	assert.ErrorContains(t, err, "Already registered")
	assert.JSONEq(t, `{"success":false,"message":"Already registered"}`, out.String())
}

func TestSubmit_EmptySubjectSendsNothing(t *testing.T) {
	fb, factory := testutils.NewFakeBackend(t)
	flow := registration.NewFlow(registration.ByteEndpoint(), factory.For(backend.Anonymous{}))

	err := submit(context.Background(), &bytes.Buffer{}, flow, output.FormatTable, "  ")
	assert.ErrorIs(t, err, registration.ErrEmptySubject)
	assert.Zero(t, fb.Count("/api"+backend.PathByteRegister))
}

func TestByteStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"verified", http.StatusOK, `{"registered":true,"domain":"ml","paymentVerified":true}`, `{"subject":"ml","status":"verified"}`},
		{"pending", http.StatusOK, `{"registered":true,"domain":"react"}`, `{"subject":"react","status":"pending"}`},
		{"not registered", http.StatusOK, `{"registered":false}`, `{"status":"not_registered"}`},
		{"check failed", http.StatusInternalServerError, `{}`, `{"status":"unknown"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, factory := testutils.NewFakeBackend(t)
			fb.On("/api"+backend.PathByteStatus, tt.status, tt.body)
			flow := registration.NewFlow(registration.ByteEndpoint(), factory.For(backend.Anonymous{}),
				registration.WithFallback(registration.FallbackUnknown))

			var out bytes.Buffer
			require.NoError(t, byteStatus(context.Background(), &out, flow, output.FormatJSON))
			assert.JSONEq(t, tt.want, out.String())
		})
	}
}

func TestCredential(t *testing.T) {
	cred, err := credential("")
	require.NoError(t, err)
	assert.IsType(t, backend.Anonymous{}, cred)

	cred, err = credential("token=abc; other=1")
	require.NoError(t, err)
	cookies := cred.(*backend.CookieCredential).Cookies()
	assert.Len(t, cookies, 2)

	_, err = credential("=")
	assert.Error(t, err)
}

func TestDomainValues(t *testing.T) {
	assert.Equal(t, []string{"webdev", "backend", "react", "ml"}, domainValues())
}

func TestRegistryKeys(t *testing.T) {
	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedTypes,
		Dir:  "../../..",
	}, "./internal/registry")
	require.NoError(t, err)
	require.Zero(t, packages.PrintErrors(pkgs))

	services := registryKeys(pkgs)
	assert.Contains(t, services, output.Service{Key: "core.backend", Type: "*backend.Factory"})
	assert.Contains(t, services, output.Service{Key: "core.publisher", Type: "pubsub.Publisher"})
	assert.Len(t, services, 6)
}
