package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/registration"
)

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, CheckFormat(FormatTable))
	assert.NoError(t, CheckFormat(FormatJSON))
	assert.ErrorContains(t, CheckFormat("yaml"), "unsupported output format 'yaml'")
}

func TestEvents_Table(t *testing.T) {
	list := []backend.EventSummary{
		{ID: "e1", Title: "Go Workshop", Date: "2026-03-01T10:00:00Z", Category: "Workshops", Location: "Lab 1", Attendees: 3, Capacity: 10},
		{ID: "e2", Title: "Hack Night", Date: "2026-03-02", Category: "Hackathons", Location: "Hall", Attendees: 50, Capacity: 50},
	}

	var out bytes.Buffer
	require.NoError(t, Events(&out, FormatTable, list))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[2], "2026-03-01")
	assert.Contains(t, lines[2], "3/10")
	assert.NotContains(t, lines[2], "(Full)")
	assert.Contains(t, lines[3], "50/50 (Full)")
}

func TestEvents_EmptyTable(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Events(&out, FormatTable, nil))
	assert.Contains(t, out.String(), "No events found")
}

func TestEvents_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Events(&out, FormatJSON, nil))
	assert.JSONEq(t, `{"events":[],"count":0}`, out.String())
}

func TestStatus(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Status(&out, FormatTable, "Domain", registration.Pending("ml")))
	assert.Equal(t, "Domain:  ml\nStatus:  pending\n", out.String())

	out.Reset()
	require.NoError(t, Status(&out, FormatTable, "Domain", registration.Status{Mode: registration.ModeNotRegistered}))
	assert.Contains(t, out.String(), "Domain:  -")
}

func TestMessage(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Message(&out, FormatTable, true, "ok"))
	assert.Equal(t, "✅ ok\n", out.String())

	out.Reset()
	require.NoError(t, Message(&out, FormatJSON, false, "Already registered"))
	assert.JSONEq(t, `{"success":false,"message":"Already registered"}`, out.String())
}

func TestServices(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Services(&out, FormatTable, nil))
	assert.Equal(t, "No services found in the registry.\n", out.String())

	out.Reset()
	require.NoError(t, Services(&out, FormatTable, []Service{{Key: "core.backend", Type: "*backend.Factory"}}))
	assert.Contains(t, out.String(), "core.backend")
	assert.Contains(t, out.String(), "*backend.Factory")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
