package view_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/clubportal/internal/view"
)

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, view.Markdown("Bring a **laptop**").Render(&buf))
	assert.Contains(t, buf.String(), "<strong>laptop</strong>")

	out := view.MarkdownString(`<script>alert(1)</script> hi`)
	assert.NotContains(t, out, "<script>")
}
