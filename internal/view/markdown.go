package view

import (
	"bytes"
	"html"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	cmp "maragu.dev/gomponents"
)

// mdRenderer escapes raw HTML in the input (WithUnsafe is not set), so event
// descriptions written by organisers cannot inject markup.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Markdown renders src as safe HTML. If conversion fails the text is shown escaped.
func Markdown(src string) cmp.Node {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return cmp.Text(src)
	}
	return cmp.Raw(buf.String())
}

// MarkdownString is Markdown for callers that need the HTML as a string.
func MarkdownString(src string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return html.EscapeString(src)
	}
	return buf.String()
}
