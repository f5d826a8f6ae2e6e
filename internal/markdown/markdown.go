// Package markdown renders cell notes to HTML.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("friendly"),
		),
	),
	// Cell notes are plain journal text: a newline is a line break.
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Render converts markdown to HTML. Empty input renders empty output.
func Render(text string) (string, error) {
	if text == "" {
		return "", nil
	}
	var b strings.Builder
	if err := md.Convert([]byte(text), &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
