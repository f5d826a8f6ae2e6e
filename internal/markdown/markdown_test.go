package markdown

import (
	"strings"
	"testing"
)

func TestRenderEmpty(t *testing.T) {
	out, err := Render("")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "" {
		t.Fatalf("empty input must render empty output, got %q", out)
	}
}

func TestRenderHardWraps(t *testing.T) {
	out, err := Render("line one\nline two")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "<br") {
		t.Fatalf("newline must render as a line break, got %q", out)
	}
}

func TestRenderExtendedSyntax(t *testing.T) {
	out, err := Render("~~done~~ and [a link](https://example.com)")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "<del>done</del>") {
		t.Fatalf("strikethrough missing in %q", out)
	}
	if !strings.Contains(out, `href="https://example.com"`) {
		t.Fatalf("link missing in %q", out)
	}
}

func TestRenderFencedCode(t *testing.T) {
	out, err := Render("```go\nvar x int\n```")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "chroma") && !strings.Contains(out, "<pre") {
		t.Fatalf("fenced code block missing in %q", out)
	}
}
