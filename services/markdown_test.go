package services

import (
	"strings"
	"testing"
)

func TestMarkdownRenderBasics(t *testing.T) {
	svc := NewMarkdownService()

	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{"heading", "# Title", `<h1 id="title">Title</h1>`},
		{"emphasis", "some *emphasis* here", "<em>emphasis</em>"},
		{"link", "[studio](https://example.com)", `<a href="https://example.com"`},
		{"gfm strikethrough", "~~gone~~", "<del>gone</del>"},
		{"gfm table", "| a | b |\n|---|---|\n| 1 | 2 |", "<table>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := svc.Render(tt.markdown)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !strings.Contains(html, tt.want) {
				t.Errorf("Render(%q) = %q, want substring %q", tt.markdown, html, tt.want)
			}
		})
	}
}

func TestMarkdownStripsScripts(t *testing.T) {
	svc := NewMarkdownService()

	tests := []string{
		"<script>alert(1)</script>",
		"safe text\n\n<script src=\"https://evil.example/x.js\"></script>",
		"[click](javascript:alert(1))",
		`<img src="x" onerror="alert(1)">`,
	}

	for _, markdown := range tests {
		html, err := svc.Render(markdown)
		if err != nil {
			t.Fatalf("Render(%q): %v", markdown, err)
		}
		lowered := strings.ToLower(html)
		if strings.Contains(lowered, "<script") || strings.Contains(lowered, "javascript:") || strings.Contains(lowered, "onerror") {
			t.Errorf("Render(%q) leaked active content: %q", markdown, html)
		}
	}
}

func TestMarkdownHighlightingSurvivesSanitizer(t *testing.T) {
	svc := NewMarkdownService()

	html, err := svc.Render("```go\nfunc main() {}\n```")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !strings.Contains(html, "<pre") || !strings.Contains(html, "func") {
		t.Errorf("code block missing from output: %q", html)
	}
	// The highlighter marks up tokens; the sanitizer must keep enough of
	// that for the styles to apply.
	if !strings.Contains(html, "<span") {
		t.Errorf("highlight spans stripped: %q", html)
	}
}
