package services

import (
	"bytes"

	"github.com/alphabatem/common/context"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// MarkdownService renders post bodies to sanitized HTML for the public blog
// endpoints. Output always passes through the bluemonday policy, so authored
// HTML in a post body cannot reach the page unfiltered.
type MarkdownService struct {
	context.DefaultService

	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
}

const MARKDOWN_SVC = "markdown_svc"

const highlightStyle = "monokai"

func (svc MarkdownService) Id() string {
	return MARKDOWN_SVC
}

func (svc *MarkdownService) Configure(ctx *context.Context) error {
	svc.md = newGoldmark()
	svc.sanitizer = newSanitizer()
	return svc.DefaultService.Configure(ctx)
}

func (svc *MarkdownService) Start() error {
	return nil
}

// NewMarkdownService builds a renderer outside the container.
func NewMarkdownService() *MarkdownService {
	return &MarkdownService{
		md:        newGoldmark(),
		sanitizer: newSanitizer(),
	}
}

func newGoldmark() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
}

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// Highlighting emits class and inline-style attributes on code spans.
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span", "div")
	p.AllowAttrs("style").OnElements("span", "pre")
	p.AllowAttrs("id").Matching(bluemonday.Paragraph).OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	return p
}

// Render converts markdown to sanitized HTML.
func (svc *MarkdownService) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := svc.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}

	return svc.sanitizer.Sanitize(buf.String()), nil
}
