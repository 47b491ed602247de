// Package markdown turns post bodies into HTML and plain text.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown to HTML with tables, footnotes, definition
// lists, attribute blocks and highlighted fenced code, and reduces HTML to
// plain text. A Renderer is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Footnote,
				extension.DefinitionList,
				highlighting.NewHighlighting(
					highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
				),
			),
			goldmark.WithParserOptions(parser.WithAttribute()),
			// Raw HTML is kept so that its text survives tag stripping.
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
		policy: bluemonday.StrictPolicy(),
	}
}

// HTML renders a markdown document.
func (r *Renderer) HTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// StripTags removes every HTML tag, decodes entities and collapses runs of
// whitespace into a single space.
func (r *Renderer) StripTags(raw string) string {
	return normalizeWhitespace(html.UnescapeString(r.policy.Sanitize(raw)))
}

// PlainText renders source and strips the result down to its text.
func (r *Renderer) PlainText(source string) (string, error) {
	rendered, err := r.HTML(source)
	if err != nil {
		return "", err
	}
	return r.StripTags(rendered), nil
}

// Excerpt returns the first length characters of the plain text of source.
// The whole document is rendered before truncating.
func (r *Renderer) Excerpt(source string, length int) (string, error) {
	text, err := r.PlainText(source)
	if err != nil {
		return "", err
	}
	return truncate(text, length), nil
}

var defaultRenderer = NewRenderer()

// Excerpt uses the package renderer; see Renderer.Excerpt.
func Excerpt(source string, length int) (string, error) {
	return defaultRenderer.Excerpt(source, length)
}

// PlainText uses the package renderer; see Renderer.PlainText.
func PlainText(source string) (string, error) {
	return defaultRenderer.PlainText(source)
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most n characters, counting runes.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
