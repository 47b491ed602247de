package markdown

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "heading and emphasis",
			body: "# Hello\n\nThis is *body* text.",
			want: "Hello This is body text.",
		},
		{
			name: "links keep their text",
			body: "See [the docs](https://example.com/docs) for **more**.",
			want: "See the docs for more.",
		},
		{
			name: "entities are decoded",
			body: "Fish & chips < steak",
			want: "Fish & chips < steak",
		},
		{
			name: "table cells",
			body: "| a | b |\n|---|---|\n| 1 | 2 |",
			want: "a b 1 2",
		},
		{
			name: "raw html is stripped",
			body: "<div>Hi <b>there</b></div>",
			want: "Hi there",
		},
		{
			name: "truncated to 54 characters",
			body: "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor.",
			want: "Lorem ipsum dolor sit amet, consectetur adipiscing eli",
		},
		{
			name: "empty body",
			body: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Excerpt(tt.body, 54)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExcerptCountsCharactersNotBytes(t *testing.T) {
	body := strings.Repeat("博客文章", 30)

	got, err := Excerpt(body, 54)
	require.NoError(t, err)

	assert.Equal(t, 54, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
}

func TestExcerptOfHighlightedCode(t *testing.T) {
	body := "Intro\n\n```go\nfmt.Println(\"hi\")\n```\n"

	got, err := Excerpt(body, 54)
	require.NoError(t, err)

	assert.Equal(t, `Intro fmt.Println("hi")`, got)
}

func TestHTMLHighlightsFencedCode(t *testing.T) {
	r := NewRenderer()

	out, err := r.HTML("```go\npackage main\n```\n")
	require.NoError(t, err)

	assert.Contains(t, out, `class="chroma"`)
}

func TestHTMLRendersFootnotesAndDefinitionLists(t *testing.T) {
	r := NewRenderer()

	out, err := r.HTML("Term\n: Definition\n\nText[^1]\n\n[^1]: Note\n")
	require.NoError(t, err)

	assert.Contains(t, out, "<dl>")
	assert.Contains(t, out, "<dd>Definition</dd>")
	assert.Contains(t, out, `class="footnotes"`)
}

func TestStripTags(t *testing.T) {
	r := NewRenderer()

	assert.Equal(t, "a b", r.StripTags("<p>a</p>\n\n<p>b</p>"))
	assert.Equal(t, "", r.StripTags("<hr />"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", truncate("abc", 0))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "日本", truncate("日本語", 2))
}
