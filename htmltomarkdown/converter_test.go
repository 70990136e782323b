package htmltomarkdown_test

import (
	"testing"

	"github.com/aiscrape/docplan"
	"github.com/aiscrape/docplan/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts common documentation elements", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			html string
			want []string
		}{
			{
				name: "headings",
				html: `<h1>Title</h1><h2>Subtitle</h2>`,
				want: []string{"# Title", "## Subtitle"},
			},
			{
				name: "links",
				html: `<p>See <a href="https://example.com">Example</a>.</p>`,
				want: []string{"[Example](https://example.com)"},
			},
			{
				name: "inline code",
				html: `<p>Run <code>go build</code> first.</p>`,
				want: []string{"`go build`"},
			},
			{
				name: "fenced code block with language",
				html: `<pre><code class="language-go">package main</code></pre>`,
				want: []string{"```go", "package main"},
			},
			{
				name: "unordered list",
				html: `<ul><li>First</li><li>Second</li></ul>`,
				want: []string{"- First", "- Second"},
			},
			{
				name: "emphasis",
				html: `<p><strong>Bold</strong> and <em>italic</em>.</p>`,
				want: []string{"**Bold**", "*italic*"},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				md, err := htmltomarkdown.NewConverter().Convert(tt.html)

				require.NoError(t, err)
				for _, want := range tt.want {
					assert.Contains(t, md, want)
				}
			})
		}
	})

	t.Run("renders tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Option</th><th>Default</th></tr></thead>
<tbody><tr><td>timeout</td><td>30s</td></tr></tbody>
</table>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
		assert.Contains(t, md, "timeout")
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Usage</h1><p>Call <code>New()</code>.</p><pre><code class="language-go">x := New()</code></pre>`
		conv := htmltomarkdown.NewConverter()

		first, err := conv.Convert(html)
		require.NoError(t, err)
		second, err := conv.Convert(html)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("  \n ")

		require.Error(t, err)
		assert.Equal(t, docplan.EINVALID, docplan.ErrorCode(err))
	})
}
