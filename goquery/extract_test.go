package goquery_test

import (
	"testing"

	"github.com/aiscrape/docplan"
	"github.com/aiscrape/docplan/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan() *docplan.Plan {
	return &docplan.Plan{
		FetchStrategy:      docplan.FetchStatic,
		NavigationSelector: "nav.sidebar",
		ContentSelector:    "main#content",
		ExcludeSelectors:   []string{"a.headerlink", "div.edit-this-page"},
		TitleSelector:      "h1",
	}
}

const pageHTML = `<!DOCTYPE html>
<html>
<head><title>Fallback Title</title></head>
<body>
<nav class="sidebar"><a href="/docs/intro">Intro</a></nav>
<main id="content">
<h1>Getting Started <a class="headerlink" href="#getting-started">¶</a></h1>
<p>Welcome to the documentation.</p>
<div class="edit-this-page"><a href="/edit">Edit this page</a></div>
<pre><code>go install example.com/tool@latest</code></pre>
</main>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts content and title", func(t *testing.T) {
		t.Parallel()

		extraction, err := goquery.NewExtractor().Extract(pageHTML, testPlan())

		require.NoError(t, err)
		assert.Equal(t, "Getting Started", extraction.Title)
		assert.Contains(t, extraction.ContentHTML, "Welcome to the documentation.")
		assert.Contains(t, extraction.ContentHTML, "go install")
	})

	t.Run("prunes excluded subtrees", func(t *testing.T) {
		t.Parallel()

		extraction, err := goquery.NewExtractor().Extract(pageHTML, testPlan())

		require.NoError(t, err)
		assert.NotContains(t, extraction.ContentHTML, "headerlink")
		assert.NotContains(t, extraction.ContentHTML, "Edit this page")
	})

	t.Run("exclude selector matching nothing is not an error", func(t *testing.T) {
		t.Parallel()

		plan := testPlan()
		plan.ExcludeSelectors = append(plan.ExcludeSelectors, "div.no-such-element")

		_, err := goquery.NewExtractor().Extract(pageHTML, plan)

		require.NoError(t, err)
	})

	t.Run("is deterministic for identical input", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()

		first, err := e.Extract(pageHTML, testPlan())
		require.NoError(t, err)
		second, err := e.Extract(pageHTML, testPlan())
		require.NoError(t, err)

		assert.Equal(t, first.ContentHTML, second.ContentHTML)
		assert.Equal(t, first.Title, second.Title)
	})

	t.Run("returns ENOCONTENT when content selector matches nothing", func(t *testing.T) {
		t.Parallel()

		plan := testPlan()
		plan.ContentSelector = "main#wrong"

		_, err := goquery.NewExtractor().Extract(pageHTML, plan)

		require.Error(t, err)
		assert.Equal(t, docplan.ENOCONTENT, docplan.ErrorCode(err))
	})

	t.Run("returns ENOCONTENT when content selector is invalid CSS", func(t *testing.T) {
		t.Parallel()

		plan := testPlan()
		plan.ContentSelector = "main[[["

		_, err := goquery.NewExtractor().Extract(pageHTML, plan)

		require.Error(t, err)
		assert.Equal(t, docplan.ENOCONTENT, docplan.ErrorCode(err))
	})

	t.Run("returns EEMPTYCONTENT for a matched but empty node", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main id="content">   </main></body></html>`

		_, err := goquery.NewExtractor().Extract(html, testPlan())

		require.Error(t, err)
		assert.Equal(t, docplan.EEMPTYCONTENT, docplan.ErrorCode(err))
	})

	t.Run("falls back to document title", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Fallback Title</title></head><body><main id="content"><p>text</p></main></body></html>`

		extraction, err := goquery.NewExtractor().Extract(html, testPlan())

		require.NoError(t, err)
		assert.Equal(t, "Fallback Title", extraction.Title)
	})

	t.Run("rejects invalid plan", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor().Extract(pageHTML, &docplan.Plan{})

		require.Error(t, err)
		assert.Equal(t, docplan.EINVALID, docplan.ErrorCode(err))
	})
}
