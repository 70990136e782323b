package docplan_test

import (
	"testing"

	"github.com/aiscrape/docplan"
	"github.com/stretchr/testify/assert"
)

func TestOutline(t *testing.T) {
	t.Parallel()

	t.Run("extracts headings in document order", func(t *testing.T) {
		t.Parallel()

		markdown := "# Intro\n\ntext\n\n## Install\n\n### From source\n"

		sections := docplan.Outline(markdown)

		assert.Equal(t, []docplan.Section{
			{Level: 1, Title: "Intro"},
			{Level: 2, Title: "Install"},
			{Level: 3, Title: "From source"},
		}, sections)
	})

	t.Run("ignores headings inside code blocks", func(t *testing.T) {
		t.Parallel()

		markdown := "# Real\n\n```bash\n# not a heading\n```\n"

		sections := docplan.Outline(markdown)

		assert.Equal(t, []docplan.Section{{Level: 1, Title: "Real"}}, sections)
	})

	t.Run("returns nil for empty input", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, docplan.Outline(""))
		assert.Nil(t, docplan.Outline("no headings here"))
	})
}

func TestFormatDocuments(t *testing.T) {
	t.Parallel()

	t.Run("uses title header with URL fallback", func(t *testing.T) {
		t.Parallel()

		docs := []*docplan.Document{
			{Title: "Getting Started", Content: "content one"},
			{SourceURL: "https://example.com/api", Content: "content two"},
		}

		got := docplan.FormatDocuments(docs)

		assert.Equal(t, "## Document: Getting Started\ncontent one\n\n## Document: https://example.com/api\ncontent two", got)
	})

	t.Run("returns empty string for no documents", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, docplan.FormatDocuments(nil))
	})
}
