package crawl_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/aiscrape/docplan"
	"github.com/aiscrape/docplan/crawl"
	"github.com/aiscrape/docplan/mock"
	"github.com/stretchr/testify/assert"
)

func TestThinContent(t *testing.T) {
	t.Parallel()

	baseline := func(content string, err error) *mock.BaselineExtractor {
		return &mock.BaselineExtractor{
			ExtractFn: func(html string) (*docplan.Extraction, error) {
				if err != nil {
					return nil, err
				}
				return &docplan.Extraction{ContentHTML: content}, nil
			},
		}
	}

	t.Run("flags extraction far smaller than the baseline", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("<p>real content</p>", 50)
		assert.True(t, crawl.ThinContent("<p>x</p>", "page", baseline(long, nil)))
	})

	t.Run("accepts extraction in the baseline's ballpark", func(t *testing.T) {
		t.Parallel()

		content := strings.Repeat("<p>content</p>", 20)
		assert.False(t, crawl.ThinContent(content, "page", baseline(content, nil)))
	})

	t.Run("nil baseline never flags", func(t *testing.T) {
		t.Parallel()

		assert.False(t, crawl.ThinContent("<p>x</p>", "page", nil))
	})

	t.Run("baseline failure never flags", func(t *testing.T) {
		t.Parallel()

		assert.False(t, crawl.ThinContent("<p>x</p>", "page", baseline("", errors.New("parse error"))))
	})

	t.Run("empty baseline never flags", func(t *testing.T) {
		t.Parallel()

		assert.False(t, crawl.ThinContent("<p>x</p>", "page", baseline("", nil)))
	})
}
