// Package readability provides a plan-free baseline extractor built on
// go-readability's article extraction.
package readability

import (
	"strings"

	"github.com/aiscrape/docplan"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements docplan.BaselineExtractor at compile time.
var _ docplan.BaselineExtractor = (*Extractor)(nil)

// Extractor pulls main content out of a page without selectors. The
// validator uses it on the live side of a comparison so its verdicts hold
// even when the stored plan has gone stale.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page's main content as determined by readability's
// article heuristics.
func (e *Extractor) Extract(rawHTML string) (*docplan.Extraction, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docplan.Errorf(docplan.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &docplan.Extraction{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
