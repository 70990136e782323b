// Package trafilatura provides a plan-free baseline extractor built on
// go-trafilatura's boilerplate-removal heuristics.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/aiscrape/docplan"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docplan.BaselineExtractor at compile time.
var _ docplan.BaselineExtractor = (*Extractor)(nil)

// Extractor pulls main content out of a page without selectors. The crawl
// layer compares its output against the plan-driven extraction to catch
// plans whose content selector matched a near-empty node.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page's main content as determined by trafilatura's
// heuristics. A page trafilatura finds nothing in yields an Extraction
// with empty ContentHTML, not an error.
func (e *Extractor) Extract(rawHTML string) (*docplan.Extraction, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docplan.Errorf(docplan.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		contentHTML = buf.String()
	}

	return &docplan.Extraction{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}
