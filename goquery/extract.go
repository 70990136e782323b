// Package goquery implements the plan-driven extraction engine: applying a
// plan's CSS selectors to rendered pages to locate content, prune
// boilerplate and discover the page set.
package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aiscrape/docplan"
)

// Ensure Extractor implements docplan.Extractor at compile time.
var _ docplan.Extractor = (*Extractor)(nil)

// Extractor applies a plan's content selectors to a rendered page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract locates the plan's content node, prunes excluded subtrees and
// returns the remaining content HTML together with the page title.
func (e *Extractor) Extract(html string, plan *docplan.Plan) (*docplan.Extraction, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docplan.Errorf(docplan.EINVALID, "failed to parse HTML: %v", err)
	}

	content, err := find(doc.Selection, plan.ContentSelector)
	if err != nil {
		return nil, docplan.Errorf(docplan.ENOCONTENT, "content selector %q is invalid: %v", plan.ContentSelector, err)
	}
	if content.Length() == 0 {
		return nil, docplan.Errorf(docplan.ENOCONTENT, "content selector %q matched no elements", plan.ContentSelector)
	}
	content = content.First()

	// Pruning is best-effort: a selector matching zero nodes is fine, an
	// invalid one is skipped rather than failing the page.
	for _, sel := range plan.ExcludeSelectors {
		if matched, err := find(content, sel); err == nil {
			matched.Remove()
		}
	}

	if strings.TrimSpace(content.Text()) == "" {
		return nil, docplan.Errorf(docplan.EEMPTYCONTENT, "content selector %q matched an empty node", plan.ContentSelector)
	}

	contentHTML, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, docplan.Errorf(docplan.EINTERNAL, "rendering content node: %v", err)
	}

	return &docplan.Extraction{
		Title:       title(doc, plan.TitleSelector),
		ContentHTML: contentHTML,
	}, nil
}

// title returns the text of the plan's title selector, falling back to the
// document <title>.
func title(doc *goquery.Document, selector string) string {
	if sel, err := find(doc.Selection, selector); err == nil && sel.Length() > 0 {
		if t := strings.TrimSpace(sel.First().Text()); t != "" {
			return t
		}
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// find matches a selector, converting the panic goquery raises on invalid
// CSS into an error. Plans come from a model, so invalid selectors are an
// expected failure mode, not a programming bug.
func find(s *goquery.Selection, selector string) (result *goquery.Selection, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%v", r)
		}
	}()
	return s.Find(selector), nil
}
