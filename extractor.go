package docplan

// Extraction holds the plan-applied content of a single page.
type Extraction struct {
	// Title is the page title located via the plan's title selector,
	// falling back to the document <title>.
	Title string

	// ContentHTML is the main content subtree as clean HTML with the
	// plan's exclude selectors pruned.
	ContentHTML string
}

// Extractor applies a plan to a rendered page.
type Extractor interface {
	// Extract locates the plan's content selector, prunes excluded
	// subtrees and returns the remaining content.
	// Returns ENOCONTENT if the content selector matches no node,
	// EEMPTYCONTENT if nothing remains after pruning.
	Extract(html string, plan *Plan) (*Extraction, error)
}

// Discoverer derives the page set from a rendered index page.
type Discoverer interface {
	// DiscoverPages applies the plan's navigation selector to the index
	// page, resolves link targets to absolute URLs and deduplicates them
	// preserving first-seen order. The filter, if non-nil, restricts the
	// result by URL pattern.
	// Returns ENODISCOVERY if the selector matches no link-bearing
	// elements or no link survives filtering.
	DiscoverPages(html, baseURL string, plan *Plan, filter *URLFilter) ([]string, error)
}

// BaselineExtractor extracts main content without a plan, using generic
// boilerplate-removal heuristics. The crawl layer uses a baseline to detect
// plans that matched a near-empty node; the validator uses one so verdicts
// do not depend on plan validity.
type BaselineExtractor interface {
	Extract(html string) (*Extraction, error)
}
