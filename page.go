package docplan

import "context"

// PageTask is a unit of extraction work: one discovered unique URL.
// Position preserves first-seen discovery order so persisted output
// ordering is deterministic regardless of completion order.
type PageTask struct {
	URL      string
	Position int
}

// Page represents an extracted documentation page ready for persistence.
type Page struct {
	URL     string
	Title   string
	Content string // Markdown
}

// PageStore persists pages to storage with atomic semantics.
// Save writes to a temporary location and returns the relative path the
// page will occupy in the committed output; Commit makes changes
// permanent; Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *Page) (string, error)
	Commit() error
	Abort() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
