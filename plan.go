package docplan

import "context"

// FetchStrategy selects how pages are rendered during the extraction phase.
type FetchStrategy string

// Fetch strategies a plan may request.
const (
	// FetchStatic fetches pages over plain HTTP. Suitable for server-rendered
	// sites (Sphinx, MkDocs, most static site generators).
	FetchStatic FetchStrategy = "static"

	// FetchDynamic renders pages in a headless browser and waits for
	// client-side rendering to settle. Required for SPA-style documentation.
	FetchDynamic FetchStrategy = "dynamic"
)

// Plan describes how to discover pages on a documentation site and how to
// extract clean content from each of them. A Plan is immutable once handed
// to the extraction engine; correction produces a new value, never an
// in-place edit, so a plan instance may be shared freely across concurrent
// workers.
type Plan struct {
	// FetchStrategy selects the renderer used for the extraction phase.
	FetchStrategy FetchStrategy `json:"fetch_strategy"`

	// NavigationSelector matches the container wrapping the site's
	// navigation link tree on the index page.
	NavigationSelector string `json:"navigation_selector"`

	// ContentSelector matches the main content node on each page.
	ContentSelector string `json:"content_selector"`

	// ExcludeSelectors match subtrees stripped from the content before
	// conversion (edit-this-page links, header anchors, prev/next areas).
	// Pruning is best-effort: a selector matching zero nodes is not an error.
	ExcludeSelectors []string `json:"exclude_selectors"`

	// TitleSelector matches the element holding the page title.
	TitleSelector string `json:"title_selector"`
}

// Validate returns an error if the plan is unusable. Every required
// selector must be a non-empty string; exclude selectors are optional but
// blank entries are rejected.
func (p *Plan) Validate() error {
	if p.NavigationSelector == "" {
		return Errorf(EINVALID, "plan navigation selector required")
	}
	if p.ContentSelector == "" {
		return Errorf(EINVALID, "plan content selector required")
	}
	if p.TitleSelector == "" {
		return Errorf(EINVALID, "plan title selector required")
	}
	for _, sel := range p.ExcludeSelectors {
		if sel == "" {
			return Errorf(EINVALID, "plan exclude selector must not be blank")
		}
	}
	switch p.FetchStrategy {
	case FetchStatic, FetchDynamic:
	default:
		return Errorf(EINVALID, "plan fetch strategy must be %q or %q", FetchStatic, FetchDynamic)
	}
	return nil
}

// Clone returns a deep copy of the plan. Corrections start from a clone so
// the original instance shared with in-flight workers is never mutated.
func (p *Plan) Clone() *Plan {
	clone := *p
	clone.ExcludeSelectors = append([]string(nil), p.ExcludeSelectors...)
	return &clone
}

// Correction carries everything the planner needs to revise a failed plan:
// the plan that failed, where it failed, why, and what the page actually
// looked like. It is ephemeral and never persisted.
type Correction struct {
	Plan       *Plan
	FailingURL string
	Reason     string
	DOMExcerpt string
}

// Planner produces extraction plans from rendered pages.
// Implementations hide the inference backend; swapping providers must not
// change this contract.
type Planner interface {
	// GeneratePlan inspects a rendered index page and returns a plan.
	// Returns EPLANNING if the model response cannot be parsed into a
	// valid plan, EUNAVAILABLE if the backend cannot be reached.
	GeneratePlan(ctx context.Context, html string) (*Plan, error)

	// CorrectPlan revises a plan using the failure context. Same error
	// contract as GeneratePlan.
	CorrectPlan(ctx context.Context, c *Correction) (*Plan, error)
}
