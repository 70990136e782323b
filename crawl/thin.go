package crawl

import "github.com/aiscrape/docplan"

// thinContentRatio is how many times longer the baseline extraction must
// be before the plan's extraction counts as thin. A valid content selector
// sometimes misses sidebars the baseline picks up, so the margin is wide.
const thinContentRatio = 3

// ThinContent reports whether the plan captured a near-empty slice of the
// page: a selector that matches a real but marginal node (a breadcrumb, an
// empty wrapper) extracts successfully yet misses the actual content. The
// baseline extractor's plan-free reading of the same HTML is the yardstick.
// Baseline failures are ignored; the check only ever flags, never excuses.
func ThinContent(planHTML, pageHTML string, baseline docplan.BaselineExtractor) bool {
	if baseline == nil {
		return false
	}

	base, err := baseline.Extract(pageHTML)
	if err != nil || base.ContentHTML == "" {
		return false
	}

	return len(base.ContentHTML) > len(planHTML)*thinContentRatio
}
