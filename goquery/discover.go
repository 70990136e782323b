package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aiscrape/docplan"
)

// Ensure Discoverer implements docplan.Discoverer at compile time.
var _ docplan.Discoverer = (*Discoverer)(nil)

// Discoverer derives the page set from a rendered index page by applying
// the plan's navigation selector.
type Discoverer struct{}

// NewDiscoverer creates a new Discoverer.
func NewDiscoverer() *Discoverer {
	return &Discoverer{}
}

// DiscoverPages extracts link targets from the plan's navigation container,
// resolves them to absolute URLs and deduplicates them preserving
// first-seen order. Only same-host URLs under the index page's path prefix
// survive; the filter, if non-nil, further restricts the result.
func (d *Discoverer) DiscoverPages(html, baseURL string, plan *docplan.Plan, filter *docplan.URLFilter) ([]string, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docplan.Errorf(docplan.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docplan.Errorf(docplan.EINVALID, "failed to parse HTML: %v", err)
	}

	nav, err := find(doc.Selection, plan.NavigationSelector)
	if err != nil {
		return nil, docplan.Errorf(docplan.ENODISCOVERY, "navigation selector %q is invalid: %v", plan.NavigationSelector, err)
	}
	if nav.Length() == 0 {
		return nil, docplan.Errorf(docplan.ENODISCOVERY, "navigation selector %q matched no elements", plan.NavigationSelector)
	}

	prefix := pathPrefix(base)
	seen := make(map[string]bool)
	var urls []string

	nav.First().Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		if !isSameHost(base, resolved) {
			return
		}

		resolvedURL, err := url.Parse(resolved)
		if err != nil || !strings.HasPrefix(resolvedURL.Path, prefix) {
			return
		}

		if !filter.Match(resolved) {
			return
		}

		if !seen[resolved] {
			seen[resolved] = true
			urls = append(urls, resolved)
		}
	})

	if len(urls) == 0 {
		return nil, docplan.Errorf(docplan.ENODISCOVERY, "navigation selector %q yielded no usable links", plan.NavigationSelector)
	}

	return urls, nil
}

// pathPrefix returns the directory portion of the index page path, used to
// scope discovery to the documentation tree. /4.5/index.html scopes to
// /4.5/, /docs/ scopes to itself.
func pathPrefix(base *url.URL) string {
	path := base.Path
	if path == "" {
		return "/"
	}
	if strings.HasSuffix(path, "/") {
		return path
	}
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[:idx+1]
	}
	return "/"
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// is self-referential (same as base URL after stripping fragment).
// Fragments are stripped from the resolved URL for deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base URL.
// This uses exact host matching - subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
