package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aiscrape/docplan"
)

// Ensure Detector implements docplan.FrameworkDetector at compile time.
var _ docplan.FrameworkDetector = (*Detector)(nil)

// Detector identifies documentation frameworks from HTML content.
// It checks meta generator tags first, then framework-specific CSS classes
// and data attributes unique to each documentation generator. The result
// feeds the planning prompt as a hint.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified framework.
// Returns FrameworkUnknown if the framework cannot be determined.
func (d *Detector) Detect(html string) docplan.Framework {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return docplan.FrameworkUnknown
	}

	if framework := detectFromMetaGenerator(doc); framework != docplan.FrameworkUnknown {
		return framework
	}

	switch {
	case hasSelector(doc, "#__docusaurus_skipToContent_fallback"),
		hasSelector(doc, ".theme-doc-sidebar-container"):
		return docplan.FrameworkDocusaurus

	case hasSelector(doc, "[data-md-color-scheme]"),
		hasSelector(doc, "[data-md-component]"),
		hasSelector(doc, ".md-nav--primary"):
		return docplan.FrameworkMkDocs

	case hasSelector(doc, ".toctree-wrapper"),
		hasSelector(doc, ".wy-nav-side"),
		hasSelector(doc, ".sphinxsidebar"),
		hasSelector(doc, ".bd-sidebar-primary"):
		return docplan.FrameworkSphinx

	// VitePress before VuePress since VitePress is a VuePress successor.
	case hasSelector(doc, "#VPContent"),
		hasSelector(doc, ".VPDoc"):
		return docplan.FrameworkVitePress

	case hasSelector(doc, ".theme-default-content"),
		hasSelector(doc, ".sidebar-links"):
		return docplan.FrameworkVuePress

	case hasSelector(doc, "[data-testid='space.sidebar']"),
		hasSelector(doc, "[data-testid='page.desktopTableOfContents']"):
		return docplan.FrameworkGitBook

	case hasSelector(doc, ".nextra-navbar"),
		hasSelector(doc, ".nextra-sidebar"),
		hasSelector(doc, ".nextra-toc"):
		return docplan.FrameworkNextra
	}

	return docplan.FrameworkUnknown
}

// detectFromMetaGenerator checks the meta generator tag for framework
// identification - most reliable when present.
func detectFromMetaGenerator(doc *goquery.Document) docplan.Framework {
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})

	if generator == "" {
		return docplan.FrameworkUnknown
	}

	switch {
	case strings.Contains(generator, "sphinx"):
		return docplan.FrameworkSphinx
	case strings.Contains(generator, "gitbook"):
		return docplan.FrameworkGitBook
	case strings.Contains(generator, "docusaurus"):
		return docplan.FrameworkDocusaurus
	case strings.Contains(generator, "mkdocs"):
		return docplan.FrameworkMkDocs
	case strings.Contains(generator, "vitepress"):
		return docplan.FrameworkVitePress
	case strings.Contains(generator, "vuepress"):
		return docplan.FrameworkVuePress
	case strings.Contains(generator, "nextra"):
		return docplan.FrameworkNextra
	}

	return docplan.FrameworkUnknown
}

// hasSelector checks if the document contains at least one element matching
// the selector.
func hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
