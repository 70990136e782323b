// Package gemini provides inference-backed implementations of docplan
// interfaces using Google Gemini: plan generation, plan correction and
// semantic-equivalence judging.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aiscrape/docplan"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Prompt context limits. The planner sees the head of the rendered index
// page; corrections see a shorter excerpt of the page that failed.
const (
	planSnippetLimit       = 8000
	correctionSnippetLimit = 2000
)

// jsonBlockRe matches the first top-level JSON object in a model reply.
// Models occasionally wrap JSON in prose or markdown fences.
var jsonBlockRe = regexp.MustCompile(`\{[\s\S]*\}`)

// Ensure Planner implements docplan.Planner at compile time.
var _ docplan.Planner = (*Planner)(nil)

// Planner implements docplan.Planner using Google Gemini.
type Planner struct {
	client   *genai.Client
	detector docplan.FrameworkDetector
}

// NewPlanner creates a new Planner. The detector is optional; when set,
// the detected framework is included in the planning prompt as a hint.
func NewPlanner(client *genai.Client, detector docplan.FrameworkDetector) *Planner {
	return &Planner{client: client, detector: detector}
}

// GeneratePlan inspects a rendered index page and returns an extraction plan.
func (p *Planner) GeneratePlan(ctx context.Context, html string) (*docplan.Plan, error) {
	if strings.TrimSpace(html) == "" {
		return nil, docplan.Errorf(docplan.EINVALID, "empty HTML input")
	}

	prompt := BuildPlanPrompt(html, p.hint(html))
	text, err := p.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return ParsePlan(text)
}

// CorrectPlan revises a failed plan using the failure context.
func (p *Planner) CorrectPlan(ctx context.Context, c *docplan.Correction) (*docplan.Plan, error) {
	if c == nil || c.Plan == nil {
		return nil, docplan.Errorf(docplan.EINVALID, "correction context required")
	}

	prompt, err := BuildCorrectionPrompt(c)
	if err != nil {
		return nil, err
	}

	text, err := p.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return ParsePlan(text)
}

// generate runs one inference call and returns the raw reply text.
func (p *Planner) generate(ctx context.Context, prompt string) (string, error) {
	result, err := p.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildPlanConfig(),
	)
	if err != nil {
		return "", docplan.Errorf(docplan.EUNAVAILABLE, "plan inference failed: %v", err)
	}
	if result == nil {
		return "", docplan.Errorf(docplan.EUNAVAILABLE, "gemini returned nil result")
	}
	return result.Text(), nil
}

func (p *Planner) hint(html string) docplan.Framework {
	if p.detector == nil {
		return docplan.FrameworkUnknown
	}
	return p.detector.Detect(html)
}

// BuildPlanConfig returns the GenerateContentConfig for planning calls.
// Low temperature keeps selector output stable between runs.
func BuildPlanConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an expert front-end developer and web scraping specialist. You analyze fully rendered HTML and produce precise, general CSS selectors. You reply with a single JSON object and nothing else.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildPlanPrompt builds the initial planning prompt from the rendered
// index HTML and an optional framework hint.
func BuildPlanPrompt(html string, framework docplan.Framework) string {
	var sb strings.Builder
	sb.WriteString("Analyze the fully browser-rendered HTML below and produce a scraping plan for this documentation site.\n\n")
	sb.WriteString("Work in two steps:\n")
	sb.WriteString("1. Decide whether the site is static/server-rendered (\"static\") or a single-page application that needs a browser to render (\"dynamic\"). Prefer \"dynamic\" for modern React/Vue documentation.\n")
	sb.WriteString("2. Derive selectors that are general enough to match both this index page and the site's content pages:\n")
	sb.WriteString("   - navigation_selector: the outermost container wrapping the whole navigation link tree (e.g. `nav.side-bar`, `#main-navigation`).\n")
	sb.WriteString("   - content_selector: the main container holding the article body - headings, paragraphs, code blocks (e.g. `main`, `article`, `div[role=\"main\"]`). Avoid overly specific compound selectors.\n")
	sb.WriteString("   - exclude_selectors: elements to strip from the content before conversion (header anchors, edit-this-page links, prev/next pagers, ad banners).\n")
	sb.WriteString("   - title_selector: the element holding the page title, usually `h1`.\n")
	if framework != docplan.FrameworkUnknown {
		fmt.Fprintf(&sb, "\nThe page appears to be generated by %s.\n", framework)
	}
	sb.WriteString("\nHTML preview (truncated):\n```html\n")
	sb.WriteString(truncate(html, planSnippetLimit))
	sb.WriteString("\n```\n\n")
	sb.WriteString("Reply with exactly one JSON object in this shape, with real values derived from the HTML:\n")
	sb.WriteString(`{"fetch_strategy": "dynamic", "navigation_selector": "nav.md-nav", "content_selector": ".md-content", "exclude_selectors": ["a.headerlink"], "title_selector": "h1"}`)
	return sb.String()
}

// BuildCorrectionPrompt builds the self-correction prompt from a failed
// plan and its failure context.
func BuildCorrectionPrompt(c *docplan.Correction) (string, error) {
	planJSON, err := json.Marshal(c.Plan)
	if err != nil {
		return "", docplan.Errorf(docplan.EINTERNAL, "serializing failed plan: %v", err)
	}

	var sb strings.Builder
	sb.WriteString("A scraping plan you produced earlier failed during execution. Diagnose the failure and return a corrected plan.\n\n")
	sb.WriteString("Failure report:\n")
	fmt.Fprintf(&sb, "- URL: %s\n", c.FailingURL)
	fmt.Fprintf(&sb, "- Reason: %s\n", c.Reason)
	fmt.Fprintf(&sb, "- Failed plan: %s\n", planJSON)
	sb.WriteString("\nHTML of the failing page at the time of failure (truncated):\n```html\n")
	sb.WriteString(truncate(c.DOMExcerpt, correctionSnippetLimit))
	sb.WriteString("\n```\n\n")
	sb.WriteString("Analyze why the failing selector does not match this HTML and provide a corrected, more robust replacement. Keep the other fields unchanged unless they are also wrong.\n")
	sb.WriteString("Reply with exactly one JSON object with the keys fetch_strategy, navigation_selector, content_selector, exclude_selectors, title_selector.")
	return sb.String(), nil
}

// ParsePlan extracts and validates a plan from a model reply.
// Returns EPLANNING if no JSON object is found, the JSON is malformed, or
// the resulting plan fails validation.
func ParsePlan(text string) (*docplan.Plan, error) {
	block := jsonBlockRe.FindString(text)
	if block == "" {
		return nil, docplan.Errorf(docplan.EPLANNING, "no JSON object in model reply")
	}

	var plan docplan.Plan
	if err := json.Unmarshal([]byte(block), &plan); err != nil {
		return nil, docplan.Errorf(docplan.EPLANNING, "malformed plan JSON: %v", err)
	}

	if plan.FetchStrategy == "" {
		plan.FetchStrategy = docplan.FetchDynamic
	}

	if err := plan.Validate(); err != nil {
		return nil, docplan.Errorf(docplan.EPLANNING, "model returned incomplete plan: %s", docplan.ErrorMessage(err))
	}

	return &plan, nil
}

// truncate cuts s to at most limit bytes without splitting a UTF-8 rune
// at the boundary.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
