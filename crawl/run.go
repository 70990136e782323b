// Package crawl orchestrates a full scrape of a documentation site: plan
// generation from the rendered index page, navigation-based discovery,
// concurrent plan-driven extraction with one-shot self-correction, and
// ordered persistence of the results.
package crawl

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aiscrape/docplan"
	"golang.org/x/sync/errgroup"
)

// defaultConcurrency bounds the extraction worker pool when the caller
// does not set one.
const defaultConcurrency = 10

// Runner coordinates one scrape run. Renderer must be a browser-backed
// renderer; planning always uses it since selector quality depends on
// seeing the fully rendered index. StaticRenderer is used during
// extraction when the plan requests the static strategy; if nil, Renderer
// serves both strategies.
type Runner struct {
	Renderer       docplan.Renderer
	StaticRenderer docplan.Renderer
	Planner        docplan.Planner
	Extractor      docplan.Extractor
	Discoverer     docplan.Discoverer
	Converter      docplan.Converter
	Baseline       docplan.BaselineExtractor
	Documents      docplan.DocumentService
	Store          docplan.PageStore
	TokenCounter   docplan.TokenCounter
	Limiter        docplan.DomainLimiter

	Concurrency      int
	MinContentLength int
	RetryDelays      []time.Duration
}

// Summary holds the outcome of a scrape run.
type Summary struct {
	Discovered  int
	Succeeded   int
	Failed      int
	Corrections int
	Bytes       int
	Tokens      int

	// Plan is the plan the run ended with, including any index-scoped
	// correction. Callers persist it on the project.
	Plan *docplan.Plan
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types emitted over the lifetime of a run.
const (
	ProgressPlanned ProgressType = iota
	ProgressStarted
	ProgressCompleted
	ProgressCorrected
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// taskResult holds the outcome of processing a single page task.
type taskResult struct {
	position  int
	url       string
	title     string
	markdown  string
	corrected bool
	err       error
}

// Run scrapes a project end to end and returns a summary.
//
// The run fails outright, persisting nothing, when the index cannot be
// rendered, no plan can be generated (EPLANNING/EUNAVAILABLE), or
// discovery yields no pages even after one corrective replanning
// (ENODISCOVERY). Per-page failures after the page's own one-shot
// correction only mark that page failed; a run where every page failed
// returns EALLFAILED. Cancellation stops new work, keeps finished pages,
// commits the store and returns a partial summary with no error.
func (r *Runner) Run(ctx context.Context, project *docplan.Project, progress ProgressFunc) (*Summary, error) {
	filter, err := parseFilter(project.Filter)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}

	// Planning always renders dynamically: a static fetch of an SPA index
	// would hand the model an empty shell to plan against.
	indexHTML, err := r.renderWithRetry(ctx, r.Renderer, project.SourceURL)
	if err != nil {
		return nil, err
	}

	plan, err := r.Planner.GeneratePlan(ctx, indexHTML)
	if err != nil {
		return nil, err
	}

	urls, err := r.Discoverer.DiscoverPages(indexHTML, project.SourceURL, plan, filter)
	if err != nil {
		// One corrective replanning, scoped to the index. A second
		// discovery failure is terminal for the whole run.
		corrected, cerr := r.Planner.CorrectPlan(ctx, &docplan.Correction{
			Plan:       plan,
			FailingURL: project.SourceURL,
			Reason:     "page discovery failed: " + docplan.ErrorMessage(err),
			DOMExcerpt: indexHTML,
		})
		if cerr != nil {
			return nil, err
		}
		summary.Corrections++

		indexHTML, err = r.renderWithRetry(ctx, r.Renderer, project.SourceURL)
		if err != nil {
			return nil, err
		}
		urls, err = r.Discoverer.DiscoverPages(indexHTML, project.SourceURL, corrected, filter)
		if err != nil {
			return nil, docplan.Errorf(docplan.ENODISCOVERY,
				"no pages discovered after corrective replanning: %s", docplan.ErrorMessage(err))
		}
		plan = corrected
	}

	summary.Discovered = len(urls)
	summary.Plan = plan

	if progress != nil {
		progress(ProgressEvent{Type: ProgressPlanned, Total: len(urls), URL: project.SourceURL})
		progress(ProgressEvent{Type: ProgressStarted, Total: len(urls)})
	}

	results := r.extractAll(ctx, urls, plan, progress)

	// Persistence must survive cancellation: finished pages are kept and
	// the store still commits with whatever completed.
	persistCtx := context.WithoutCancel(ctx)
	canceled := ctx.Err() != nil

	for _, result := range results {
		if result.corrected {
			summary.Corrections++
		}
		if result.err != nil {
			if !isContextErr(result.err) {
				summary.Failed++
			}
			continue
		}

		if err := r.persist(persistCtx, project, result); err != nil {
			summary.Failed++
			continue
		}

		summary.Succeeded++
		summary.Bytes += len(result.markdown)
		if r.TokenCounter != nil {
			if tokens, err := r.TokenCounter.CountTokens(persistCtx, result.markdown); err == nil {
				summary.Tokens += tokens
			}
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: len(urls), Total: len(urls)})
	}

	if r.Store != nil {
		if summary.Succeeded > 0 {
			if err := r.Store.Commit(); err != nil {
				return summary, err
			}
		} else {
			_ = r.Store.Abort()
		}
	}

	if summary.Succeeded == 0 && !canceled {
		return summary, docplan.Errorf(docplan.EALLFAILED, "all %d discovered pages failed", summary.Discovered)
	}

	return summary, nil
}

// extractAll runs the bounded worker pool over the discovered URLs and
// returns results indexed by discovery position.
func (r *Runner) extractAll(ctx context.Context, urls []string, plan *docplan.Plan, progress ProgressFunc) []taskResult {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	resultCh := make(chan taskResult, len(urls))
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, pageURL := range urls {
			task := docplan.PageTask{URL: pageURL, Position: i}
			g.Go(func() error {
				resultCh <- r.processTask(gctx, task, plan)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]taskResult, len(urls))
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Completed: int(completed.Load()),
			Total:     len(urls),
			URL:       result.url,
		}
		switch {
		case result.err != nil:
			event.Type = ProgressFailed
			event.Error = result.err
		case result.corrected:
			event.Type = ProgressCorrected
		default:
			event.Type = ProgressCompleted
		}
		progress(event)
	}

	return results
}

// processTask renders and extracts one page, applying the one-shot
// self-correction cycle on failure. The corrected plan is a new value
// local to this task; sibling workers keep the plan they started with.
func (r *Runner) processTask(ctx context.Context, task docplan.PageTask, plan *docplan.Plan) taskResult {
	result := taskResult{position: task.Position, url: task.URL}

	html, err := r.renderTask(ctx, r.rendererFor(plan), task.URL)
	if err == nil {
		var title, markdown string
		title, markdown, err = r.extractPage(html, plan)
		if err == nil {
			result.title = title
			result.markdown = markdown
			return result
		}
	}
	if isContextErr(err) || ctx.Err() != nil {
		result.err = err
		return result
	}

	// One-shot correction: replan against the failure, re-render with the
	// corrected plan's renderer and retry once. A render failure corrects
	// with no DOM excerpt; a switched fetch strategy is often the fix
	// there. Any failure along the way makes the original error terminal
	// for this page.
	corrected, cerr := r.Planner.CorrectPlan(ctx, &docplan.Correction{
		Plan:       plan,
		FailingURL: task.URL,
		Reason:     docplan.ErrorMessage(err),
		DOMExcerpt: html,
	})
	if cerr != nil {
		result.err = err
		return result
	}
	result.corrected = true

	html, rerr := r.renderTask(ctx, r.rendererFor(corrected), task.URL)
	if rerr != nil {
		result.err = err
		return result
	}

	title, markdown, err2 := r.extractPage(html, corrected)
	if err2 != nil {
		result.err = err
		return result
	}

	result.title = title
	result.markdown = markdown
	return result
}

// renderTask rate-limits and renders one page with retry.
func (r *Runner) renderTask(ctx context.Context, renderer docplan.Renderer, pageURL string) (string, error) {
	if r.Limiter != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			return "", docplan.Errorf(docplan.EINVALID, "invalid page URL: %v", err)
		}
		if err := r.Limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}
	return r.renderWithRetry(ctx, renderer, pageURL)
}

// extractPage applies the plan to rendered HTML and converts the result
// to markdown, enforcing the minimum-length and thin-content checks.
func (r *Runner) extractPage(html string, plan *docplan.Plan) (title, markdown string, err error) {
	extraction, err := r.Extractor.Extract(html, plan)
	if err != nil {
		return "", "", err
	}

	markdown, err = r.Converter.Convert(extraction.ContentHTML)
	if err != nil {
		return "", "", err
	}

	if len(markdown) < r.MinContentLength {
		return "", "", docplan.Errorf(docplan.EEMPTYCONTENT,
			"extracted content below minimum length (%d < %d)", len(markdown), r.MinContentLength)
	}

	if ThinContent(extraction.ContentHTML, html, r.Baseline) {
		return "", "", docplan.Errorf(docplan.EEMPTYCONTENT,
			"content selector captured a fraction of the page")
	}

	return extraction.Title, markdown, nil
}

// persist saves one successful result to the document store and, when
// configured, the staged file store.
func (r *Runner) persist(ctx context.Context, project *docplan.Project, result taskResult) error {
	var filePath string
	if r.Store != nil {
		path, err := r.Store.Save(ctx, &docplan.Page{
			URL:     result.url,
			Title:   result.title,
			Content: result.markdown,
		})
		if err != nil {
			return err
		}
		filePath = path
	}

	return r.Documents.CreateDocument(ctx, &docplan.Document{
		ProjectID: project.ID,
		FilePath:  filePath,
		SourceURL: result.url,
		Title:     result.title,
		Content:   result.markdown,
		Position:  result.position,
	})
}

// rendererFor picks the renderer matching the plan's fetch strategy.
func (r *Runner) rendererFor(plan *docplan.Plan) docplan.Renderer {
	if plan.FetchStrategy == docplan.FetchStatic && r.StaticRenderer != nil {
		return r.StaticRenderer
	}
	return r.Renderer
}

func (r *Runner) renderWithRetry(ctx context.Context, renderer docplan.Renderer, pageURL string) (string, error) {
	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return RenderWithRetryDelays(ctx, pageURL, renderer.Render, nil, delays)
}

// parseFilter compiles a project's newline-joined include patterns into a
// URLFilter. An empty filter matches everything.
func parseFilter(patterns string) (*docplan.URLFilter, error) {
	if patterns == "" {
		return nil, nil
	}

	filter := &docplan.URLFilter{}
	for _, pattern := range strings.Split(patterns, "\n") {
		if pattern == "" {
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, docplan.Errorf(docplan.EINVALID, "invalid filter pattern %q: %v", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	if len(filter.Include) == 0 {
		return nil, nil
	}
	return filter, nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
