// Package rod provides a browser-based implementation of docplan.Renderer
// using headless Chrome, for documentation sites that require JavaScript
// rendering.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aiscrape/docplan"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultRenderTimeout bounds a single render call.
const DefaultRenderTimeout = 30 * time.Second

// DefaultMaxPages is the number of rendered pages before browser recycling.
// Chrome accumulates memory over time and the baseline never returns to
// initial levels even with proper page cleanup, so the browser is restarted
// periodically.
const DefaultMaxPages = 75

// Ensure Renderer implements docplan.Renderer at compile time.
var _ docplan.Renderer = (*Renderer)(nil)

// Renderer retrieves rendered HTML from URLs using Chrome browser
// automation. Renderer is safe for concurrent use by multiple goroutines.
type Renderer struct {
	timeout     time.Duration
	renderDelay time.Duration
	maxPages    int64

	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount int64
	closed    atomic.Bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRenderTimeout bounds each render call. Defaults to DefaultRenderTimeout.
func WithRenderTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithRenderDelay adds a fixed wait after page load before reading the DOM.
// Some SPA frameworks need additional time for async content to settle.
func WithRenderDelay(d time.Duration) Option {
	return func(r *Renderer) {
		r.renderDelay = d
	}
}

// WithMaxPages sets the number of pages before the browser is recycled.
// Defaults to DefaultMaxPages.
func WithMaxPages(n int64) Option {
	return func(r *Renderer) {
		r.maxPages = n
	}
}

// NewRenderer creates a Renderer that launches a headless Chrome browser.
// Close must be called when the Renderer is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		timeout:  DefaultRenderTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.launchBrowser(); err != nil {
		return nil, err
	}

	return r, nil
}

// SetRenderDelay adjusts the post-load delay at runtime, e.g. after
// framework detection reveals the site needs extra settle time.
func (r *Renderer) SetRenderDelay(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderDelay = d
}

// Render navigates to the URL, waits for the page to settle and returns
// the rendered HTML.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if r.closed.Load() {
		return "", docplan.Errorf(docplan.EINVALID, "renderer is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, delay, err := r.acquireBrowser()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	atomic.AddInt64(&r.pageCount, 1)
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (r *Renderer) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closeBrowser()
}

// acquireBrowser returns the current browser, recycling it first when the
// page count has reached maxPages.
func (r *Renderer) acquireBrowser() (*rod.Browser, time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if atomic.LoadInt64(&r.pageCount) >= r.maxPages {
		_ = r.closeBrowser()
		if err := r.launchBrowser(); err != nil {
			return nil, 0, err
		}
		atomic.StoreInt64(&r.pageCount, 0)
	}

	return r.browser, r.renderDelay, nil
}

// launchBrowser starts a new browser instance with stability flags.
// Must be called with mu held (or before the Renderer is shared).
func (r *Renderer) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	r.browser = browser
	r.launcher = lnchr
	return nil
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (r *Renderer) closeBrowser() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}
