package docplan

import "context"

// Renderer retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content, or plain HTTP for static sites.
type Renderer interface {
	// Render navigates to the URL, waits for the page to settle,
	// and returns the rendered HTML.
	// The context controls timeout and cancellation.
	Render(ctx context.Context, url string) (html string, err error)

	// Close releases renderer resources.
	// Must be called when the Renderer is no longer needed.
	Close() error
}
