// Package slog provides logging decorators for docplan interfaces using
// the standard structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/aiscrape/docplan"
)

// Ensure LoggingRenderer implements docplan.Renderer.
var _ docplan.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with per-page logging.
type LoggingRenderer struct {
	next   docplan.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next docplan.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs the operation.
func (r *LoggingRenderer) Render(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("page render",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, url)
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}
