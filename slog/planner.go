package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/aiscrape/docplan"
)

// Ensure LoggingPlanner implements docplan.Planner.
var _ docplan.Planner = (*LoggingPlanner)(nil)

// LoggingPlanner wraps a Planner with logging for plan generation and
// correction, the two model calls worth tracing in a run.
type LoggingPlanner struct {
	next   docplan.Planner
	logger *slog.Logger
}

// NewLoggingPlanner creates a new LoggingPlanner.
func NewLoggingPlanner(next docplan.Planner, logger *slog.Logger) *LoggingPlanner {
	return &LoggingPlanner{next: next, logger: logger}
}

// GeneratePlan delegates to the wrapped planner and logs the operation.
func (p *LoggingPlanner) GeneratePlan(ctx context.Context, html string) (plan *docplan.Plan, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"duration", time.Since(begin),
			"err", err,
		}
		if plan != nil {
			attrs = append(attrs,
				"strategy", string(plan.FetchStrategy),
				"content_selector", plan.ContentSelector,
			)
		}
		p.logger.Info("plan generation", attrs...)
	}(time.Now())
	return p.next.GeneratePlan(ctx, html)
}

// CorrectPlan delegates to the wrapped planner and logs the operation.
func (p *LoggingPlanner) CorrectPlan(ctx context.Context, c *docplan.Correction) (plan *docplan.Plan, err error) {
	defer func(begin time.Time) {
		p.logger.Info("plan correction",
			"failing_url", c.FailingURL,
			"reason", c.Reason,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.CorrectPlan(ctx, c)
}
