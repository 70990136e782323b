// Package mock provides function-field test doubles for the docplan
// interfaces. Tests set only the functions they need; calling an unset
// function panics, which surfaces unexpected interactions immediately.
package mock

import (
	"context"

	"github.com/aiscrape/docplan"
)

var _ docplan.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of docplan.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string) (string, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	return r.RenderFn(ctx, url)
}

func (r *Renderer) Close() error {
	if r.CloseFn == nil {
		return nil
	}
	return r.CloseFn()
}

var _ docplan.Planner = (*Planner)(nil)

// Planner is a mock implementation of docplan.Planner.
type Planner struct {
	GeneratePlanFn func(ctx context.Context, html string) (*docplan.Plan, error)
	CorrectPlanFn  func(ctx context.Context, c *docplan.Correction) (*docplan.Plan, error)
}

func (p *Planner) GeneratePlan(ctx context.Context, html string) (*docplan.Plan, error) {
	return p.GeneratePlanFn(ctx, html)
}

func (p *Planner) CorrectPlan(ctx context.Context, c *docplan.Correction) (*docplan.Plan, error) {
	return p.CorrectPlanFn(ctx, c)
}

var _ docplan.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docplan.Extractor.
type Extractor struct {
	ExtractFn func(html string, plan *docplan.Plan) (*docplan.Extraction, error)
}

func (e *Extractor) Extract(html string, plan *docplan.Plan) (*docplan.Extraction, error) {
	return e.ExtractFn(html, plan)
}

var _ docplan.BaselineExtractor = (*BaselineExtractor)(nil)

// BaselineExtractor is a mock implementation of docplan.BaselineExtractor.
type BaselineExtractor struct {
	ExtractFn func(html string) (*docplan.Extraction, error)
}

func (e *BaselineExtractor) Extract(html string) (*docplan.Extraction, error) {
	return e.ExtractFn(html)
}

var _ docplan.Discoverer = (*Discoverer)(nil)

// Discoverer is a mock implementation of docplan.Discoverer.
type Discoverer struct {
	DiscoverPagesFn func(html, baseURL string, plan *docplan.Plan, filter *docplan.URLFilter) ([]string, error)
}

func (d *Discoverer) DiscoverPages(html, baseURL string, plan *docplan.Plan, filter *docplan.URLFilter) ([]string, error) {
	return d.DiscoverPagesFn(html, baseURL, plan, filter)
}

var _ docplan.Converter = (*Converter)(nil)

// Converter is a mock implementation of docplan.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ docplan.Judge = (*Judge)(nil)

// Judge is a mock implementation of docplan.Judge.
type Judge struct {
	JudgeEquivalenceFn func(ctx context.Context, local, live string) (*docplan.Judgement, error)
}

func (j *Judge) JudgeEquivalence(ctx context.Context, local, live string) (*docplan.Judgement, error) {
	return j.JudgeEquivalenceFn(ctx, local, live)
}

var _ docplan.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of docplan.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (t *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return t.CountTokensFn(ctx, text)
}

var _ docplan.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of docplan.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}

var _ docplan.FrameworkDetector = (*FrameworkDetector)(nil)

// FrameworkDetector is a mock implementation of docplan.FrameworkDetector.
type FrameworkDetector struct {
	DetectFn func(html string) docplan.Framework
}

func (d *FrameworkDetector) Detect(html string) docplan.Framework {
	return d.DetectFn(html)
}
