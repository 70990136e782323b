package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aiscrape/docplan"
	"github.com/aiscrape/docplan/mock"
	docslog "github.com/aiscrape/docplan/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestLoggingRenderer(t *testing.T) {
	t.Parallel()

	t.Run("logs render with size and duration", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.Renderer{
			RenderFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		}

		r := docslog.NewLoggingRenderer(inner, logger)
		html, err := r.Render(context.Background(), "https://example.com/docs/")

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		output := buf.String()
		assert.Contains(t, output, "page render")
		assert.Contains(t, output, "url=https://example.com/docs/")
		assert.Contains(t, output, "bytes=13")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.Renderer{
			RenderFn: func(ctx context.Context, url string) (string, error) {
				return "", docplan.Errorf(docplan.EUNAVAILABLE, "navigation timeout")
			},
		}

		_, err := docslog.NewLoggingRenderer(inner, logger).Render(context.Background(), "https://example.com")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "navigation timeout")
	})

	t.Run("close delegates", func(t *testing.T) {
		t.Parallel()

		logger, _ := newLogger()
		closed := false
		inner := &mock.Renderer{CloseFn: func() error { closed = true; return nil }}

		require.NoError(t, docslog.NewLoggingRenderer(inner, logger).Close())
		assert.True(t, closed)
	})
}

func TestLoggingPlanner(t *testing.T) {
	t.Parallel()

	t.Run("logs generated plan selectors", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.Planner{
			GeneratePlanFn: func(ctx context.Context, html string) (*docplan.Plan, error) {
				return &docplan.Plan{
					FetchStrategy:      docplan.FetchStatic,
					NavigationSelector: "nav",
					ContentSelector:    "main",
					TitleSelector:      "h1",
				}, nil
			},
		}

		plan, err := docslog.NewLoggingPlanner(inner, logger).GeneratePlan(context.Background(), "<html></html>")

		require.NoError(t, err)
		assert.NotNil(t, plan)
		output := buf.String()
		assert.Contains(t, output, "plan generation")
		assert.Contains(t, output, "strategy=static")
		assert.Contains(t, output, "content_selector=main")
	})

	t.Run("logs correction reason", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.Planner{
			CorrectPlanFn: func(ctx context.Context, c *docplan.Correction) (*docplan.Plan, error) {
				return nil, docplan.Errorf(docplan.EPLANNING, "no JSON block in model response")
			},
		}

		_, err := docslog.NewLoggingPlanner(inner, logger).CorrectPlan(context.Background(), &docplan.Correction{
			FailingURL: "https://example.com/docs/broken",
			Reason:     "content selector matched nothing",
		})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "plan correction")
		assert.Contains(t, output, "failing_url=https://example.com/docs/broken")
		assert.Contains(t, output, "content selector matched nothing")
	})
}
