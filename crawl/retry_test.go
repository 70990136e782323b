package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aiscrape/docplan/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWithRetryDelays(t *testing.T) {
	t.Parallel()

	noDelays := []time.Duration{0, 0}

	t.Run("returns first success without retrying", func(t *testing.T) {
		t.Parallel()

		calls := 0
		html, err := crawl.RenderWithRetryDelays(context.Background(), "https://example.com",
			func(ctx context.Context, url string) (string, error) {
				calls++
				return "<html></html>", nil
			}, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries once per delay then succeeds", func(t *testing.T) {
		t.Parallel()

		calls := 0
		html, err := crawl.RenderWithRetryDelays(context.Background(), "https://example.com",
			func(ctx context.Context, url string) (string, error) {
				calls++
				if calls < 3 {
					return "", errors.New("connection reset")
				}
				return "ok", nil
			}, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns the last error when all attempts fail", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("still down")
		calls := 0
		_, err := crawl.RenderWithRetryDelays(context.Background(), "https://example.com",
			func(ctx context.Context, url string) (string, error) {
				calls++
				return "", wantErr
			}, nil, noDelays)

		require.ErrorIs(t, err, wantErr)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops waiting when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := crawl.RenderWithRetryDelays(ctx, "https://example.com",
			func(ctx context.Context, url string) (string, error) {
				return "", errors.New("transient")
			}, nil, []time.Duration{time.Hour})

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("logs each retry", func(t *testing.T) {
		t.Parallel()

		var logs []string
		_, _ = crawl.RenderWithRetryDelays(context.Background(), "https://example.com",
			func(ctx context.Context, url string) (string, error) {
				return "", errors.New("boom")
			},
			func(format string, args ...any) {
				logs = append(logs, format)
			}, noDelays)

		assert.Len(t, logs, 2)
	})
}
