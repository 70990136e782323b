package http_test

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aiscrape/docplan"
	"github.com/aiscrape/docplan/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Renderer implements docplan.Renderer.
var _ docplan.Renderer = (*http.Renderer)(nil)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>static content</body></html>"))
	}))
	defer srv.Close()

	renderer := http.NewRenderer()
	defer renderer.Close()

	html, err := renderer.Render(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "static content")
}

func TestRenderer_Render_SendsUserAgent(t *testing.T) {
	t.Parallel()

	var gotAgent string
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	renderer := http.NewRenderer()
	defer renderer.Close()

	_, err := renderer.Render(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, gotAgent, "Mozilla")
}

func TestRenderer_Render_NonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusNotFound)
	}))
	defer srv.Close()

	renderer := http.NewRenderer()
	defer renderer.Close()

	_, err := renderer.Render(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestRenderer_Render_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	renderer := http.NewRenderer()
	defer renderer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := renderer.Render(ctx, srv.URL)

	require.Error(t, err)
}
