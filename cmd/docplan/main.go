// Command docplan turns documentation websites into structured local
// markdown using model-generated extraction plans.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/aiscrape/docplan"
	"github.com/aiscrape/docplan/crawl"
	"github.com/aiscrape/docplan/fs"
	"github.com/aiscrape/docplan/gemini"
	"github.com/aiscrape/docplan/goquery"
	"github.com/aiscrape/docplan/htmltomarkdown"
	dochttp "github.com/aiscrape/docplan/http"
	"github.com/aiscrape/docplan/readability"
	"github.com/aiscrape/docplan/rod"
	docslog "github.com/aiscrape/docplan/slog"
	"github.com/aiscrape/docplan/sqlite"
	"github.com/aiscrape/docplan/trafilatura"
	"github.com/aiscrape/docplan/validate"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services exposed for end-to-end testing.
	ProjectService  docplan.ProjectService
	DocumentService docplan.DocumentService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docplan"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docplan --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCPLAN_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ProjectService = sqlite.NewProjectService(m.DB)
	m.DocumentService = sqlite.NewDocumentService(m.DB)
	deps.DB = m.DB
	deps.Projects = m.ProjectService
	deps.Documents = m.DocumentService

	switch cmd {
	case "scrape":
		client, err := newGeminiClient(ctx, stderr)
		if err != nil {
			return err
		}

		rodRenderer, err := rod.NewRenderer()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer rodRenderer.Close()

		var renderer docplan.Renderer = rodRenderer
		var staticRenderer docplan.Renderer = dochttp.NewRenderer()
		var planner docplan.Planner = gemini.NewPlanner(client, goquery.NewDetector())
		if cli.Verbose {
			logger := slog.New(slog.NewTextHandler(stderr, nil))
			renderer = docslog.NewLoggingRenderer(renderer, logger)
			staticRenderer = docslog.NewLoggingRenderer(staticRenderer, logger)
			planner = docslog.NewLoggingPlanner(planner, logger)
		}

		tokenCounter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}

		var store docplan.PageStore
		if cli.Scrape.Output != "" {
			store = fs.NewFileStore(filepath.Dir(cli.Scrape.Output), filepath.Base(cli.Scrape.Output))
		}

		deps.Runner = &crawl.Runner{
			Renderer:         renderer,
			StaticRenderer:   staticRenderer,
			Planner:          planner,
			Extractor:        goquery.NewExtractor(),
			Discoverer:       goquery.NewDiscoverer(),
			Converter:        htmltomarkdown.NewConverter(),
			Baseline:         trafilatura.NewExtractor(),
			Documents:        m.DocumentService,
			Store:            store,
			TokenCounter:     tokenCounter,
			Limiter:          crawl.NewDomainLimiter(1.0),
			Concurrency:      cli.Scrape.Concurrency,
			MinContentLength: cli.Scrape.MinContent,
		}

	case "validate":
		client, err := newGeminiClient(ctx, stderr)
		if err != nil {
			return err
		}

		rodRenderer, err := rod.NewRenderer()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer rodRenderer.Close()

		var renderer docplan.Renderer = rodRenderer
		if cli.Verbose {
			logger := slog.New(slog.NewTextHandler(stderr, nil))
			renderer = docslog.NewLoggingRenderer(renderer, logger)
		}

		deps.Validator = &validate.Validator{
			Renderer:  renderer,
			Baseline:  readability.NewExtractor(),
			Converter: htmltomarkdown.NewConverter(),
			Judge:     gemini.NewJudge(client),
			Documents: m.DocumentService,
		}
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is the model the local tokenizer counts tokens for.
const tokenizerModel = "gemini-2.5-flash"

func newGeminiClient(ctx context.Context, stderr io.Writer) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client, nil
}

func defaultDBPath() string {
	if path := os.Getenv("DOCPLAN_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docplan.db"
	}
	dir := filepath.Join(home, ".docplan")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docplan.db")
}
