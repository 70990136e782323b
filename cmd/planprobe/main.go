// Command planprobe renders a documentation index page, asks the model
// for an extraction plan and prints the plan plus the pages it would
// discover, without touching any database or output directory. Useful for
// checking how a site would be scraped before committing to a full run.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/aiscrape/docplan/gemini"
	"github.com/aiscrape/docplan/goquery"
	"github.com/aiscrape/docplan/rod"
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
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL     string        `arg:"" required:"" help:"Documentation index URL to probe"`
	Timeout time.Duration `short:"t" default:"30s" help:"Render timeout"`
	URLs    bool          `short:"u" help:"Print every discovered URL, not just the count"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("planprobe"),
		kong.Description("Preview the extraction plan for a documentation site"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	renderer, err := rod.NewRenderer(rod.WithRenderTimeout(cli.Timeout))
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer renderer.Close()

	html, err := renderer.Render(ctx, cli.URL)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", cli.URL, err)
	}

	planner := gemini.NewPlanner(client, goquery.NewDetector())
	plan, err := planner.GeneratePlan(ctx, html)
	if err != nil {
		return fmt.Errorf("failed to generate plan: %w", err)
	}

	encoded, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, string(encoded))

	urls, err := goquery.NewDiscoverer().DiscoverPages(html, cli.URL, plan, nil)
	if err != nil {
		fmt.Fprintf(stderr, "discovery failed: %v\n", err)
		return err
	}

	fmt.Fprintf(stdout, "%d pages discovered\n", len(urls))
	if cli.URLs {
		for _, u := range urls {
			fmt.Fprintln(stdout, u)
		}
	}

	return nil
}
