// Package fs writes scraped documentation to the local filesystem as a
// Markdown tree mirroring the site's URL structure.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aiscrape/docplan"
)

// URLToPath converts a documentation URL to a relative file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path
	if path == "" || path == "/" {
		return "index.md", nil
	}

	path = strings.TrimPrefix(path, "/")
	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}

	// Rendered pages served as .html map to the same name in Markdown.
	path = strings.TrimSuffix(path, ".html")

	// Reject URLs whose cleaned path would escape the output tree.
	cleaned := filepath.Clean(path)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", docplan.Errorf(docplan.EINVALID, "URL path escapes output directory: %s", rawURL)
	}

	return cleaned + ".md", nil
}

// FormatDocument renders a document as Markdown with YAML frontmatter.
func FormatDocument(doc *docplan.Document) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(doc.SourceURL)
	b.WriteString("\ntitle: ")
	b.WriteString(doc.Title)
	b.WriteString("\nscraped: ")
	b.WriteString(doc.FetchedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(doc.Content)
	return b.String()
}

// Ensure Writer implements docplan.DocumentWriter at compile time.
var _ docplan.DocumentWriter = (*Writer)(nil)

// Writer writes documents as Markdown files under a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer rooted at baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// CreateDocument writes a document to disk, creating parent directories
// as needed, and records the relative path on doc.FilePath.
func (w *Writer) CreateDocument(ctx context.Context, doc *docplan.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(doc.SourceURL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(fullPath, []byte(FormatDocument(doc)), 0644); err != nil {
		return err
	}
	doc.FilePath = relPath
	return nil
}
