package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aiscrape/docplan"
)

// Ensure FileStore implements docplan.PageStore at compile time.
var _ docplan.PageStore = (*FileStore)(nil)

// FileStore implements docplan.PageStore with atomic update semantics.
// Pages accumulate in baseDir/name.tmp and replace baseDir/name in one
// rename on Commit, so a run that dies mid-write never leaves a partially
// overwritten output tree.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a FileStore writing to baseDir/name.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{baseDir: baseDir, name: name}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes a page into the pending temporary tree and returns the
// path the page will have relative to the committed output directory.
func (s *FileStore) Save(ctx context.Context, page *docplan.Page) (string, error) {
	relPath, err := URLToPath(page.URL)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	if err := os.WriteFile(fullPath, []byte(FormatPage(page)), 0644); err != nil {
		return "", err
	}
	return relPath, nil
}

// FormatPage renders a page as Markdown with YAML frontmatter.
func FormatPage(page *docplan.Page) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(page.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(page.Title)
	b.WriteString("\nscraped: ")
	b.WriteString(time.Now().Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(page.Content)
	return b.String()
}

// Commit atomically replaces the output tree with the pending one.
func (s *FileStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the pending tree.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
