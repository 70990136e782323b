package docplan

import (
	"context"
	"time"
)

// Document is one scraped page: the markdown produced by applying a
// project's plan to a rendered page.
type Document struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`

	// FilePath is the relative path of the markdown artifact when one
	// was written; empty for database-only runs.
	FilePath string `json:"filePath"`

	SourceURL string `json:"sourceUrl"`
	Title     string `json:"title"`
	Content   string `json:"content"`

	// ContentHash identifies the content for change detection; assigned
	// on creation.
	ContentHash string `json:"contentHash"`

	// Position is the page's index in discovery order.
	Position int `json:"position"`

	FetchedAt time.Time `json:"fetchedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ProjectID == "" {
		return Errorf(EINVALID, "document project ID required")
	}
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	return nil
}

// DocumentWriter writes a document somewhere outside the primary store,
// e.g. as a markdown file on disk.
type DocumentWriter interface {
	CreateDocument(ctx context.Context, doc *Document) error
}

// DocumentService manages persisted documents.
type DocumentService interface {
	// CreateDocument persists a new document and assigns its identity
	// fields (ID, ContentHash, FetchedAt).
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error

	// DeleteDocumentsByProject removes all documents for a project.
	DeleteDocumentsByProject(ctx context.Context, projectID string) error
}

// SortOrder selects the ordering of FindDocuments results.
type SortOrder string

const (
	// SortByFetchedAt orders newest first.
	SortByFetchedAt SortOrder = "fetched_at"

	// SortByPosition orders by discovery position, reproducing the
	// site's navigation order.
	SortByPosition SortOrder = "position"
)

// DocumentFilter narrows FindDocuments results.
type DocumentFilter struct {
	ID        *string `json:"id"`
	ProjectID *string `json:"projectId"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}
