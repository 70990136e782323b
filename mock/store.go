package mock

import (
	"context"

	"github.com/aiscrape/docplan"
)

var _ docplan.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of docplan.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *docplan.Page) (string, error)
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *docplan.Page) (string, error) {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	if s.CommitFn == nil {
		return nil
	}
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	if s.AbortFn == nil {
		return nil
	}
	return s.AbortFn()
}

var _ docplan.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of docplan.DocumentService.
type DocumentService struct {
	CreateDocumentFn           func(ctx context.Context, doc *docplan.Document) error
	FindDocumentByIDFn         func(ctx context.Context, id string) (*docplan.Document, error)
	FindDocumentsFn            func(ctx context.Context, filter docplan.DocumentFilter) ([]*docplan.Document, error)
	DeleteDocumentFn           func(ctx context.Context, id string) error
	DeleteDocumentsByProjectFn func(ctx context.Context, projectID string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *docplan.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*docplan.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter docplan.DocumentFilter) ([]*docplan.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}

func (s *DocumentService) DeleteDocumentsByProject(ctx context.Context, projectID string) error {
	return s.DeleteDocumentsByProjectFn(ctx, projectID)
}

var _ docplan.ProjectService = (*ProjectService)(nil)

// ProjectService is a mock implementation of docplan.ProjectService.
type ProjectService struct {
	CreateProjectFn   func(ctx context.Context, project *docplan.Project) error
	FindProjectByIDFn func(ctx context.Context, id string) (*docplan.Project, error)
	FindProjectsFn    func(ctx context.Context, filter docplan.ProjectFilter) ([]*docplan.Project, error)
	UpdateProjectFn   func(ctx context.Context, id string, upd docplan.ProjectUpdate) (*docplan.Project, error)
	DeleteProjectFn   func(ctx context.Context, id string) error
}

func (s *ProjectService) CreateProject(ctx context.Context, project *docplan.Project) error {
	return s.CreateProjectFn(ctx, project)
}

func (s *ProjectService) FindProjectByID(ctx context.Context, id string) (*docplan.Project, error) {
	return s.FindProjectByIDFn(ctx, id)
}

func (s *ProjectService) FindProjects(ctx context.Context, filter docplan.ProjectFilter) ([]*docplan.Project, error) {
	return s.FindProjectsFn(ctx, filter)
}

func (s *ProjectService) UpdateProject(ctx context.Context, id string, upd docplan.ProjectUpdate) (*docplan.Project, error) {
	return s.UpdateProjectFn(ctx, id, upd)
}

func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	return s.DeleteProjectFn(ctx, id)
}
