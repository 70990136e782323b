package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/aiscrape/docplan"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docplan.ProjectService = (*ProjectService)(nil)

// ProjectService implements docplan.ProjectService using SQLite.
type ProjectService struct {
	db *DB
}

// NewProjectService creates a new ProjectService.
func NewProjectService(db *DB) *ProjectService {
	return &ProjectService{db: db}
}

const projectColumns = "id, name, source_url, local_path, filter, plan, created_at, updated_at"

// scanProject scans one project row from any source exposing Scan.
func scanProject(scan func(dest ...any) error) (*docplan.Project, error) {
	var project docplan.Project
	var createdAt, updatedAt string

	if err := scan(&project.ID, &project.Name, &project.SourceURL, &project.LocalPath,
		&project.Filter, &project.PlanJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if project.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if project.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &project, nil
}

// CreateProject creates a new project.
func (s *ProjectService) CreateProject(ctx context.Context, project *docplan.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}

	project.ID = uuid.New().String()
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, project.ID, project.Name, project.SourceURL, project.LocalPath, project.Filter,
		project.PlanJSON, project.CreatedAt.Format(time.RFC3339), project.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindProjectByID retrieves a project by ID.
func (s *ProjectService) FindProjectByID(ctx context.Context, id string) (*docplan.Project, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE id = ?", id)

	project, err := scanProject(row.Scan)
	if err == sql.ErrNoRows {
		return nil, docplan.Errorf(docplan.ENOTFOUND, "project not found")
	}
	if err != nil {
		return nil, err
	}

	return project, nil
}

// FindProjects retrieves projects matching the filter, newest first.
func (s *ProjectService) FindProjects(ctx context.Context, filter docplan.ProjectFilter) ([]*docplan.Project, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + projectColumns + " FROM projects WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*docplan.Project
	for rows.Next() {
		project, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// UpdateProject updates an existing project.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, upd docplan.ProjectUpdate) (*docplan.Project, error) {
	project, err := s.FindProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		project.Name = *upd.Name
	}
	if upd.SourceURL != nil {
		project.SourceURL = *upd.SourceURL
	}
	if upd.LocalPath != nil {
		project.LocalPath = *upd.LocalPath
	}
	if upd.PlanJSON != nil {
		project.PlanJSON = *upd.PlanJSON
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	project.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE projects
		SET name = ?, source_url = ?, local_path = ?, plan = ?, updated_at = ?
		WHERE id = ?
	`, project.Name, project.SourceURL, project.LocalPath, project.PlanJSON,
		project.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return project, nil
}

// DeleteProject permanently removes a project. Documents cascade via the
// foreign key.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return docplan.Errorf(docplan.ENOTFOUND, "project not found")
	}

	return nil
}
