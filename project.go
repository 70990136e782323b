package docplan

import (
	"context"
	"encoding/json"
	"time"
)

// Project represents a documentation source scraped into local artifacts.
type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SourceURL string `json:"sourceUrl"`
	LocalPath string `json:"localPath"`

	// Filter holds newline-joined include regexes restricting discovered URLs.
	Filter string `json:"filter"`

	// PlanJSON is the serialized extraction plan the last successful run
	// used. Stored for inspection and so later validation runs can show
	// how the project was scraped.
	PlanJSON string `json:"plan"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the project contains invalid fields.
func (p *Project) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "project name required")
	}
	if p.SourceURL == "" {
		return Errorf(EINVALID, "project source URL required")
	}
	return nil
}

// Plan deserializes the stored plan. Returns nil if no plan is stored.
func (p *Project) Plan() (*Plan, error) {
	if p.PlanJSON == "" {
		return nil, nil
	}
	var plan Plan
	if err := json.Unmarshal([]byte(p.PlanJSON), &plan); err != nil {
		return nil, Errorf(EINTERNAL, "stored plan is corrupt: %v", err)
	}
	return &plan, nil
}

// SetPlan serializes and stores the plan on the project.
func (p *Project) SetPlan(plan *Plan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return Errorf(EINTERNAL, "serializing plan: %v", err)
	}
	p.PlanJSON = string(data)
	return nil
}

// ProjectService represents a service for managing projects.
type ProjectService interface {
	// CreateProject creates a new project.
	CreateProject(ctx context.Context, project *Project) error

	// FindProjectByID retrieves a project by ID.
	// Returns ENOTFOUND if project does not exist.
	FindProjectByID(ctx context.Context, id string) (*Project, error)

	// FindProjects retrieves projects matching the filter.
	FindProjects(ctx context.Context, filter ProjectFilter) ([]*Project, error)

	// UpdateProject updates an existing project.
	// Returns ENOTFOUND if project does not exist.
	UpdateProject(ctx context.Context, id string, upd ProjectUpdate) (*Project, error)

	// DeleteProject permanently removes a project and all associated documents.
	// Returns ENOTFOUND if project does not exist.
	DeleteProject(ctx context.Context, id string) error
}

// ProjectFilter represents a filter for FindProjects.
type ProjectFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ProjectUpdate represents fields that can be updated on a project.
type ProjectUpdate struct {
	Name      *string `json:"name"`
	SourceURL *string `json:"sourceUrl"`
	LocalPath *string `json:"localPath"`
	PlanJSON  *string `json:"plan"`
}
