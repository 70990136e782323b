package main

import (
	"fmt"

	"github.com/aiscrape/docplan"
	"github.com/aiscrape/docplan/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	projects, err := deps.Projects.FindProjects(deps.Ctx, docplan.ProjectFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docplan.ErrorMessage(err))
		return err
	}

	if len(projects) == 0 {
		fmt.Fprintf(deps.Stderr, "error: project %q not found. Use 'docplan list' to see available projects.\n", c.Name)
		return docplan.Errorf(docplan.ENOTFOUND, "project %q not found", c.Name)
	}

	project := projects[0]

	docs, err := deps.Documents.FindDocuments(deps.Ctx, docplan.DocumentFilter{
		ProjectID: &project.ID,
		SortBy:    docplan.SortByPosition,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docplan.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: project %q has no documents to export.\n", c.Name)
		return docplan.Errorf(docplan.ENOTFOUND, "project %q has no documents", c.Name)
	}

	writer := fs.NewWriter(c.Dir)
	for _, doc := range docs {
		if err := writer.CreateDocument(deps.Ctx, doc); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing %s: %s\n", doc.SourceURL, docplan.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "  %s\n", doc.FilePath)
	}

	fmt.Fprintf(deps.Stdout, "Exported %d documents to %s\n", len(docs), c.Dir)
	return nil
}
