package main

import (
	"fmt"
	"strings"

	"github.com/aiscrape/docplan"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
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
		fmt.Fprintf(deps.Stderr, "error: project %q has no documents. Re-run 'docplan scrape %s <url> --force'.\n", c.Name, c.Name)
		return docplan.Errorf(docplan.ENOTFOUND, "project %q has no documents", c.Name)
	}

	if c.Full {
		fmt.Fprintln(deps.Stdout, docplan.FormatDocuments(docs))
		return nil
	}

	if c.TOC {
		for _, doc := range docs {
			fmt.Fprintf(deps.Stdout, "%s\n", doc.SourceURL)
			for _, section := range docplan.Outline(doc.Content) {
				fmt.Fprintf(deps.Stdout, "  %s%s\n", strings.Repeat("  ", section.Level-1), section.Title)
			}
		}
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Documents for %s (%d total):\n\n", c.Name, len(docs))
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.SourceURL
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s\n", i+1, title, doc.SourceURL)
	}

	return nil
}
