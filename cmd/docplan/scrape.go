package main

import (
	"fmt"
	"strings"

	"github.com/aiscrape/docplan"
	"github.com/aiscrape/docplan/crawl"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	if c.Force {
		existing, err := deps.Projects.FindProjects(deps.Ctx, docplan.ProjectFilter{Name: &c.Name})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docplan.ErrorMessage(err))
			return err
		}
		if len(existing) > 0 {
			if err := deps.Projects.DeleteProject(deps.Ctx, existing[0].ID); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", docplan.ErrorMessage(err))
				return err
			}
		}
	}

	project := &docplan.Project{
		Name:      c.Name,
		SourceURL: c.URL,
		LocalPath: c.Output,
		Filter:    strings.Join(c.Filter, "\n"),
	}

	if err := deps.Projects.CreateProject(deps.Ctx, project); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docplan.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Created project %q (%s)\n", c.Name, project.ID)

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressPlanned:
			fmt.Fprintf(deps.Stdout, "  Plan generated, %d pages discovered\n", event.Total)
		case crawl.ProgressCorrected:
			fmt.Fprintf(deps.Stdout, "  corrected %s\n", crawl.TruncateURL(event.URL, 60))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", crawl.TruncateURL(event.URL, 60), event.Error)
		}
	}

	summary, err := deps.Runner.Run(deps.Ctx, project, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error scraping: %v\n", err)
		return err
	}

	// Persist the plan the run ended with so validate and docs can show
	// how the project was scraped.
	if summary.Plan != nil {
		if err := storePlan(deps, project.ID, summary.Plan); err != nil {
			fmt.Fprintf(deps.Stderr, "warning: could not store plan: %v\n", err)
		}
	}

	fmt.Fprintf(deps.Stdout, "  Scraped %d/%d pages (%d failed, %d corrections, %s, %s)\n",
		summary.Succeeded, summary.Discovered, summary.Failed, summary.Corrections,
		crawl.FormatBytes(summary.Bytes), crawl.FormatTokens(summary.Tokens))

	return nil
}

func storePlan(deps *Dependencies, projectID string, plan *docplan.Plan) error {
	carrier := &docplan.Project{}
	if err := carrier.SetPlan(plan); err != nil {
		return err
	}
	_, err := deps.Projects.UpdateProject(deps.Ctx, projectID, docplan.ProjectUpdate{
		PlanJSON: &carrier.PlanJSON,
	})
	return err
}
