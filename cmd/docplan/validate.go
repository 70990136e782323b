package main

import (
	"fmt"

	"github.com/aiscrape/docplan"
	"github.com/aiscrape/docplan/crawl"
)

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
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

	report, err := deps.Validator.ValidateSample(deps.Ctx, project.ID, c.Sample)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error validating: %s\n", docplan.ErrorMessage(err))
		return err
	}

	for _, verdict := range report.Verdicts {
		switch {
		case verdict.Inconclusive:
			fmt.Fprintf(deps.Stdout, "  ?  %s (could not render)\n", crawl.TruncateURL(verdict.SampledURL, 70))
		case verdict.Judgement.Match:
			fmt.Fprintf(deps.Stdout, "  ok %s (%.2f)\n", crawl.TruncateURL(verdict.SampledURL, 70), verdict.Judgement.Confidence)
		default:
			fmt.Fprintf(deps.Stdout, "  !! %s (%.2f): %s\n",
				crawl.TruncateURL(verdict.SampledURL, 70), verdict.Judgement.Confidence, verdict.Judgement.Reason)
		}
	}

	fmt.Fprintf(deps.Stdout, "Agreement: %d/%d (%.0f%%)\n",
		report.Passed, report.Checked, report.AgreementRate()*100)

	return nil
}
