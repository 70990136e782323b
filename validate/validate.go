// Package validate checks persisted scrape output against the live site.
// It samples stored documents, re-renders their source pages, extracts the
// live content with a plan-free baseline and asks the model whether the
// two sides still describe the same thing.
package validate

import (
	"context"
	"math/rand"

	"github.com/aiscrape/docplan"
)

// Validator runs sampling validation for a project. The baseline extractor
// keeps verdicts independent of the plan that produced the documents: a
// stale plan should show up as disagreement, not as a validator failure.
type Validator struct {
	Renderer  docplan.Renderer
	Baseline  docplan.BaselineExtractor
	Converter docplan.Converter
	Judge     docplan.Judge
	Documents docplan.DocumentService

	// Rand drives sample selection; tests inject a seeded source.
	Rand *rand.Rand
}

// Report aggregates the verdicts of one validation run.
type Report struct {
	Verdicts []docplan.Verdict

	// Checked counts samples that produced a conclusive judgement.
	Checked int

	// Passed counts conclusive samples the model judged equivalent.
	Passed int
}

// AgreementRate returns the fraction of conclusive samples that passed,
// or zero when nothing conclusive was checked.
func (r *Report) AgreementRate() float64 {
	if r.Checked == 0 {
		return 0
	}
	return float64(r.Passed) / float64(r.Checked)
}

// ValidateSample samples up to sampleSize distinct documents of the
// project and judges each against a fresh render of its source URL.
//
// A sample whose page cannot be rendered or extracted yields an
// inconclusive verdict and the run continues; an EUNAVAILABLE judge error
// aborts the whole invocation since every remaining sample would hit the
// same wall.
func (v *Validator) ValidateSample(ctx context.Context, projectID string, sampleSize int) (*Report, error) {
	if sampleSize <= 0 {
		return nil, docplan.Errorf(docplan.EINVALID, "sample size must be positive")
	}

	docs, err := v.Documents.FindDocuments(ctx, docplan.DocumentFilter{
		ProjectID: &projectID,
		SortBy:    docplan.SortByPosition,
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, docplan.Errorf(docplan.ENOTFOUND, "project has no documents to validate")
	}

	report := &Report{}
	for _, doc := range v.sample(docs, sampleSize) {
		verdict, err := v.validateOne(ctx, doc)
		if err != nil {
			return nil, err
		}

		report.Verdicts = append(report.Verdicts, *verdict)
		if verdict.Inconclusive {
			continue
		}
		report.Checked++
		if verdict.Judgement.Match {
			report.Passed++
		}
	}

	return report, nil
}

// sample picks min(sampleSize, len(docs)) distinct documents uniformly,
// preserving document order in the result.
func (v *Validator) sample(docs []*docplan.Document, sampleSize int) []*docplan.Document {
	if sampleSize >= len(docs) {
		return docs
	}

	picked := make([]*docplan.Document, 0, sampleSize)
	for _, idx := range v.perm(len(docs))[:sampleSize] {
		picked = append(picked, docs[idx])
	}
	return picked
}

func (v *Validator) perm(n int) []int {
	if v.Rand != nil {
		return v.Rand.Perm(n)
	}
	return rand.Perm(n)
}

// validateOne judges a single sampled document. Render and extraction
// failures, and a judge reply that cannot be parsed, degrade to an
// inconclusive verdict; only an unreachable judge backend propagates.
func (v *Validator) validateOne(ctx context.Context, doc *docplan.Document) (*docplan.Verdict, error) {
	verdict := &docplan.Verdict{
		SampledURL: doc.SourceURL,
		DocumentID: doc.ID,
	}

	html, err := v.Renderer.Render(ctx, doc.SourceURL)
	if err != nil {
		verdict.Inconclusive = true
		return verdict, nil
	}

	extraction, err := v.Baseline.Extract(html)
	if err != nil {
		verdict.Inconclusive = true
		return verdict, nil
	}

	live, err := v.Converter.Convert(extraction.ContentHTML)
	if err != nil {
		verdict.Inconclusive = true
		return verdict, nil
	}

	judgement, err := v.Judge.JudgeEquivalence(ctx, doc.Content, live)
	if err != nil {
		if docplan.ErrorCode(err) == docplan.EUNAVAILABLE {
			return nil, err
		}
		verdict.Inconclusive = true
		return verdict, nil
	}

	verdict.Judgement = *judgement
	return verdict, nil
}
