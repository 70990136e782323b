package docplan

import "context"

// Judgement is the model's semantic-equivalence assessment of two documents.
type Judgement struct {
	Match      bool    `json:"is_match"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// Verdict is the outcome of validating one sampled document against a
// fresh render of its source page.
type Verdict struct {
	SampledURL string
	DocumentID string
	Judgement  Judgement

	// Inconclusive marks samples whose live content could not be obtained
	// (render failed, URL no longer resolvable). Inconclusive verdicts do
	// not count as passes but do not abort the batch.
	Inconclusive bool
}

// Judge compares persisted content against freshly extracted live content
// and reports whether they agree in meaning, not in bytes.
type Judge interface {
	// JudgeEquivalence returns the model's verdict on whether local and
	// live markdown describe the same content.
	// Returns EUNAVAILABLE if the inference backend cannot be reached.
	JudgeEquivalence(ctx context.Context, local, live string) (*Judgement, error)
}
