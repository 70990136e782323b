package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aiscrape/docplan"
	"google.golang.org/genai"
)

// judgeSnippetLimit caps each document side of the comparison prompt.
const judgeSnippetLimit = 4000

// Ensure Judge implements docplan.Judge at compile time.
var _ docplan.Judge = (*Judge)(nil)

// Judge implements docplan.Judge using Google Gemini.
type Judge struct {
	client *genai.Client
}

// NewJudge creates a new Judge.
func NewJudge(client *genai.Client) *Judge {
	return &Judge{client: client}
}

// JudgeEquivalence asks the model whether local and live markdown agree in
// meaning.
func (j *Judge) JudgeEquivalence(ctx context.Context, local, live string) (*docplan.Judgement, error) {
	if strings.TrimSpace(local) == "" || strings.TrimSpace(live) == "" {
		return nil, docplan.Errorf(docplan.EINVALID, "both documents required for comparison")
	}

	result, err := j.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildJudgePrompt(local, live)}},
		}},
		BuildJudgeConfig(),
	)
	if err != nil {
		return nil, docplan.Errorf(docplan.EUNAVAILABLE, "verdict inference failed: %v", err)
	}
	if result == nil {
		return nil, docplan.Errorf(docplan.EUNAVAILABLE, "gemini returned nil result")
	}

	return ParseJudgement(result.Text())
}

// BuildJudgeConfig returns the GenerateContentConfig for verdict calls.
func BuildJudgeConfig() *genai.GenerateContentConfig {
	temp := float32(0.0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a meticulous documentation QA engineer. You compare documents semantically, ignoring formatting differences, and reply with a single JSON object and nothing else.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildJudgePrompt builds the comparison prompt. Document A is the locally
// persisted version, document B the freshly scraped one.
func BuildJudgePrompt(local, live string) string {
	var sb strings.Builder
	sb.WriteString("Compare the two markdown documents below semantically. Judge whether the core topic, key information (code blocks, commands, important concepts) and completeness agree, ignoring minor formatting, whitespace and line-break differences.\n\n")
	sb.WriteString("[Document A: local file]\n```markdown\n")
	sb.WriteString(truncate(local, judgeSnippetLimit))
	sb.WriteString("\n```\n\n[Document B: live site]\n```markdown\n")
	sb.WriteString(truncate(live, judgeSnippetLimit))
	sb.WriteString("\n```\n\n")
	sb.WriteString(`Reply with exactly one JSON object: {"is_match": bool, "confidence": float between 0.0 and 1.0, "reason": string}`)
	return sb.String()
}

// ParseJudgement extracts a judgement from a model reply.
func ParseJudgement(text string) (*docplan.Judgement, error) {
	block := jsonBlockRe.FindString(text)
	if block == "" {
		return nil, docplan.Errorf(docplan.EPLANNING, "no JSON object in verdict reply")
	}

	var judgement docplan.Judgement
	if err := json.Unmarshal([]byte(block), &judgement); err != nil {
		return nil, docplan.Errorf(docplan.EPLANNING, "malformed verdict JSON: %v", err)
	}

	return &judgement, nil
}
