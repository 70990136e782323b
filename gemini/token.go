package gemini

import (
	"context"

	"github.com/aiscrape/docplan"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ docplan.TokenCounter = (*TokenCounter)(nil)

// TokenCounter reports how many model tokens a piece of scraped markdown
// occupies, using the local Gemini tokenizer so no API call is needed.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter builds a counter for the given model's vocabulary.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens returns the token count of text; empty text counts as zero.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, "user")}, nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
