package gemini_test

import (
	"context"
	"testing"

	"github.com/aiscrape/docplan"
	"github.com/aiscrape/docplan/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJudgement(t *testing.T) {
	t.Parallel()

	t.Run("parses verdict JSON", func(t *testing.T) {
		t.Parallel()

		reply := `{"is_match": true, "confidence": 0.95, "reason": "same content"}`

		judgement, err := gemini.ParseJudgement(reply)

		require.NoError(t, err)
		assert.True(t, judgement.Match)
		assert.InDelta(t, 0.95, judgement.Confidence, 0.001)
		assert.Equal(t, "same content", judgement.Reason)
	})

	t.Run("parses verdict wrapped in fences", func(t *testing.T) {
		t.Parallel()

		reply := "```json\n{\"is_match\": false, \"confidence\": 0.4, \"reason\": \"missing sections\"}\n```"

		judgement, err := gemini.ParseJudgement(reply)

		require.NoError(t, err)
		assert.False(t, judgement.Match)
	})

	t.Run("rejects reply without JSON", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseJudgement("they look the same to me")

		require.Error(t, err)
		assert.Equal(t, docplan.EPLANNING, docplan.ErrorCode(err))
	})
}

func TestBuildJudgePrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildJudgePrompt("local markdown body", "live markdown body")

	assert.Contains(t, prompt, "local markdown body")
	assert.Contains(t, prompt, "live markdown body")
	assert.Contains(t, prompt, "is_match")
}

func TestJudge_JudgeEquivalence_EmptyInput(t *testing.T) {
	t.Parallel()

	judge := gemini.NewJudge(nil) // nil client ok, fails before use

	_, err := judge.JudgeEquivalence(context.Background(), "", "live")

	require.Error(t, err)
	assert.Equal(t, docplan.EINVALID, docplan.ErrorCode(err))
}
