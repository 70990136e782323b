package docplan_test

import (
	"testing"

	"github.com/aiscrape/docplan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPlan() *docplan.Plan {
	return &docplan.Plan{
		FetchStrategy:      docplan.FetchStatic,
		NavigationSelector: "nav.sidebar",
		ContentSelector:    "main#content",
		ExcludeSelectors:   []string{"a.headerlink", "div.edit-this-page"},
		TitleSelector:      "h1",
	}
}

func TestPlan_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts complete plan", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, validPlan().Validate())
	})

	t.Run("accepts plan without exclude selectors", func(t *testing.T) {
		t.Parallel()

		plan := validPlan()
		plan.ExcludeSelectors = nil

		assert.NoError(t, plan.Validate())
	})

	t.Run("rejects empty required selectors", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name   string
			mutate func(*docplan.Plan)
		}{
			{"navigation", func(p *docplan.Plan) { p.NavigationSelector = "" }},
			{"content", func(p *docplan.Plan) { p.ContentSelector = "" }},
			{"title", func(p *docplan.Plan) { p.TitleSelector = "" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				plan := validPlan()
				tt.mutate(plan)

				err := plan.Validate()

				require.Error(t, err)
				assert.Equal(t, docplan.EINVALID, docplan.ErrorCode(err))
			})
		}
	})

	t.Run("rejects blank exclude selector entry", func(t *testing.T) {
		t.Parallel()

		plan := validPlan()
		plan.ExcludeSelectors = []string{"a.headerlink", ""}

		err := plan.Validate()

		require.Error(t, err)
		assert.Equal(t, docplan.EINVALID, docplan.ErrorCode(err))
	})

	t.Run("rejects unknown fetch strategy", func(t *testing.T) {
		t.Parallel()

		plan := validPlan()
		plan.FetchStrategy = "turbo"

		err := plan.Validate()

		require.Error(t, err)
		assert.Equal(t, docplan.EINVALID, docplan.ErrorCode(err))
	})
}

func TestPlan_Clone(t *testing.T) {
	t.Parallel()

	original := validPlan()
	clone := original.Clone()

	clone.ContentSelector = "article"
	clone.ExcludeSelectors[0] = "footer"

	assert.Equal(t, "main#content", original.ContentSelector)
	assert.Equal(t, "a.headerlink", original.ExcludeSelectors[0])
}

func TestProject_PlanRoundTrip(t *testing.T) {
	t.Parallel()

	project := &docplan.Project{Name: "test", SourceURL: "https://example.com"}

	require.NoError(t, project.SetPlan(validPlan()))
	got, err := project.Plan()

	require.NoError(t, err)
	assert.Equal(t, validPlan(), got)
}

func TestProject_Plan_Empty(t *testing.T) {
	t.Parallel()

	project := &docplan.Project{}

	got, err := project.Plan()

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProject_Plan_Corrupt(t *testing.T) {
	t.Parallel()

	project := &docplan.Project{PlanJSON: "{not json"}

	_, err := project.Plan()

	require.Error(t, err)
	assert.Equal(t, docplan.EINTERNAL, docplan.ErrorCode(err))
}
