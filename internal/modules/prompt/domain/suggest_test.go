package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	catalog "promptatlas/internal/modules/catalog/domain"
	"promptatlas/internal/modules/prompt/domain"
)

func TestSuggestTechniques(t *testing.T) {
	t.Parallel()

	cat := sampleCatalogue()

	t.Run("step by step is case insensitive", func(t *testing.T) {
		got := domain.SuggestTechniques("Explain it STEP BY STEP", cat, nil)
		assert.Equal(t, []string{"chain-of-thought", "zero-shot-cot"}, got)
	})

	t.Run("examples map to few-shot", func(t *testing.T) {
		got := domain.SuggestTechniques("give an example", cat, nil)
		assert.Equal(t, []string{"few-shot", "few-shot-cot"}, got)
	})

	t.Run("no keyword", func(t *testing.T) {
		got := domain.SuggestTechniques("hello there", cat, nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("blank text", func(t *testing.T) {
		assert.Empty(t, domain.SuggestTechniques("   ", cat, nil))
	})

	t.Run("exclusions are removed", func(t *testing.T) {
		got := domain.SuggestTechniques("step by step", cat, []string{"chain-of-thought"})
		assert.Equal(t, []string{"zero-shot-cot"}, got)
	})

	t.Run("unknown ids are never suggested", func(t *testing.T) {
		got := domain.SuggestTechniques("plan the research", cat, nil)
		assert.Equal(t, []string{"least-to-most"}, got)
	})

	t.Run("capped and deduplicated", func(t *testing.T) {
		got := domain.SuggestTechniques("solve and compare multiple examples step by step", cat, nil)
		assert.LessOrEqual(t, len(got), domain.MaxSuggestions)
		seen := map[string]bool{}
		for _, id := range got {
			assert.False(t, seen[id], "duplicate %s", id)
			seen[id] = true
		}
		assert.Len(t, got, domain.MaxSuggestions)
	})

	t.Run("empty catalogue", func(t *testing.T) {
		assert.Empty(t, domain.SuggestTechniques("solve this step by step", catalog.Catalogue{}, nil))
	})
}
