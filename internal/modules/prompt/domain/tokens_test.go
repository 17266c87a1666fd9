package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"promptatlas/internal/modules/prompt/domain"
)

func TestEstimateTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", "   \n\t", 0},
		{"single char", "a", 1},
		{"exact multiple", "abcdefgh", 2},
		{"rounds up", "abcdefghi", 3},
		{"counts runes", "héllo", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.EstimateTokens(tt.text))
		})
	}
}

func TestEstimateTokensMonotonic(t *testing.T) {
	t.Parallel()

	text := ""
	previous := 0
	for i := 0; i < 50; i++ {
		text += "w"
		got := domain.EstimateTokens(text)
		assert.GreaterOrEqual(t, got, previous)
		previous = got
	}
}

func TestGetPromptStats(t *testing.T) {
	t.Parallel()

	got := domain.GetPromptStats("hello world", 2)

	assert.Equal(t, domain.Stats{CharCount: 11, EstimatedTokens: 3, TechniqueCount: 2}, got)
}
