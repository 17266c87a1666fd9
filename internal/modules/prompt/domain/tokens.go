package domain

import (
	"strings"
	"unicode/utf8"
)

// charsPerToken is a rough heuristic, not a tokenizer. Displayed estimates
// depend on this exact ratio.
const charsPerToken = 4

type Stats struct {
	CharCount       int `json:"charCount"`
	EstimatedTokens int `json:"estimatedTokens"`
	TechniqueCount  int `json:"techniqueCount"`
}

// EstimateTokens returns ceil(chars/4), or 0 for blank text.
func EstimateTokens(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	n := utf8.RuneCountInString(text)
	return (n + charsPerToken - 1) / charsPerToken
}

func GetPromptStats(text string, techniqueCount int) Stats {
	return Stats{
		CharCount:       utf8.RuneCountInString(text),
		EstimatedTokens: EstimateTokens(text),
		TechniqueCount:  techniqueCount,
	}
}
