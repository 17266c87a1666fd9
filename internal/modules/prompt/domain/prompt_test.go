package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "promptatlas/internal/modules/catalog/domain"
	"promptatlas/internal/modules/prompt/domain"
)

func sampleCatalogue() catalog.Catalogue {
	return catalog.Catalogue{Categories: []catalog.Category{
		{ID: "reasoning", Name: "Reasoning", Techniques: []catalog.Technique{
			{ID: "chain-of-thought", Name: "Chain of Thought", Description: "Reason step by step before answering."},
			{ID: "zero-shot-cot", Name: "Zero-Shot CoT", Description: "Append a reasoning trigger."},
			{ID: "self-consistency", Name: "Self-Consistency", Description: "Sample several chains and vote."},
			{ID: "tree-of-thoughts", Name: "Tree of Thoughts", Description: "Explore branches of reasoning."},
			{ID: "least-to-most", Name: "Least-to-Most", Description: "Solve subproblems in order."},
		}},
		{ID: "examples", Name: "Examples", Techniques: []catalog.Technique{
			{ID: "few-shot", Name: "Few-Shot", Description: "Show worked examples."},
			{ID: "few-shot-cot", Name: "Few-Shot CoT", Description: "Examples with reasoning."},
		}},
	}}
}

func TestGeneratePromptOrdersBlocks(t *testing.T) {
	t.Parallel()

	got := domain.GeneratePrompt(domain.Data{Role: "R", Task: "T", Context: "C", Output: "O"}, []string{"chain-of-thought"}, sampleCatalogue())

	role := strings.Index(got.Text, "R")
	technique := strings.Index(got.Text, "Chain of Thought: Reason step by step before answering.")
	task := strings.Index(got.Text, "\n\nT\n\n")
	context := strings.Index(got.Text, "\n\nC\n\n")
	output := strings.LastIndex(got.Text, "\n\nO")

	require.NotEqual(t, -1, technique)
	assert.Equal(t, 0, role)
	assert.Less(t, role, technique)
	assert.Less(t, technique, task)
	assert.Less(t, task, context)
	assert.Less(t, context, output)
	assert.Equal(t, "R\n\nChain of Thought: Reason step by step before answering.\n\nT\n\nC\n\nO", got.Text)
}

func TestGeneratePromptSkipsEmptyAndUnknown(t *testing.T) {
	t.Parallel()

	got := domain.GeneratePrompt(domain.Data{Task: "  Summarize  "}, []string{"missing", "few-shot"}, sampleCatalogue())

	assert.Equal(t, "Few-Shot: Show worked examples.\n\nSummarize", got.Text)
	assert.Equal(t, map[string]string{
		domain.SectionTechniques: "Few-Shot: Show worked examples.",
		domain.SectionTask:       "Summarize",
	}, got.Sections)
	assert.NotContains(t, got.Text, "\n\n\n")
}

func TestGeneratePromptEmptyInput(t *testing.T) {
	t.Parallel()

	got := domain.GeneratePrompt(domain.Data{}, nil, sampleCatalogue())

	assert.Equal(t, "", got.Text)
	assert.Empty(t, got.Sections)
}

func TestGeneratePromptKeepsTechniqueOrder(t *testing.T) {
	t.Parallel()

	got := domain.GeneratePrompt(domain.Data{}, []string{"few-shot", "chain-of-thought"}, sampleCatalogue())

	assert.Less(t, strings.Index(got.Text, "Few-Shot"), strings.Index(got.Text, "Chain of Thought"))
}

func TestFormatTechniqueInstructions(t *testing.T) {
	t.Parallel()

	got := domain.FormatTechniqueInstructions([]string{"chain-of-thought", "nope", "few-shot"}, sampleCatalogue())

	assert.Equal(t, "**Chain of Thought**: Reason step by step before answering.\n\n**Few-Shot**: Show worked examples.", got)
	assert.Equal(t, "", domain.FormatTechniqueInstructions(nil, sampleCatalogue()))
}
