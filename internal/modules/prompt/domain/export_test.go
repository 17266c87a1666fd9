package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptatlas/internal/modules/prompt/domain"
)

func TestBuildExportRoundTrip(t *testing.T) {
	t.Parallel()

	cat := sampleCatalogue()
	data := domain.Data{Role: "Analyst", Task: "Solve the puzzle"}
	ids := []string{"chain-of-thought", "unknown"}
	generated := domain.GeneratePrompt(data, ids, cat)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	exported := domain.BuildExport(generated, data, ids, cat, "01HZY", at)

	require.NotNil(t, exported.Metadata)
	assert.Equal(t, []domain.TechniqueRef{{ID: "chain-of-thought", Name: "Chain of Thought"}}, exported.Techniques)
	assert.Equal(t, "2026-03-01T12:00:00Z", exported.Metadata.ExportedAt)
	assert.Equal(t, domain.EstimateTokens(generated.Text), exported.Metadata.EstimatedTokens)
	assert.Equal(t, domain.CalculateQuality(data, 1).Score, exported.Metadata.QualityScore)

	raw, err := json.Marshal(exported)
	require.NoError(t, err)

	parsed := domain.ParseExportedPrompt(string(raw))
	require.True(t, parsed.Success, parsed.Error)
	assert.Equal(t, exported, *parsed.Data)
}

func TestParseExportedPromptRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{oops"},
		{"array", "[]"},
		{"null", "null"},
		{"missing prompt", `{"configuration":{},"techniques":[]}`},
		{"prompt not string", `{"prompt":3,"configuration":{},"techniques":[]}`},
		{"prompt null", `{"prompt":null,"configuration":{},"techniques":[]}`},
		{"missing configuration", `{"prompt":"x","techniques":[]}`},
		{"configuration not object", `{"prompt":"x","configuration":"role","techniques":[]}`},
		{"missing techniques", `{"prompt":"x","configuration":{}}`},
		{"techniques not array", `{"prompt":"x","configuration":{},"techniques":{}}`},
		{"technique element invalid", `{"prompt":"x","configuration":{},"techniques":[7]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ParseExportedPrompt(tt.raw)
			assert.False(t, got.Success)
			assert.Nil(t, got.Data)
			assert.NotEmpty(t, got.Error)
		})
	}
}

func TestParseExportedPromptLenient(t *testing.T) {
	t.Parallel()

	raw := `{"prompt":"p","configuration":{"task":"t","extra":true},"techniques":["few-shot",{"id":"react","name":"ReAct"}],"metadata":"ignored"}`

	got := domain.ParseExportedPrompt(raw)

	require.True(t, got.Success, got.Error)
	assert.Equal(t, "p", got.Data.Prompt)
	assert.Equal(t, domain.Data{Task: "t"}, got.Data.Configuration)
	assert.Equal(t, []domain.TechniqueRef{{ID: "few-shot"}, {ID: "react", Name: "ReAct"}}, got.Data.Techniques)
	assert.Nil(t, got.Data.Metadata)
}
