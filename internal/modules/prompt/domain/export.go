package domain

import (
	"encoding/json"
	"fmt"
	"time"

	catalog "promptatlas/internal/modules/catalog/domain"
)

const ExportFormatVersion = "1.0"

type TechniqueRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ExportMetadata struct {
	ID              string `json:"id,omitempty"`
	ExportedAt      string `json:"exportedAt,omitempty"`
	Version         string `json:"version,omitempty"`
	EstimatedTokens int    `json:"estimatedTokens"`
	QualityScore    int    `json:"qualityScore"`
}

// Exported is the on-disk prompt export format.
type Exported struct {
	Prompt        string          `json:"prompt"`
	Configuration Data            `json:"configuration"`
	Techniques    []TechniqueRef  `json:"techniques"`
	Metadata      *ExportMetadata `json:"metadata,omitempty"`
}

// BuildExport assembles the export document for a generated prompt. Only
// techniques that resolve in the catalogue are listed.
func BuildExport(generated Generated, data Data, techniqueIDs []string, cat catalog.Catalogue, exportID string, at time.Time) Exported {
	resolved := ResolveTechniques(techniqueIDs, cat)
	refs := make([]TechniqueRef, 0, len(resolved))
	for _, tech := range resolved {
		refs = append(refs, TechniqueRef{ID: tech.ID, Name: tech.Name})
	}
	return Exported{
		Prompt:        generated.Text,
		Configuration: data,
		Techniques:    refs,
		Metadata: &ExportMetadata{
			ID:              exportID,
			ExportedAt:      at.UTC().Format(time.RFC3339),
			Version:         ExportFormatVersion,
			EstimatedTokens: EstimateTokens(generated.Text),
			QualityScore:    CalculateQuality(data, len(refs)).Score,
		},
	}
}

type ParseResult struct {
	Success bool      `json:"success"`
	Data    *Exported `json:"data,omitempty"`
	Error   string    `json:"error,omitempty"`
}

func parseFailure(format string, args ...any) ParseResult {
	return ParseResult{Error: fmt.Sprintf(format, args...)}
}

// ParseExportedPrompt validates and decodes an export document. Failures are
// reported in the result, never as an error or panic.
func ParseExportedPrompt(raw string) ParseResult {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return parseFailure("%s", err.Error())
	}
	if fields == nil {
		return parseFailure("export must be a JSON object")
	}

	out := Exported{}
	promptRaw, ok := fields["prompt"]
	if !ok {
		return parseFailure("missing required field: prompt")
	}
	if err := json.Unmarshal(promptRaw, &out.Prompt); err != nil || isNull(promptRaw) {
		return parseFailure("field prompt must be a string")
	}

	configRaw, ok := fields["configuration"]
	if !ok {
		return parseFailure("missing required field: configuration")
	}
	var configObject map[string]json.RawMessage
	if err := json.Unmarshal(configRaw, &configObject); err != nil || configObject == nil {
		return parseFailure("field configuration must be an object")
	}
	if err := json.Unmarshal(configRaw, &out.Configuration); err != nil {
		return parseFailure("field configuration: %s", err.Error())
	}

	techniquesRaw, ok := fields["techniques"]
	if !ok {
		return parseFailure("missing required field: techniques")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(techniquesRaw, &items); err != nil || items == nil {
		return parseFailure("field techniques must be an array")
	}
	out.Techniques = make([]TechniqueRef, 0, len(items))
	for i, item := range items {
		ref, err := decodeTechniqueRef(item)
		if err != nil {
			return parseFailure("techniques[%d]: %s", i, err.Error())
		}
		out.Techniques = append(out.Techniques, ref)
	}

	if metaRaw, ok := fields["metadata"]; ok && !isNull(metaRaw) {
		meta := ExportMetadata{}
		if err := json.Unmarshal(metaRaw, &meta); err == nil {
			out.Metadata = &meta
		}
	}
	return ParseResult{Success: true, Data: &out}
}

// decodeTechniqueRef accepts {id,name} objects and bare ID strings.
func decodeTechniqueRef(raw json.RawMessage) (TechniqueRef, error) {
	var id string
	if err := json.Unmarshal(raw, &id); err == nil && !isNull(raw) {
		return TechniqueRef{ID: id}, nil
	}
	var ref TechniqueRef
	if err := json.Unmarshal(raw, &ref); err != nil || isNull(raw) {
		return TechniqueRef{}, fmt.Errorf("must be an object with id and name")
	}
	return ref, nil
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
