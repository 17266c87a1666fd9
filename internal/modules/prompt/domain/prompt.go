// Package domain composes prompts from user fields and catalogue techniques
// and scores how complete a prompt configuration is. It performs no I/O.
package domain

import (
	"strings"

	catalog "promptatlas/internal/modules/catalog/domain"
)

const (
	SectionRole       = "role"
	SectionTechniques = "techniques"
	SectionTask       = "task"
	SectionContext    = "context"
	SectionOutput     = "output"
)

const blockSeparator = "\n\n"

// Data holds the free-text prompt fields. Every field may be empty.
type Data struct {
	Role    string `json:"role" yaml:"role"`
	Task    string `json:"task" yaml:"task"`
	Context string `json:"context" yaml:"context"`
	Output  string `json:"output" yaml:"output"`
}

type Generated struct {
	Text     string            `json:"text"`
	Sections map[string]string `json:"sections"`
}

// ResolveTechniques looks up ids in order and skips the unknown ones.
func ResolveTechniques(ids []string, cat catalog.Catalogue) []catalog.Technique {
	out := make([]catalog.Technique, 0, len(ids))
	for _, id := range ids {
		if entry, ok := cat.FindTechnique(id); ok {
			out = append(out, entry.Technique)
		}
	}
	return out
}

// GeneratePrompt joins the non-empty blocks in the fixed order role,
// techniques, task, context, output.
func GeneratePrompt(data Data, techniqueIDs []string, cat catalog.Catalogue) Generated {
	lines := []string{}
	for _, tech := range ResolveTechniques(techniqueIDs, cat) {
		lines = append(lines, tech.Name+": "+tech.Description)
	}

	blocks := []struct {
		key     string
		content string
	}{
		{SectionRole, strings.TrimSpace(data.Role)},
		{SectionTechniques, strings.Join(lines, blockSeparator)},
		{SectionTask, strings.TrimSpace(data.Task)},
		{SectionContext, strings.TrimSpace(data.Context)},
		{SectionOutput, strings.TrimSpace(data.Output)},
	}

	out := Generated{Sections: map[string]string{}}
	parts := []string{}
	for _, block := range blocks {
		if block.content == "" {
			continue
		}
		out.Sections[block.key] = block.content
		parts = append(parts, block.content)
	}
	out.Text = strings.Join(parts, blockSeparator)
	return out
}

// FormatTechniqueInstructions renders resolved techniques as markdown
// "**name**: description" paragraphs.
func FormatTechniqueInstructions(ids []string, cat catalog.Catalogue) string {
	parts := []string{}
	for _, tech := range ResolveTechniques(ids, cat) {
		parts = append(parts, "**"+tech.Name+"**: "+tech.Description)
	}
	return strings.Join(parts, blockSeparator)
}
