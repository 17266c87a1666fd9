package service

import (
	"context"
	"fmt"
	"strings"

	catalog "promptatlas/internal/modules/catalog/domain"
	"promptatlas/internal/modules/prompt/domain"
	promptout "promptatlas/internal/modules/prompt/port/out"
	"promptatlas/internal/platform/clock"
	apperrors "promptatlas/internal/platform/errors"
	"promptatlas/internal/platform/id"
)

type PromptService struct {
	clock     clock.Clock
	idGen     id.Generator
	source    promptout.CatalogueSource
	exports   promptout.ExportStore
	templates promptout.TemplateStore
}

func NewPromptService(clock clock.Clock, idGen id.Generator, source promptout.CatalogueSource, exports promptout.ExportStore, templates promptout.TemplateStore) *PromptService {
	return &PromptService{clock: clock, idGen: idGen, source: source, exports: exports, templates: templates}
}

// Composition is everything derived from one prompt configuration.
type Composition struct {
	Generated    domain.Generated
	Instructions string
	TechniqueIDs []string
	Quality      domain.Quality
	Stats        domain.Stats
	Validation   domain.ValidationResult
	Export       *domain.Exported
	ExportPath   string
}

func (s *PromptService) Compose(ctx context.Context, data domain.Data, techniqueIDs []string, export bool) (Composition, error) {
	cat, err := s.source.Load(ctx)
	if err != nil {
		return Composition{}, err
	}
	resolved := resolvedIDs(techniqueIDs, cat)
	generated := domain.GeneratePrompt(data, resolved, cat)
	out := Composition{
		Generated:    generated,
		Instructions: domain.FormatTechniqueInstructions(resolved, cat),
		TechniqueIDs: resolved,
		Quality:      domain.CalculateQuality(data, len(resolved)),
		Stats:        domain.GetPromptStats(generated.Text, len(resolved)),
		Validation:   domain.ValidatePromptData(data),
	}
	if !export {
		return out, nil
	}
	if !data.HasContent() {
		return Composition{}, fmt.Errorf("%w: nothing to export, every prompt field is empty", apperrors.ErrInvalidInput)
	}
	now := s.clock.Now()
	exported := domain.BuildExport(generated, data, resolved, cat, s.idGen.New(now), now)
	path, err := s.exports.Save(ctx, exported)
	if err != nil {
		return Composition{}, err
	}
	out.Export = &exported
	out.ExportPath = path
	return out, nil
}

// Suggest returns catalogue entries for the techniques matching text.
func (s *PromptService) Suggest(ctx context.Context, text string, exclude []string) ([]catalog.Entry, error) {
	cat, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	ids := domain.SuggestTechniques(text, cat, exclude)
	index := cat.Index()
	out := make([]catalog.Entry, 0, len(ids))
	for _, techniqueID := range ids {
		out = append(out, index[techniqueID])
	}
	return out, nil
}

// Templates merges the workspace templates over the built-in defaults.
func (s *PromptService) Templates(ctx context.Context) ([]domain.Template, error) {
	custom, err := s.templates.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.MergeTemplates(domain.DefaultTemplates(), custom), nil
}

func (s *PromptService) Template(ctx context.Context, templateID string) (domain.Template, error) {
	templates, err := s.Templates(ctx)
	if err != nil {
		return domain.Template{}, err
	}
	tmpl, ok := domain.FindTemplate(templates, strings.TrimSpace(templateID))
	if !ok {
		return domain.Template{}, fmt.Errorf("template %q: %w", templateID, apperrors.ErrNotFound)
	}
	return tmpl, nil
}

// Import parses an export file and reports technique IDs the current
// catalogue no longer knows.
func (s *PromptService) Import(ctx context.Context, path string) (domain.Exported, []string, error) {
	if strings.TrimSpace(path) == "" {
		return domain.Exported{}, nil, fmt.Errorf("%w: export path is required", apperrors.ErrInvalidInput)
	}
	raw, err := s.exports.Read(ctx, path)
	if err != nil {
		return domain.Exported{}, nil, err
	}
	result := domain.ParseExportedPrompt(raw)
	if !result.Success {
		return domain.Exported{}, nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, result.Error)
	}
	cat, err := s.source.Load(ctx)
	if err != nil {
		return domain.Exported{}, nil, err
	}
	index := cat.Index()
	missing := []string{}
	for _, ref := range result.Data.Techniques {
		if _, ok := index[ref.ID]; !ok {
			missing = append(missing, ref.ID)
		}
	}
	return *result.Data, missing, nil
}

// resolvedIDs keeps the known IDs once each, in selection order.
func resolvedIDs(ids []string, cat catalog.Catalogue) []string {
	out := make([]string, 0, len(ids))
	seen := map[string]struct{}{}
	for _, tech := range domain.ResolveTechniques(ids, cat) {
		if _, dup := seen[tech.ID]; dup {
			continue
		}
		seen[tech.ID] = struct{}{}
		out = append(out, tech.ID)
	}
	return out
}
