package usecase

import (
	"context"
	"log/slog"

	"promptatlas/internal/modules/prompt/domain"
	"promptatlas/internal/modules/prompt/dto"
	promptin "promptatlas/internal/modules/prompt/port/in"
	"promptatlas/internal/modules/prompt/service"
)

type Interactor struct {
	svc    *service.PromptService
	logger *slog.Logger
}

func NewInteractor(svc *service.PromptService, logger *slog.Logger) promptin.Usecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interactor{svc: svc, logger: logger}
}

func (i *Interactor) Generate(ctx context.Context, input dto.GenerateInput) (dto.GenerateOutput, error) {
	composition, err := i.svc.Compose(ctx, toData(input.PromptInput), input.TechniqueIDs, input.Export)
	if err != nil {
		return dto.GenerateOutput{}, err
	}
	out := dto.GenerateOutput{
		Prompt:       composition.Generated.Text,
		Sections:     composition.Generated.Sections,
		Instructions: composition.Instructions,
		TechniqueIDs: composition.TechniqueIDs,
		Quality:      mapQuality(composition.Quality),
		Stats: dto.StatsOutput{
			CharCount:       composition.Stats.CharCount,
			EstimatedTokens: composition.Stats.EstimatedTokens,
			TechniqueCount:  composition.Stats.TechniqueCount,
		},
		Validation: mapValidation(composition.Validation),
	}
	if dropped := len(input.TechniqueIDs) - len(composition.TechniqueIDs); dropped > 0 {
		i.logger.Debug("ignored unknown or repeated techniques", "count", dropped)
	}
	if composition.Export != nil {
		out.ExportID = composition.Export.Metadata.ID
		out.ExportPath = composition.ExportPath
		i.logger.Info("prompt exported", "id", out.ExportID, "path", out.ExportPath)
	}
	return out, nil
}

func (i *Interactor) Suggest(ctx context.Context, input dto.SuggestInput) ([]dto.SuggestionOutput, error) {
	entries, err := i.svc.Suggest(ctx, input.Text, input.Exclude)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SuggestionOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.SuggestionOutput{ID: entry.Technique.ID, Name: entry.Technique.Name})
	}
	return out, nil
}

func (i *Interactor) Validate(_ context.Context, input dto.PromptInput) (dto.ValidationOutput, error) {
	return mapValidation(domain.ValidatePromptData(toData(input))), nil
}

func (i *Interactor) Templates(ctx context.Context) ([]dto.TemplateOutput, error) {
	templates, err := i.svc.Templates(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TemplateOutput, 0, len(templates))
	for _, tmpl := range templates {
		out = append(out, mapTemplate(tmpl))
	}
	return out, nil
}

func (i *Interactor) Template(ctx context.Context, id string) (dto.TemplateOutput, error) {
	tmpl, err := i.svc.Template(ctx, id)
	if err != nil {
		return dto.TemplateOutput{}, err
	}
	return mapTemplate(tmpl), nil
}

func (i *Interactor) Import(ctx context.Context, path string) (dto.ImportOutput, error) {
	exported, missing, err := i.svc.Import(ctx, path)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	ids := make([]string, 0, len(exported.Techniques))
	for _, ref := range exported.Techniques {
		ids = append(ids, ref.ID)
	}
	out := dto.ImportOutput{
		Prompt:       exported.Prompt,
		Role:         exported.Configuration.Role,
		Task:         exported.Configuration.Task,
		Context:      exported.Configuration.Context,
		Output:       exported.Configuration.Output,
		TechniqueIDs: ids,
		Missing:      missing,
	}
	if exported.Metadata != nil {
		out.ExportID = exported.Metadata.ID
		out.ExportedAt = exported.Metadata.ExportedAt
	}
	if len(missing) > 0 {
		i.logger.Warn("imported prompt references unknown techniques", "path", path, "missing", missing)
	}
	return out, nil
}

func toData(input dto.PromptInput) domain.Data {
	return domain.Data{Role: input.Role, Task: input.Task, Context: input.Context, Output: input.Output}
}

func mapQuality(q domain.Quality) dto.QualityOutput {
	return dto.QualityOutput{
		Score: q.Score,
		Level: string(q.Level),
		Breakdown: map[string]int{
			domain.SectionRole:       q.Breakdown.Role,
			domain.SectionTask:       q.Breakdown.Task,
			domain.SectionContext:    q.Breakdown.Context,
			domain.SectionOutput:     q.Breakdown.Output,
			domain.SectionTechniques: q.Breakdown.Techniques,
		},
		Suggestions: q.Suggestions,
	}
}

func mapValidation(result domain.ValidationResult) dto.ValidationOutput {
	return dto.ValidationOutput{
		Valid:    result.Valid,
		Errors:   mapIssues(result.Errors),
		Warnings: mapIssues(result.Warnings),
	}
}

func mapIssues(issues []domain.Issue) []dto.IssueOutput {
	out := make([]dto.IssueOutput, 0, len(issues))
	for _, issue := range issues {
		out = append(out, dto.IssueOutput{Field: issue.Field, Message: issue.Message})
	}
	return out
}

func mapTemplate(tmpl domain.Template) dto.TemplateOutput {
	return dto.TemplateOutput{
		ID:          tmpl.ID,
		Name:        tmpl.Name,
		Description: tmpl.Description,
		Techniques:  tmpl.Techniques,
		Role:        tmpl.Role,
		Task:        tmpl.Task,
		Context:     tmpl.Context,
		Output:      tmpl.Output,
	}
}
