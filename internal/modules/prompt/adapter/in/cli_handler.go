package in

import (
	"context"

	"promptatlas/internal/modules/prompt/dto"
	promptin "promptatlas/internal/modules/prompt/port/in"
)

type CLIHandler struct {
	usecase promptin.Usecase
}

func NewCLIHandler(usecase promptin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Generate(ctx context.Context, input dto.PromptInput, techniqueIDs []string, export bool) (dto.GenerateOutput, error) {
	return h.usecase.Generate(ctx, dto.GenerateInput{PromptInput: input, TechniqueIDs: techniqueIDs, Export: export})
}

func (h CLIHandler) Suggest(ctx context.Context, text string, exclude []string) ([]dto.SuggestionOutput, error) {
	return h.usecase.Suggest(ctx, dto.SuggestInput{Text: text, Exclude: exclude})
}

func (h CLIHandler) Validate(ctx context.Context, input dto.PromptInput) (dto.ValidationOutput, error) {
	return h.usecase.Validate(ctx, input)
}

func (h CLIHandler) Templates(ctx context.Context) ([]dto.TemplateOutput, error) {
	return h.usecase.Templates(ctx)
}

func (h CLIHandler) Template(ctx context.Context, id string) (dto.TemplateOutput, error) {
	return h.usecase.Template(ctx, id)
}

func (h CLIHandler) Import(ctx context.Context, path string) (dto.ImportOutput, error) {
	return h.usecase.Import(ctx, path)
}
