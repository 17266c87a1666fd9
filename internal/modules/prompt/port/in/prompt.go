package in

import (
	"context"

	"promptatlas/internal/modules/prompt/dto"
)

type Usecase interface {
	Generate(ctx context.Context, input dto.GenerateInput) (dto.GenerateOutput, error)
	Suggest(ctx context.Context, input dto.SuggestInput) ([]dto.SuggestionOutput, error)
	Validate(ctx context.Context, input dto.PromptInput) (dto.ValidationOutput, error)
	Templates(ctx context.Context) ([]dto.TemplateOutput, error)
	Template(ctx context.Context, id string) (dto.TemplateOutput, error)
	Import(ctx context.Context, path string) (dto.ImportOutput, error)
}
