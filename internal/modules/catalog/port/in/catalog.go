package in

import (
	"context"

	"promptatlas/internal/modules/catalog/dto"
)

type Usecase interface {
	ListCategories(ctx context.Context) ([]dto.CategoryOutput, error)
	ListTechniques(ctx context.Context, input dto.ListTechniquesInput) ([]dto.TechniqueOutput, error)
	GetTechnique(ctx context.Context, id string) (dto.TechniqueDetailOutput, error)
	Reindex(ctx context.Context, input dto.ReindexInput) (dto.ReindexOutput, error)
	ExportNotes(ctx context.Context, input dto.ExportNotesInput) (dto.ExportNotesOutput, error)
}
