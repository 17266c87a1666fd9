package in

import (
	"context"

	"promptatlas/internal/modules/catalog/dto"
	catalogin "promptatlas/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListCategories(ctx context.Context) ([]dto.CategoryOutput, error) {
	return h.usecase.ListCategories(ctx)
}

func (h CLIHandler) ListTechniques(ctx context.Context, categoryID, query string) ([]dto.TechniqueOutput, error) {
	return h.usecase.ListTechniques(ctx, dto.ListTechniquesInput{CategoryID: categoryID, Query: query})
}

func (h CLIHandler) GetTechnique(ctx context.Context, id string) (dto.TechniqueDetailOutput, error) {
	return h.usecase.GetTechnique(ctx, id)
}

func (h CLIHandler) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx, dto.ReindexInput{})
}

func (h CLIHandler) ExportNotes(ctx context.Context, dir string) (dto.ExportNotesOutput, error) {
	return h.usecase.ExportNotes(ctx, dto.ExportNotesInput{Dir: dir})
}
