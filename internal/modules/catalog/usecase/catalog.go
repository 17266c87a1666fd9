package usecase

import (
	"context"
	"log/slog"

	"promptatlas/internal/modules/catalog/domain"
	"promptatlas/internal/modules/catalog/dto"
	catalogin "promptatlas/internal/modules/catalog/port/in"
	"promptatlas/internal/modules/catalog/service"
	graphin "promptatlas/internal/modules/graph/port/in"
)

type Interactor struct {
	svc    *service.CatalogService
	graph  graphin.Usecase
	logger *slog.Logger
}

func NewInteractor(svc *service.CatalogService, graph graphin.Usecase, logger *slog.Logger) catalogin.Usecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interactor{svc: svc, graph: graph, logger: logger}
}

func (i *Interactor) ListCategories(ctx context.Context) ([]dto.CategoryOutput, error) {
	categories, err := i.svc.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryOutput, 0, len(categories))
	for _, category := range categories {
		out = append(out, dto.CategoryOutput{
			ID:             category.ID,
			Name:           category.Name,
			Description:    category.Description,
			TechniqueCount: len(category.Techniques),
		})
	}
	return out, nil
}

func (i *Interactor) ListTechniques(ctx context.Context, input dto.ListTechniquesInput) ([]dto.TechniqueOutput, error) {
	entries, err := i.svc.ListTechniques(ctx, domain.Filter{CategoryID: input.CategoryID, Query: input.Query})
	if err != nil {
		return nil, err
	}
	out := make([]dto.TechniqueOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, mapTechnique(entry))
	}
	return out, nil
}

func (i *Interactor) GetTechnique(ctx context.Context, id string) (dto.TechniqueDetailOutput, error) {
	entry, resolved, unresolved, err := i.svc.GetTechnique(ctx, id)
	if err != nil {
		return dto.TechniqueDetailOutput{}, err
	}
	tech := entry.Technique
	return dto.TechniqueDetailOutput{
		TechniqueOutput: mapTechnique(entry),
		Example:         tech.Example,
		Sources:         tech.Sources,
		UseCase:         tech.UseCase,
		Tips:            tech.Tips,
		CommonMistakes:  tech.CommonMistakes,
		Related:         resolved,
		Unresolved:      unresolved,
	}, nil
}

// Reindex projects the catalogue and then asks the graph module to
// re-project its links.
func (i *Interactor) Reindex(ctx context.Context, _ dto.ReindexInput) (dto.ReindexOutput, error) {
	categories, techniques, err := i.svc.Reindex(ctx)
	if err != nil {
		return dto.ReindexOutput{}, err
	}
	if i.graph != nil {
		if err := i.graph.Project(ctx); err != nil {
			return dto.ReindexOutput{}, err
		}
	}
	i.logger.Info("catalogue reindexed", "categories", categories, "techniques", techniques)
	return dto.ReindexOutput{Categories: categories, Techniques: techniques}, nil
}

func (i *Interactor) ExportNotes(ctx context.Context, input dto.ExportNotesInput) (dto.ExportNotesOutput, error) {
	paths, err := i.svc.ExportNotes(ctx, input.Dir)
	if err != nil {
		return dto.ExportNotesOutput{}, err
	}
	i.logger.Info("technique notes exported", "dir", input.Dir, "count", len(paths))
	return dto.ExportNotesOutput{Dir: input.Dir, Paths: paths}, nil
}

func mapTechnique(entry domain.Entry) dto.TechniqueOutput {
	return dto.TechniqueOutput{
		ID:           entry.Technique.ID,
		Name:         entry.Technique.Name,
		Description:  entry.Technique.Description,
		CategoryID:   entry.CategoryID,
		CategoryName: entry.CategoryName,
		Aliases:      entry.Technique.Aliases,
	}
}
