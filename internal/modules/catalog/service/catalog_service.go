package service

import (
	"context"
	"fmt"
	"strings"

	"promptatlas/internal/modules/catalog/domain"
	catalogout "promptatlas/internal/modules/catalog/port/out"
	apperrors "promptatlas/internal/platform/errors"
	"promptatlas/internal/platform/slug"
)

type CatalogService struct {
	source    catalogout.CatalogueSource
	projector catalogout.IndexProjector
	notes     catalogout.NoteStore
}

func NewCatalogService(source catalogout.CatalogueSource, projector catalogout.IndexProjector, notes catalogout.NoteStore) *CatalogService {
	return &CatalogService{source: source, projector: projector, notes: notes}
}

func (s *CatalogService) Load(ctx context.Context) (domain.Catalogue, error) {
	return s.source.Load(ctx)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cat, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	return cat.Categories, nil
}

func (s *CatalogService) ListTechniques(ctx context.Context, filter domain.Filter) ([]domain.Entry, error) {
	cat, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	return cat.Search(filter), nil
}

// GetTechnique returns the entry for id with its related IDs split by
// whether they resolve in the catalogue.
func (s *CatalogService) GetTechnique(ctx context.Context, id string) (domain.Entry, []string, []string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Entry{}, nil, nil, fmt.Errorf("%w: technique id is required", apperrors.ErrInvalidInput)
	}
	cat, err := s.source.Load(ctx)
	if err != nil {
		return domain.Entry{}, nil, nil, err
	}
	entry, ok := cat.FindTechnique(id)
	if !ok {
		return domain.Entry{}, nil, nil, fmt.Errorf("technique %q: %w", id, apperrors.ErrNotFound)
	}
	resolved, unresolved := cat.SplitRelated(entry.Technique)
	return entry, resolved, unresolved, nil
}

// Reindex rebuilds the categories and techniques projection from scratch.
func (s *CatalogService) Reindex(ctx context.Context) (int, int, error) {
	cat, err := s.source.Load(ctx)
	if err != nil {
		return 0, 0, err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return 0, 0, err
	}
	techniques := 0
	for i, category := range cat.Categories {
		if err := s.projector.UpsertCategory(ctx, category, i); err != nil {
			return 0, 0, err
		}
		for j, tech := range category.Techniques {
			entry := domain.Entry{Technique: tech, CategoryID: category.ID, CategoryName: category.Name}
			if err := s.projector.UpsertTechnique(ctx, entry, j); err != nil {
				return 0, 0, err
			}
			techniques++
		}
	}
	return len(cat.Categories), techniques, nil
}

func (s *CatalogService) ExportNotes(ctx context.Context, dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: notes directory is required", apperrors.ErrInvalidInput)
	}
	cat, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, cat.TechniqueCount())
	for _, category := range cat.Categories {
		for _, tech := range category.Techniques {
			resolved, _ := cat.SplitRelated(tech)
			path, err := s.notes.Save(ctx, dir, buildNote(tech, category, resolved))
			if err != nil {
				return nil, err
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func buildNote(tech domain.Technique, category domain.Category, related []string) domain.Note {
	links := make([]string, 0, len(related))
	for _, id := range related {
		links = append(links, slug.Wikilink(id))
	}
	return domain.Note{
		Slug: slug.Make(tech.ID),
		Meta: domain.NoteMeta{
			SchemaVersion: domain.NoteSchemaVersion,
			ID:            tech.ID,
			Name:          tech.Name,
			Category:      category.ID,
			Aliases:       tech.Aliases,
			Sources:       tech.Sources,
		},
		Body:  noteBody(tech),
		Links: links,
	}
}

func noteBody(tech domain.Technique) string {
	b := strings.Builder{}
	b.WriteString("# " + tech.Name + "\n\n")
	if tech.Description != "" {
		b.WriteString(tech.Description + "\n\n")
	}
	sections := []struct{ title, text string }{
		{"Use Case", tech.UseCase},
		{"Example", tech.Example},
		{"Tips", tech.Tips},
		{"Common Mistakes", tech.CommonMistakes},
	}
	for _, section := range sections {
		if strings.TrimSpace(section.text) == "" {
			continue
		}
		b.WriteString("## " + section.title + "\n\n" + section.text + "\n\n")
	}
	b.WriteString("## Notes\n\n## Related\n")
	return b.String()
}
