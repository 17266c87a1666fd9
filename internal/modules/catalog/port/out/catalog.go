package out

import (
	"context"

	"promptatlas/internal/modules/catalog/domain"
)

type CatalogueSource interface {
	Load(ctx context.Context) (domain.Catalogue, error)
}

type IndexProjector interface {
	Reset(ctx context.Context) error
	UpsertCategory(ctx context.Context, category domain.Category, position int) error
	UpsertTechnique(ctx context.Context, entry domain.Entry, position int) error
}

type NoteStore interface {
	Save(ctx context.Context, dir string, note domain.Note) (string, error)
}
