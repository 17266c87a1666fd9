package out

import (
	"context"

	catalog "promptatlas/internal/modules/catalog/domain"
	"promptatlas/internal/modules/prompt/domain"
)

type CatalogueSource interface {
	Load(ctx context.Context) (catalog.Catalogue, error)
}

type ExportStore interface {
	Save(ctx context.Context, exported domain.Exported) (string, error)
	Read(ctx context.Context, path string) (string, error)
}

type TemplateStore interface {
	List(ctx context.Context) ([]domain.Template, error)
}
