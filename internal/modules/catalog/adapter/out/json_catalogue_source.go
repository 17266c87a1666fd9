package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"promptatlas/internal/modules/catalog/domain"
	catalogout "promptatlas/internal/modules/catalog/port/out"
	apperrors "promptatlas/internal/platform/errors"
)

// JSONCatalogueSource reads the dataset from disk on every Load so edits to
// the file are picked up without restarting.
type JSONCatalogueSource struct {
	path string
}

func NewJSONCatalogueSource(path string) *JSONCatalogueSource {
	return &JSONCatalogueSource{path: path}
}

var _ catalogout.CatalogueSource = (*JSONCatalogueSource)(nil)

func (s *JSONCatalogueSource) Path() string {
	return s.path
}

func (s *JSONCatalogueSource) Load(ctx context.Context) (domain.Catalogue, error) {
	if err := ctx.Err(); err != nil {
		return domain.Catalogue{}, err
	}
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.Catalogue{}, fmt.Errorf("load catalogue %s: %w", s.path, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Catalogue{}, fmt.Errorf("load catalogue: %w", err)
	}
	cat := domain.Catalogue{}
	if err := json.Unmarshal(raw, &cat); err != nil {
		return domain.Catalogue{}, fmt.Errorf("decode catalogue %s: %w: %v", s.path, apperrors.ErrInvalidInput, err)
	}
	if err := cat.Validate(); err != nil {
		return domain.Catalogue{}, fmt.Errorf("validate catalogue %s: %w", s.path, err)
	}
	return cat, nil
}
