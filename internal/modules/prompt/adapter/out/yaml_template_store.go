package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"promptatlas/internal/modules/prompt/domain"
	promptout "promptatlas/internal/modules/prompt/port/out"
)

// YAMLTemplateStore loads user templates from *.yaml files, one template
// per file. A missing directory means no user templates.
type YAMLTemplateStore struct {
	dir string
}

func NewYAMLTemplateStore(dir string) promptout.TemplateStore {
	return &YAMLTemplateStore{dir: dir}
}

func (s *YAMLTemplateStore) List(_ context.Context) ([]domain.Template, error) {
	if _, err := os.Stat(s.dir); errors.Is(err, os.ErrNotExist) {
		return []domain.Template{}, nil
	}
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.Template, 0, len(matches))
	for _, path := range matches {
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		tmpl := domain.Template{}
		if err := yaml.Unmarshal(raw, &tmpl); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", path, err)
		}
		if err := tmpl.Validate(); err != nil {
			return nil, fmt.Errorf("template %s: %w", path, err)
		}
		out = append(out, tmpl)
	}
	return out, nil
}
