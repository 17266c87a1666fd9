package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"promptatlas/internal/modules/prompt/domain"
	promptout "promptatlas/internal/modules/prompt/port/out"
	apperrors "promptatlas/internal/platform/errors"
)

type FileExportStore struct {
	dir string
}

func NewFileExportStore(dir string) promptout.ExportStore {
	return &FileExportStore{dir: dir}
}

// Save writes <dir>/<export id>.json and returns its path.
func (s *FileExportStore) Save(_ context.Context, exported domain.Exported) (string, error) {
	name := "prompt"
	if exported.Metadata != nil && exported.Metadata.ID != "" {
		name = exported.Metadata.ID
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	raw, err := json.MarshalIndent(exported, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	path := filepath.Join(s.dir, name+".json")
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

func (s *FileExportStore) Read(_ context.Context, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("export %s: %w", path, apperrors.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read export: %w", err)
	}
	return string(raw), nil
}
