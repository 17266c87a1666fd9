package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"promptatlas/internal/modules/catalog/domain"
	catalogout "promptatlas/internal/modules/catalog/port/out"
	"promptatlas/internal/platform/markdown"
)

type VaultNoteStore struct{}

func NewVaultNoteStore() catalogout.NoteStore {
	return VaultNoteStore{}
}

// Save writes dir/<slug>.md. An existing note keeps its body; only the
// frontmatter and the managed related-links block are regenerated.
func (VaultNoteStore) Save(_ context.Context, dir string, note domain.Note) (string, error) {
	path := filepath.Join(dir, note.Slug+".md")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create notes directory: %w", err)
	}

	body := note.Body
	if existing, err := os.ReadFile(path); err == nil {
		previous := domain.NoteMeta{}
		existingBody, splitErr := markdown.SplitFrontmatter(string(existing), &previous)
		if splitErr == nil && strings.TrimSpace(existingBody) != "" {
			body = existingBody
		}
	}
	body = markdown.ReplaceManagedBlock(body, domain.ManagedLinksStart, domain.ManagedLinksEnd, strings.Join(note.Links, "\n"))

	rendered, err := markdown.RenderFrontmatter(note.Meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write technique note: %w", err)
	}
	return path, nil
}
