package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"promptatlas/internal/modules/catalog/domain"
	catalogout "promptatlas/internal/modules/catalog/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteCatalogProjector struct {
	db *sql.DB
}

var _ catalogout.IndexProjector = (*SQLiteCatalogProjector)(nil)

func NewSQLiteCatalogProjector(dbPath string) (*SQLiteCatalogProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteCatalogProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteCatalogProjector) Close() error {
	return s.db.Close()
}

func (s *SQLiteCatalogProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS techniques (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  aliases TEXT,
  related_count INTEGER NOT NULL,
  position INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_techniques_category ON techniques(category_id, position);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create catalogue tables: %w", err)
	}
	return nil
}

func (s *SQLiteCatalogProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM techniques; DELETE FROM categories;`); err != nil {
		return fmt.Errorf("reset catalogue: %w", err)
	}
	return nil
}

func (s *SQLiteCatalogProjector) UpsertCategory(ctx context.Context, category domain.Category, position int) error {
	const stmt = `
INSERT INTO categories (id, name, description, position)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  description=excluded.description,
  position=excluded.position;
`
	if _, err := s.db.ExecContext(ctx, stmt, category.ID, category.Name, category.Description, position); err != nil {
		return fmt.Errorf("upsert category: %w", err)
	}
	return nil
}

func (s *SQLiteCatalogProjector) UpsertTechnique(ctx context.Context, entry domain.Entry, position int) error {
	const stmt = `
INSERT INTO techniques (id, category_id, name, description, aliases, related_count, position)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  category_id=excluded.category_id,
  name=excluded.name,
  description=excluded.description,
  aliases=excluded.aliases,
  related_count=excluded.related_count,
  position=excluded.position;
`
	tech := entry.Technique
	_, err := s.db.ExecContext(ctx, stmt,
		tech.ID,
		entry.CategoryID,
		tech.Name,
		tech.Description,
		strings.Join(tech.Aliases, ", "),
		len(tech.Related()),
		position,
	)
	if err != nil {
		return fmt.Errorf("upsert technique: %w", err)
	}
	return nil
}
