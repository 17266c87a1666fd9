package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"promptatlas/internal/modules/graph/domain"

	_ "modernc.org/sqlite"
)

// SQLiteLinkProjector stores the derived graph so neighbourhood and path
// queries can run against a persisted copy. It implements both the
// projector and query ports.
type SQLiteLinkProjector struct {
	db *sql.DB
}

func NewSQLiteLinkProjector(dbPath string) (*SQLiteLinkProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	p := &SQLiteLinkProjector{db: db}
	if err := p.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return p, nil
}

// sqliteDSN waits on a locked database instead of failing with SQLITE_BUSY
// while another process is reindexing.
func sqliteDSN(dbPath string) string {
	return "file:" + dbPath + "?_pragma=busy_timeout(5000)"
}

func (p *SQLiteLinkProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS graph_nodes (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category_id TEXT NOT NULL,
  connection_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS graph_links (
  source TEXT NOT NULL,
  target TEXT NOT NULL,
  PRIMARY KEY (source, target)
);
CREATE INDEX IF NOT EXISTS idx_graph_links_target ON graph_links(target);
CREATE TABLE IF NOT EXISTS graph_meta (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	if _, err := p.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create graph tables: %w", err)
	}
	return nil
}

// Replace swaps the stored graph inside a single transaction.
func (p *SQLiteLinkProjector) Replace(ctx context.Context, data domain.Data) (err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin graph projection: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM graph_links; DELETE FROM graph_nodes;`); err != nil {
		return fmt.Errorf("reset graph: %w", err)
	}
	for _, node := range data.Nodes {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO graph_nodes (id, name, category_id, connection_count) VALUES (?, ?, ?, ?)`,
			node.ID, node.Name, node.CategoryID, node.ConnectionCount,
		); err != nil {
			return fmt.Errorf("insert graph node %s: %w", node.ID, err)
		}
	}
	for _, link := range data.Links {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO graph_links (source, target) VALUES (?, ?) ON CONFLICT(source, target) DO NOTHING`,
			link.Source, link.Target,
		); err != nil {
			return fmt.Errorf("insert graph link %s-%s: %w", link.Source, link.Target, err)
		}
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO graph_meta (key, value) VALUES ('fingerprint', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		domain.Fingerprint(data),
	); err != nil {
		return fmt.Errorf("record graph fingerprint: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit graph projection: %w", err)
	}
	return nil
}

// Fingerprint returns the fingerprint stored by the last Replace.
func (p *SQLiteLinkProjector) Fingerprint(ctx context.Context) (string, error) {
	var value string
	err := p.db.QueryRowContext(ctx, `SELECT value FROM graph_meta WHERE key = 'fingerprint'`).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read graph fingerprint: %w", err)
	}
	return value, nil
}

// Neighbors walks breadth-first up to depth hops and returns the reached
// nodes, nearest first. Unknown nodes yield an empty result.
func (p *SQLiteLinkProjector) Neighbors(ctx context.Context, nodeID string, depth int) ([]domain.NodeRef, error) {
	if nodeID == "" {
		return []domain.NodeRef{}, nil
	}
	if depth < 1 {
		depth = 1
	}
	refs, adjacency, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := refs[nodeID]; !ok {
		return []domain.NodeRef{}, nil
	}

	type queueItem struct {
		ID    string
		Depth int
	}
	seen := map[string]struct{}{nodeID: {}}
	queue := []queueItem{{ID: nodeID, Depth: 0}}
	out := []domain.NodeRef{}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		if item.Depth >= depth {
			continue
		}
		for _, nextID := range sortedNeighborIDs(adjacency[item.ID]) {
			if _, ok := seen[nextID]; ok {
				continue
			}
			seen[nextID] = struct{}{}
			out = append(out, refs[nextID])
			queue = append(queue, queueItem{ID: nextID, Depth: item.Depth + 1})
		}
	}
	return out, nil
}

// ShortestPath returns the nodes of a shortest path from fromID to toID,
// both included, or an empty slice when none exists. Neighbours are
// expanded in ID order so the result is deterministic.
func (p *SQLiteLinkProjector) ShortestPath(ctx context.Context, fromID, toID string) ([]domain.NodeRef, error) {
	if fromID == "" || toID == "" {
		return []domain.NodeRef{}, nil
	}
	refs, adjacency, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := refs[fromID]; !ok {
		return []domain.NodeRef{}, nil
	}
	if _, ok := refs[toID]; !ok {
		return []domain.NodeRef{}, nil
	}
	if fromID == toID {
		return []domain.NodeRef{refs[fromID]}, nil
	}

	queue := []string{fromID}
	visited := map[string]struct{}{fromID: {}}
	prev := map[string]string{}
	found := false
	for len(queue) > 0 && !found {
		current := queue[0]
		queue = queue[1:]
		for _, nextID := range sortedNeighborIDs(adjacency[current]) {
			if _, ok := visited[nextID]; ok {
				continue
			}
			visited[nextID] = struct{}{}
			prev[nextID] = current
			if nextID == toID {
				found = true
				break
			}
			queue = append(queue, nextID)
		}
	}
	if !found {
		return []domain.NodeRef{}, nil
	}

	pathIDs := []string{toID}
	for current := toID; current != fromID; {
		current = prev[current]
		pathIDs = append(pathIDs, current)
	}
	out := make([]domain.NodeRef, 0, len(pathIDs))
	for i := len(pathIDs) - 1; i >= 0; i-- {
		out = append(out, refs[pathIDs[i]])
	}
	return out, nil
}

func (p *SQLiteLinkProjector) load(ctx context.Context) (map[string]domain.NodeRef, map[string]map[string]struct{}, error) {
	refs := map[string]domain.NodeRef{}
	rows, err := p.db.QueryContext(ctx, `SELECT id, name, category_id FROM graph_nodes`)
	if err != nil {
		return nil, nil, fmt.Errorf("load graph nodes: %w", err)
	}
	for rows.Next() {
		ref := domain.NodeRef{}
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.CategoryID); err != nil {
			_ = rows.Close()
			return nil, nil, fmt.Errorf("scan graph node: %w", err)
		}
		refs[ref.ID] = ref
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, nil, fmt.Errorf("iterate graph nodes: %w", err)
	}
	_ = rows.Close()

	rows, err = p.db.QueryContext(ctx, `SELECT source, target FROM graph_links`)
	if err != nil {
		return nil, nil, fmt.Errorf("load adjacency: %w", err)
	}
	defer rows.Close()

	adjacency := map[string]map[string]struct{}{}
	for rows.Next() {
		var source, target string
		if err := rows.Scan(&source, &target); err != nil {
			return nil, nil, fmt.Errorf("scan adjacency row: %w", err)
		}
		if adjacency[source] == nil {
			adjacency[source] = map[string]struct{}{}
		}
		if adjacency[target] == nil {
			adjacency[target] = map[string]struct{}{}
		}
		adjacency[source][target] = struct{}{}
		adjacency[target][source] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate adjacency rows: %w", err)
	}
	return refs, adjacency, nil
}

func (p *SQLiteLinkProjector) Close() error {
	return p.db.Close()
}

func sortedNeighborIDs(neighbors map[string]struct{}) []string {
	out := make([]string, 0, len(neighbors))
	for id := range neighbors {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
