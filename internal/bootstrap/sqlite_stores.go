package bootstrap

import (
	"context"
	"errors"
	"sync"

	catalogoutadapter "promptatlas/internal/modules/catalog/adapter/out"
	catalogdomain "promptatlas/internal/modules/catalog/domain"
	graphoutadapter "promptatlas/internal/modules/graph/adapter/out"
	graphdomain "promptatlas/internal/modules/graph/domain"
)

// sqliteStores opens the SQLite projections on first use, so commands that
// only read the dataset never create the database file.
type sqliteStores struct {
	dbPath string

	mu      sync.Mutex
	graph   *graphoutadapter.SQLiteLinkProjector
	catalog *catalogoutadapter.SQLiteCatalogProjector
}

func newSQLiteStores(dbPath string) *sqliteStores {
	return &sqliteStores{dbPath: dbPath}
}

func (s *sqliteStores) graphStore() (*graphoutadapter.SQLiteLinkProjector, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graph == nil {
		store, err := graphoutadapter.NewSQLiteLinkProjector(s.dbPath)
		if err != nil {
			return nil, err
		}
		s.graph = store
	}
	return s.graph, nil
}

func (s *sqliteStores) catalogProjector() (*catalogoutadapter.SQLiteCatalogProjector, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog == nil {
		projector, err := catalogoutadapter.NewSQLiteCatalogProjector(s.dbPath)
		if err != nil {
			return nil, err
		}
		s.catalog = projector
	}
	return s.catalog, nil
}

// Close releases whichever handles were opened. It is safe to call twice.
func (s *sqliteStores) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	if s.graph != nil {
		errs = append(errs, s.graph.Close())
		s.graph = nil
	}
	if s.catalog != nil {
		errs = append(errs, s.catalog.Close())
		s.catalog = nil
	}
	return errors.Join(errs...)
}

// lazyGraphStore serves the graph projector and query ports.
type lazyGraphStore struct{ stores *sqliteStores }

func (l lazyGraphStore) Replace(ctx context.Context, data graphdomain.Data) error {
	store, err := l.stores.graphStore()
	if err != nil {
		return err
	}
	return store.Replace(ctx, data)
}

func (l lazyGraphStore) Fingerprint(ctx context.Context) (string, error) {
	store, err := l.stores.graphStore()
	if err != nil {
		return "", err
	}
	return store.Fingerprint(ctx)
}

func (l lazyGraphStore) Neighbors(ctx context.Context, nodeID string, depth int) ([]graphdomain.NodeRef, error) {
	store, err := l.stores.graphStore()
	if err != nil {
		return nil, err
	}
	return store.Neighbors(ctx, nodeID, depth)
}

func (l lazyGraphStore) ShortestPath(ctx context.Context, fromID, toID string) ([]graphdomain.NodeRef, error) {
	store, err := l.stores.graphStore()
	if err != nil {
		return nil, err
	}
	return store.ShortestPath(ctx, fromID, toID)
}

// lazyCatalogProjector serves the catalog index projector port.
type lazyCatalogProjector struct{ stores *sqliteStores }

func (l lazyCatalogProjector) Reset(ctx context.Context) error {
	projector, err := l.stores.catalogProjector()
	if err != nil {
		return err
	}
	return projector.Reset(ctx)
}

func (l lazyCatalogProjector) UpsertCategory(ctx context.Context, category catalogdomain.Category, position int) error {
	projector, err := l.stores.catalogProjector()
	if err != nil {
		return err
	}
	return projector.UpsertCategory(ctx, category, position)
}

func (l lazyCatalogProjector) UpsertTechnique(ctx context.Context, entry catalogdomain.Entry, position int) error {
	projector, err := l.stores.catalogProjector()
	if err != nil {
		return err
	}
	return projector.UpsertTechnique(ctx, entry, position)
}
