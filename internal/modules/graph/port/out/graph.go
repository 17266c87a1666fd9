package out

import (
	"context"

	catalog "promptatlas/internal/modules/catalog/domain"
	"promptatlas/internal/modules/graph/domain"
)

type CatalogueSource interface {
	Load(ctx context.Context) (catalog.Catalogue, error)
}

// LinkProjector replaces the stored graph with data in one step and records
// its fingerprint. Fingerprint is "" before the first Replace.
type LinkProjector interface {
	Replace(ctx context.Context, data domain.Data) error
	Fingerprint(ctx context.Context) (string, error)
}

type GraphQueryStore interface {
	Neighbors(ctx context.Context, nodeID string, depth int) ([]domain.NodeRef, error)
	ShortestPath(ctx context.Context, fromID, toID string) ([]domain.NodeRef, error)
}
