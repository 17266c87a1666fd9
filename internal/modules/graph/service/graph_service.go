package service

import (
	"context"
	"strings"

	catalog "promptatlas/internal/modules/catalog/domain"
	"promptatlas/internal/modules/graph/domain"
	graphout "promptatlas/internal/modules/graph/port/out"
)

type GraphService struct {
	source    graphout.CatalogueSource
	projector graphout.LinkProjector
	query     graphout.GraphQueryStore
}

func NewGraphService(source graphout.CatalogueSource, projector graphout.LinkProjector, query graphout.GraphQueryStore) *GraphService {
	return &GraphService{source: source, projector: projector, query: query}
}

func (s *GraphService) Build(ctx context.Context, filter domain.Filter) (domain.Data, error) {
	cat, err := s.source.Load(ctx)
	if err != nil {
		return domain.Data{}, err
	}
	data := domain.BuildGraphData(cat)
	if filter.IsZero() {
		return data, nil
	}
	return domain.FilterGraph(data, filter), nil
}

func (s *GraphService) Stats(ctx context.Context) (domain.Stats, error) {
	data, err := s.Build(ctx, domain.Filter{})
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.GetGraphStats(data), nil
}

// Connected lists the direct neighbours of nodeID in link order. Unknown
// and isolated nodes both yield an empty list.
func (s *GraphService) Connected(ctx context.Context, nodeID string) ([]domain.NodeRef, error) {
	nodeID = strings.TrimSpace(nodeID)
	data, err := s.Build(ctx, domain.Filter{})
	if err != nil {
		return nil, err
	}
	refs := map[string]domain.NodeRef{}
	for _, node := range data.Nodes {
		refs[node.ID] = domain.NodeRef{ID: node.ID, Name: node.Name, CategoryID: node.CategoryID}
	}
	ids := domain.GetConnectedNodes(data, nodeID)
	out := make([]domain.NodeRef, 0, len(ids))
	for _, id := range ids {
		out = append(out, refs[id])
	}
	return out, nil
}

func (s *GraphService) Colors(ctx context.Context) (catalog.Catalogue, map[string]string, error) {
	cat, err := s.source.Load(ctx)
	if err != nil {
		return catalog.Catalogue{}, nil, err
	}
	return cat, domain.GetCategoryColors(cat), nil
}

// Project rebuilds the stored graph from the current catalogue.
func (s *GraphService) Project(ctx context.Context) (domain.Data, error) {
	data, err := s.Build(ctx, domain.Filter{})
	if err != nil {
		return domain.Data{}, err
	}
	if err := s.projector.Replace(ctx, data); err != nil {
		return domain.Data{}, err
	}
	return data, nil
}

// ensureProjected rewrites the stored graph only when the catalogue no longer
// matches it, so queries normally read without writing.
func (s *GraphService) ensureProjected(ctx context.Context) error {
	data, err := s.Build(ctx, domain.Filter{})
	if err != nil {
		return err
	}
	stored, err := s.projector.Fingerprint(ctx)
	if err != nil {
		return err
	}
	if stored == domain.Fingerprint(data) {
		return nil
	}
	return s.projector.Replace(ctx, data)
}

func (s *GraphService) Neighbors(ctx context.Context, nodeID string, depth int) ([]domain.NodeRef, int, error) {
	if depth < 1 {
		depth = 1
	}
	if err := s.ensureProjected(ctx); err != nil {
		return nil, 0, err
	}
	nodes, err := s.query.Neighbors(ctx, strings.TrimSpace(nodeID), depth)
	if err != nil {
		return nil, 0, err
	}
	return nodes, depth, nil
}

func (s *GraphService) ShortestPath(ctx context.Context, fromID, toID string) ([]domain.NodeRef, error) {
	if err := s.ensureProjected(ctx); err != nil {
		return nil, err
	}
	return s.query.ShortestPath(ctx, strings.TrimSpace(fromID), strings.TrimSpace(toID))
}
