package usecase

import (
	"context"
	"log/slog"

	"promptatlas/internal/modules/graph/domain"
	"promptatlas/internal/modules/graph/dto"
	graphin "promptatlas/internal/modules/graph/port/in"
	"promptatlas/internal/modules/graph/service"
)

type Interactor struct {
	svc    *service.GraphService
	logger *slog.Logger
}

func NewInteractor(svc *service.GraphService, logger *slog.Logger) graphin.Usecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interactor{svc: svc, logger: logger}
}

func (i *Interactor) Build(ctx context.Context, input graphin.BuildInput) (dto.GraphOutput, error) {
	data, err := i.svc.Build(ctx, domain.Filter{
		Categories:     input.Categories,
		MinConnections: input.MinConnections,
		SearchQuery:    input.Search,
	})
	if err != nil {
		return dto.GraphOutput{}, err
	}
	out := dto.GraphOutput{
		Nodes: make([]dto.NodeOutput, 0, len(data.Nodes)),
		Links: make([]dto.LinkOutput, 0, len(data.Links)),
	}
	for _, node := range data.Nodes {
		out.Nodes = append(out.Nodes, dto.NodeOutput{
			ID:              node.ID,
			Name:            node.Name,
			CategoryID:      node.CategoryID,
			CategoryName:    node.CategoryName,
			ConnectionCount: node.ConnectionCount,
			Size:            node.Size,
		})
	}
	for _, link := range data.Links {
		out.Links = append(out.Links, dto.LinkOutput{Source: link.Source, Target: link.Target, Value: link.Value})
	}
	return out, nil
}

func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	stats, err := i.svc.Stats(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return dto.StatsOutput{
		TotalNodes:     stats.TotalNodes,
		TotalLinks:     stats.TotalLinks,
		AvgConnections: stats.AvgConnections,
		IsolatedNodes:  stats.IsolatedNodes,
		MostConnected:  mapSummary(stats.MostConnected),
		LeastConnected: mapSummary(stats.LeastConnected),
	}, nil
}

func (i *Interactor) Connected(ctx context.Context, nodeID string) (dto.ConnectedOutput, error) {
	nodes, err := i.svc.Connected(ctx, nodeID)
	if err != nil {
		return dto.ConnectedOutput{}, err
	}
	return dto.ConnectedOutput{FocusID: nodeID, Nodes: mapRefs(nodes)}, nil
}

func (i *Interactor) Colors(ctx context.Context) ([]dto.ColorOutput, error) {
	cat, colors, err := i.svc.Colors(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ColorOutput, 0, len(cat.Categories))
	for _, category := range cat.Categories {
		out = append(out, dto.ColorOutput{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			Color:        colors[category.ID],
		})
	}
	return out, nil
}

func (i *Interactor) Neighbors(ctx context.Context, input graphin.NeighborsInput) (dto.NeighborsOutput, error) {
	nodes, depth, err := i.svc.Neighbors(ctx, input.NodeID, input.Depth)
	if err != nil {
		return dto.NeighborsOutput{}, err
	}
	return dto.NeighborsOutput{
		FocusID: input.NodeID,
		Depth:   depth,
		Nodes:   mapRefs(nodes),
	}, nil
}

func (i *Interactor) Path(ctx context.Context, input graphin.PathInput) (dto.PathOutput, error) {
	nodes, err := i.svc.ShortestPath(ctx, input.FromID, input.ToID)
	if err != nil {
		return dto.PathOutput{}, err
	}
	return dto.PathOutput{
		FromID: input.FromID,
		ToID:   input.ToID,
		Found:  len(nodes) > 0,
		Nodes:  mapRefs(nodes),
	}, nil
}

func (i *Interactor) Project(ctx context.Context) error {
	data, err := i.svc.Project(ctx)
	if err != nil {
		return err
	}
	i.logger.Debug("graph projected", "nodes", len(data.Nodes), "links", len(data.Links))
	return nil
}

func mapSummary(summary *domain.NodeSummary) *dto.NodeSummaryOutput {
	if summary == nil {
		return nil
	}
	return &dto.NodeSummaryOutput{ID: summary.ID, Name: summary.Name, Connections: summary.Connections}
}

func mapRefs(nodes []domain.NodeRef) []dto.NodeRefOutput {
	out := make([]dto.NodeRefOutput, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, dto.NodeRefOutput{ID: node.ID, Name: node.Name, CategoryID: node.CategoryID})
	}
	return out
}
