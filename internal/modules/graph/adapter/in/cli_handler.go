package in

import (
	"context"

	"promptatlas/internal/modules/graph/dto"
	graphin "promptatlas/internal/modules/graph/port/in"
)

type CLIHandler struct {
	usecase graphin.Usecase
}

func NewCLIHandler(usecase graphin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Build(ctx context.Context, categories []string, minConnections int, search string) (dto.GraphOutput, error) {
	return h.usecase.Build(ctx, graphin.BuildInput{Categories: categories, MinConnections: minConnections, Search: search})
}

func (h CLIHandler) Stats(ctx context.Context) (dto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) Connected(ctx context.Context, nodeID string) (dto.ConnectedOutput, error) {
	return h.usecase.Connected(ctx, nodeID)
}

func (h CLIHandler) Colors(ctx context.Context) ([]dto.ColorOutput, error) {
	return h.usecase.Colors(ctx)
}

func (h CLIHandler) Neighbors(ctx context.Context, nodeID string, depth int) (dto.NeighborsOutput, error) {
	return h.usecase.Neighbors(ctx, graphin.NeighborsInput{NodeID: nodeID, Depth: depth})
}

func (h CLIHandler) Path(ctx context.Context, fromID, toID string) (dto.PathOutput, error) {
	return h.usecase.Path(ctx, graphin.PathInput{FromID: fromID, ToID: toID})
}
