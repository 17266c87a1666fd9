package in

import (
	"context"

	"promptatlas/internal/modules/graph/dto"
)

// BuildInput mirrors the graph filter; zero fields are ignored.
type BuildInput struct {
	Categories     []string
	MinConnections int
	Search         string
}

type NeighborsInput struct {
	NodeID string
	Depth  int
}

type PathInput struct {
	FromID string
	ToID   string
}

type Usecase interface {
	Build(ctx context.Context, input BuildInput) (dto.GraphOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
	Connected(ctx context.Context, nodeID string) (dto.ConnectedOutput, error)
	Colors(ctx context.Context) ([]dto.ColorOutput, error)
	Neighbors(ctx context.Context, input NeighborsInput) (dto.NeighborsOutput, error)
	Path(ctx context.Context, input PathInput) (dto.PathOutput, error)
	Project(ctx context.Context) error
}
