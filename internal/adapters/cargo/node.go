package cargo

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depsize/internal/adapters/logger"
	"go.trai.ch/depsize/internal/adapters/shell"
	"go.trai.ch/depsize/internal/core/ports"
)

// NodeID is the unique identifier for the cargo resolver Graft node.
const NodeID graft.ID = "adapter.cargo"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(runner, log), nil
		},
	})
}
