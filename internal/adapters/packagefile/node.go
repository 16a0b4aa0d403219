package packagefile

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the package list resolver Graft node.
const NodeID graft.ID = "adapter.packagefile"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Resolver, error) {
			return NewResolver(), nil
		},
	})
}
