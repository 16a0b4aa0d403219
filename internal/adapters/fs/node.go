package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depsize/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// ProbeNodeID is the unique identifier for the size probe Graft node.
	ProbeNodeID graft.ID = "adapter.fs.probe"
)

func init() {
	// Walker Node (Concrete implementation needed by Probe)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	// Probe Node
	graft.Register(graft.Node[ports.SizeProbe]{
		ID:        ProbeNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.SizeProbe, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewProbe(walker), nil
		},
	})
}
