package aggregator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depsize/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/depsize/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/depsize/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/depsize/internal/core/ports"
)

// NodeID is the unique identifier for the aggregator Graft node.
const NodeID graft.ID = "engine.aggregator"

func init() {
	graft.Register(graft.Node[*Aggregator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ProbeNodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Aggregator, error) {
			probe, err := graft.Dep[ports.SizeProbe](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(probe, tel, log), nil
		},
	})
}
