package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depsize/internal/adapters/cargo"       //nolint:depguard // Wired in app layer
	"go.trai.ch/depsize/internal/adapters/config"      //nolint:depguard // Wired in app layer
	"go.trai.ch/depsize/internal/adapters/logger"      //nolint:depguard // Wired in app layer
	"go.trai.ch/depsize/internal/adapters/packagefile" //nolint:depguard // Wired in app layer
	"go.trai.ch/depsize/internal/adapters/report"      //nolint:depguard // Wired in app layer
	"go.trai.ch/depsize/internal/adapters/telemetry"   //nolint:depguard // Wired in app layer
	"go.trai.ch/depsize/internal/core/ports"
	"go.trai.ch/depsize/internal/engine/aggregator"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			cargo.NodeID,
			packagefile.NodeID,
			aggregator.NodeID,
			report.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log, tel), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	cargoResolver, err := graft.Dep[*cargo.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	listResolver, err := graft.Dep[*packagefile.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	agg, err := graft.Dep[*aggregator.Aggregator](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.ReportRenderer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, cargoResolver, listResolver, agg, renderer, log), nil
}
