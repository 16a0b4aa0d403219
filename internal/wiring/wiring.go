// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/depsize/internal/adapters/cargo"
	_ "go.trai.ch/depsize/internal/adapters/config"
	_ "go.trai.ch/depsize/internal/adapters/fs"
	_ "go.trai.ch/depsize/internal/adapters/logger"
	_ "go.trai.ch/depsize/internal/adapters/packagefile"
	_ "go.trai.ch/depsize/internal/adapters/report"
	_ "go.trai.ch/depsize/internal/adapters/shell"
	_ "go.trai.ch/depsize/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/depsize/internal/app"
	_ "go.trai.ch/depsize/internal/engine/aggregator"
)
