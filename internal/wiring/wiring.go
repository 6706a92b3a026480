// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/cargoc/internal/adapters/config"
	_ "go.trai.ch/cargoc/internal/adapters/fs"
	_ "go.trai.ch/cargoc/internal/adapters/logger"
	_ "go.trai.ch/cargoc/internal/adapters/shell"
	_ "go.trai.ch/cargoc/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/cargoc/internal/app"
	_ "go.trai.ch/cargoc/internal/engine/orchestrator"
)
