package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cargoc/internal/adapters/config"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cargoc/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cargoc/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cargoc/internal/adapters/shell"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cargoc/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cargoc/internal/core/domain"
	"go.trai.ch/cargoc/internal/core/ports"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			config.ToolchainNodeID,
			fs.NodeID,
			shell.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			loader, err := graft.Dep[ports.ManifestLoader](ctx)
			if err != nil {
				return nil, err
			}

			toolchain, err := graft.Dep[domain.Toolchain](ctx)
			if err != nil {
				return nil, err
			}

			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}

			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, fsys, executor, telemetry, log, toolchain), nil
		},
	})
}
