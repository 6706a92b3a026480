package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cargoc/internal/adapters/fs"
	"go.trai.ch/cargoc/internal/adapters/logger"
	"go.trai.ch/cargoc/internal/core/domain"
	"go.trai.ch/cargoc/internal/core/ports"
)

const (
	// ToolchainNodeID is the unique identifier for the toolchain settings Graft node.
	ToolchainNodeID graft.ID = "adapter.config.toolchain"
	// NodeID is the unique identifier for the manifest loader Graft node.
	NodeID graft.ID = "adapter.config.manifest_loader"
	// WriterNodeID is the unique identifier for the manifest writer Graft node.
	WriterNodeID graft.ID = "adapter.config.manifest_writer"
)

func init() {
	graft.Register(graft.Node[domain.Toolchain]{
		ID:        ToolchainNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (domain.Toolchain, error) {
			return LoadToolchain(SettingsPath())
		},
	})

	graft.Register(graft.Node[ports.ManifestLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, ToolchainNodeID},
		Run: func(ctx context.Context) (ports.ManifestLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tc, err := graft.Dep[domain.Toolchain](ctx)
			if err != nil {
				return nil, err
			}
			return NewManifestLoader(log, tc), nil
		},
	})

	graft.Register(graft.Node[ports.ManifestWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID},
		Run: func(ctx context.Context) (ports.ManifestWriter, error) {
			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			return NewManifestWriter(fsys), nil
		},
	})
}
