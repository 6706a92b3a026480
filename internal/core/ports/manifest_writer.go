package ports

import "go.trai.ch/cargoc/internal/core/domain"

// ManifestWriter defines the interface for writing project manifests.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_writer.go -destination=mocks/mock_manifest_writer.go -package=mocks
type ManifestWriter interface {
	// Write creates dir/Cargoc.toml describing m.
	Write(dir string, m *domain.ProjectManifest) error
}
