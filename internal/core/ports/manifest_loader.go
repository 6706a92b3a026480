package ports

import "go.trai.ch/cargoc/internal/core/domain"

// ManifestLoader defines the interface for loading project manifests.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads the Cargoc.toml of the project in dir, applies defaults and validates it.
	Load(dir string) (*domain.ProjectManifest, error)
}
