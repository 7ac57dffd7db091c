package repositories

import (
	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
)

// ManifestRepository reads and edits workspace manifests on disk.
type ManifestRepository interface {
	// Read parses a single manifest. Failures are returned as *entities.ManifestReadError.
	Read(path string) (entities.Manifest, error)

	// ReadAll parses every path in order, skipping manifests that are missing
	// or cannot be parsed.
	ReadAll(paths []string) []entities.Manifest

	// UpdateVersion rewrites the version of an existing entry in place,
	// leaving the rest of the file untouched.
	UpdateVersion(path string, kind entities.DependencyKind, name, version string) error
}
