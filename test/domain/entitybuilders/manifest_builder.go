//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"slices"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
)

// ManifestBuilder helps create test manifests with a fluent interface.
type ManifestBuilder struct {
	*testkit.BaseBuilder
	name            string
	path            string
	dependencies    []entities.Declaration
	devDependencies []entities.Declaration
}

// NewManifestBuilder creates a new manifest builder with sensible defaults.
func NewManifestBuilder() *ManifestBuilder {
	return &ManifestBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "test-package",
		path:        "packages/test-package/package.json",
	}
}

// WithName sets the package name.
func (b *ManifestBuilder) WithName(name string) *ManifestBuilder {
	b.name = name
	return b
}

// WithPath sets the manifest path.
func (b *ManifestBuilder) WithPath(path string) *ManifestBuilder {
	b.path = path
	return b
}

// WithDependency appends a "dependencies" entry.
func (b *ManifestBuilder) WithDependency(name, version string) *ManifestBuilder {
	b.dependencies = append(b.dependencies, entities.Declaration{Name: name, Version: version})
	return b
}

// WithDevDependency appends a "devDependencies" entry.
func (b *ManifestBuilder) WithDevDependency(name, version string) *ManifestBuilder {
	b.devDependencies = append(b.devDependencies, entities.Declaration{Name: name, Version: version})
	return b
}

// Build creates the manifest (satisfies testkit.Builder interface).
func (b *ManifestBuilder) Build() interface{} {
	return b.BuildManifest()
}

// BuildManifest creates the manifest with a concrete return type.
func (b *ManifestBuilder) BuildManifest() entities.Manifest {
	return entities.Manifest{
		Name:            b.name,
		Path:            b.path,
		Dependencies:    slices.Clone(b.dependencies),
		DevDependencies: slices.Clone(b.devDependencies),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ManifestBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "test-package"
	b.path = "packages/test-package/package.json"
	b.dependencies = nil
	b.devDependencies = nil
	return b
}

// Clone creates a deep copy of the ManifestBuilder.
func (b *ManifestBuilder) Clone() testkit.Builder {
	return &ManifestBuilder{
		BaseBuilder:     b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:            b.name,
		path:            b.path,
		dependencies:    slices.Clone(b.dependencies),
		devDependencies: slices.Clone(b.devDependencies),
	}
}
