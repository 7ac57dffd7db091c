//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"errors"
	"fmt"
	"sync"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/repositories"
)

// StubManifestRepository is an in-memory implementation of repositories.ManifestRepository.
// UpdateVersion edits the stored manifests so a second read sees the change.
type StubManifestRepository struct {
	mu sync.Mutex

	// --- Read / ReadAll ---
	Manifests map[string]entities.Manifest // path -> manifest

	// --- UpdateVersion ---
	UpdateErr   error
	UpdateCalls []UpdateVersionCall
}

// UpdateVersionCall records a single invocation of UpdateVersion.
type UpdateVersionCall struct {
	Path    string
	Kind    entities.DependencyKind
	Name    string
	Version string
}

var _ repositories.ManifestRepository = (*StubManifestRepository)(nil)

// NewStubManifestRepository stores the given manifests under their Path.
func NewStubManifestRepository(manifests ...entities.Manifest) *StubManifestRepository {
	stub := &StubManifestRepository{Manifests: make(map[string]entities.Manifest)}
	for _, manifest := range manifests {
		stub.Manifests[manifest.Path] = manifest
	}
	return stub
}

func (s *StubManifestRepository) Read(path string) (entities.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	manifest, ok := s.Manifests[path]
	if !ok {
		return entities.Manifest{}, &entities.ManifestReadError{Path: path, Err: errors.New("not found")}
	}
	return manifest, nil
}

func (s *StubManifestRepository) ReadAll(paths []string) []entities.Manifest {
	var manifests []entities.Manifest
	for _, path := range paths {
		if manifest, err := s.Read(path); err == nil {
			manifests = append(manifests, manifest)
		}
	}
	return manifests
}

func (s *StubManifestRepository) UpdateVersion(
	path string,
	kind entities.DependencyKind,
	name, version string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.UpdateCalls = append(s.UpdateCalls, UpdateVersionCall{Path: path, Kind: kind, Name: name, Version: version})
	if s.UpdateErr != nil {
		return s.UpdateErr
	}

	manifest, ok := s.Manifests[path]
	if !ok {
		return fmt.Errorf("manifest %s not found", path)
	}
	s.Manifests[path] = manifest.WithVersion(kind, name, version)
	return nil
}
