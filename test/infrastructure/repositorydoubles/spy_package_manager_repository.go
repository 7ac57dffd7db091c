//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/repositories"
)

// SpyPackageManagerRepository implements repositories.PackageManagerRepository as a configurable spy.
type SpyPackageManagerRepository struct {
	mu sync.Mutex

	// --- identity ---
	PMName string

	// --- Detect ---
	DetectResult bool

	// --- Add ---
	Output      entities.CommandOutput
	AddErr      error
	AddErrFor   map[string]error // workspace -> error
	OnAdd       func(input entities.AddInput)
	AddInputs   []entities.AddInput
	AddRootDirs []string
}

var _ repositories.PackageManagerRepository = (*SpyPackageManagerRepository)(nil)

func (s *SpyPackageManagerRepository) Name() string { return s.PMName }

func (s *SpyPackageManagerRepository) Detect(_ string) bool { return s.DetectResult }

func (s *SpyPackageManagerRepository) Command(input entities.AddInput) []string {
	return []string{s.PMName, "add", input.Workspace, input.Spec()}
}

func (s *SpyPackageManagerRepository) Add(
	_ context.Context,
	root string,
	input entities.AddInput,
) (entities.CommandOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.AddInputs = append(s.AddInputs, input)
	s.AddRootDirs = append(s.AddRootDirs, root)

	if err, ok := s.AddErrFor[input.Workspace]; ok {
		return s.Output, err
	}
	if s.AddErr != nil {
		return s.Output, s.AddErr
	}
	if s.OnAdd != nil {
		s.OnAdd(input)
	}
	return s.Output, nil
}

// Calls returns a copy of the recorded inputs.
func (s *SpyPackageManagerRepository) Calls() []entities.AddInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.AddInput(nil), s.AddInputs...)
}
