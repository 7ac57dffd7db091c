//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/repositories"
)

// StubWorkspaceRepository implements repositories.WorkspaceRepository with fixed answers.
type StubWorkspaceRepository struct {
	// --- Root ---
	RootDir string
	RootErr error

	// --- InvocationDir ---
	Cwd    string
	CwdErr error

	// --- Discover ---
	Dirs          []string
	DiscoverErr   error
	DiscoverCalls int
}

var _ repositories.WorkspaceRepository = (*StubWorkspaceRepository)(nil)

func (s *StubWorkspaceRepository) Root() (string, error) { return s.RootDir, s.RootErr }

func (s *StubWorkspaceRepository) InvocationDir() (string, error) { return s.Cwd, s.CwdErr }

func (s *StubWorkspaceRepository) Discover(_ string) ([]string, error) {
	s.DiscoverCalls++
	return s.Dirs, s.DiscoverErr
}
