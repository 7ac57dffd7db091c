//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
	"github.com/castastrophe/monorepo-tooling-scripts/internal/infrastructure/repositories/packagemanager"
)

// StubCommandRunner implements packagemanager.CommandRunner without spawning processes.
type StubCommandRunner struct {
	Output entities.CommandOutput
	Err    error
	Calls  []RunCall
}

// RunCall records a single invocation of Run.
type RunCall struct {
	Dir  string
	Name string
	Args []string
}

var _ packagemanager.CommandRunner = (*StubCommandRunner)(nil)

func (s *StubCommandRunner) Run(
	_ context.Context,
	dir, name string,
	args ...string,
) (entities.CommandOutput, error) {
	s.Calls = append(s.Calls, RunCall{Dir: dir, Name: name, Args: args})
	return s.Output, s.Err
}
