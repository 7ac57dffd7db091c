//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/commands"
)

// StubAddDependencyCommand is a stub implementation of commands.AddDependency.
type StubAddDependencyCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastOpts         commands.AddDependencyOptions
}

var _ commands.AddDependency = (*StubAddDependencyCommand)(nil)

func (s *StubAddDependencyCommand) Execute(
	_ context.Context,
	opts commands.AddDependencyOptions,
) error {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.ExecuteErr
}
