//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/commands"
)

// StubLintVersionsCommand is a stub implementation of commands.LintVersions.
type StubLintVersionsCommand struct {
	ExecuteCallCount int
	ExecuteResult    *commands.LintVersionsResult
	ExecuteErr       error
	LastOpts         commands.LintVersionsOptions
}

var _ commands.LintVersions = (*StubLintVersionsCommand)(nil)

func (s *StubLintVersionsCommand) Execute(
	_ context.Context,
	opts commands.LintVersionsOptions,
) (*commands.LintVersionsResult, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.ExecuteResult, s.ExecuteErr
}
