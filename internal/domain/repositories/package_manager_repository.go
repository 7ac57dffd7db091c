package repositories

import (
	"context"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
)

// PackageManagerRepository abstracts a JavaScript package manager (yarn, npm, pnpm).
type PackageManagerRepository interface {
	// Name returns the package manager identifier (e.g. "yarn").
	Name() string

	// Detect returns true if the project at root is managed by this package manager.
	Detect(root string) bool

	// Command returns the command line that Add would run, for display.
	Command(input entities.AddInput) []string

	// Add adds or re-pins a dependency in a single workspace. The output is
	// returned even when the invocation fails.
	Add(ctx context.Context, root string, input entities.AddInput) (entities.CommandOutput, error)
}
