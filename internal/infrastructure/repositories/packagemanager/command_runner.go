package packagemanager

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
)

// CommandRunner runs an external program in a directory.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (entities.CommandOutput, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner creates an ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and captures stdout and stderr separately.
func (it *ExecRunner) Run(
	ctx context.Context,
	dir, name string,
	args ...string,
) (entities.CommandOutput, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return entities.CommandOutput{Stdout: stdout.String(), Stderr: stderr.String()}, err
}
