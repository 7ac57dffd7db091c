package packagemanager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/repositories"
)

// Package manager identifiers.
const (
	Yarn = "yarn"
	Npm  = "npm"
	Pnpm = "pnpm"
)

// CLIRepository drives a package manager through its command line.
type CLIRepository struct {
	name     string
	lockfile string
	args     func(input entities.AddInput) []string
	runner   CommandRunner
}

var _ repositories.PackageManagerRepository = (*CLIRepository)(nil)

// NewYarnRepository runs `yarn workspace <ws> add [-D] <dep>[@version]`.
func NewYarnRepository(runner CommandRunner) *CLIRepository {
	return &CLIRepository{
		name:     Yarn,
		lockfile: "yarn.lock",
		runner:   runner,
		args: func(input entities.AddInput) []string {
			args := []string{"workspace", input.Workspace, "add"}
			if input.Kind.IsDev() {
				args = append(args, "-D")
			}
			return append(args, input.Spec())
		},
	}
}

// NewNpmRepository runs `npm install [--save-dev] <dep>[@version] --workspace <ws>`.
func NewNpmRepository(runner CommandRunner) *CLIRepository {
	return &CLIRepository{
		name:     Npm,
		lockfile: "package-lock.json",
		runner:   runner,
		args: func(input entities.AddInput) []string {
			args := []string{"install"}
			if input.Kind.IsDev() {
				args = append(args, "--save-dev")
			}
			return append(args, input.Spec(), "--workspace", input.Workspace)
		},
	}
}

// NewPnpmRepository runs `pnpm --filter <ws> add [-D] <dep>[@version]`.
func NewPnpmRepository(runner CommandRunner) *CLIRepository {
	return &CLIRepository{
		name:     Pnpm,
		lockfile: "pnpm-lock.yaml",
		runner:   runner,
		args: func(input entities.AddInput) []string {
			args := []string{"--filter", input.Workspace, "add"}
			if input.Kind.IsDev() {
				args = append(args, "-D")
			}
			return append(args, input.Spec())
		},
	}
}

func (it *CLIRepository) Name() string { return it.name }

// Detect checks the corepack "packageManager" field of the root manifest and
// then the lockfile.
func (it *CLIRepository) Detect(root string) bool {
	if data, err := os.ReadFile(entities.ManifestPath(root)); err == nil {
		if declared := gjson.GetBytes(data, "packageManager").String(); declared != "" {
			return strings.HasPrefix(declared, it.name+"@")
		}
	}

	_, err := os.Stat(filepath.Join(root, it.lockfile))
	return err == nil
}

// Command returns the full command line for input.
func (it *CLIRepository) Command(input entities.AddInput) []string {
	return append([]string{it.name}, it.args(input)...)
}

// Add runs the package manager from root. A non-zero exit, or stderr lines
// mentioning "error", are reported as failures.
func (it *CLIRepository) Add(
	ctx context.Context,
	root string,
	input entities.AddInput,
) (entities.CommandOutput, error) {
	command := it.Command(input)
	logger.Debugf("[%s] Running: %s", it.name, strings.Join(command, " "))

	output, err := it.runner.Run(ctx, root, command[0], command[1:]...)
	if stdout := strings.TrimSpace(output.Stdout); stdout != "" {
		logger.Debugf("[%s] Output:\n%s", it.name, stdout)
	}

	errorLines := output.ErrorLines()
	for _, line := range errorLines {
		logger.Error(line)
	}

	if err != nil {
		return output, fmt.Errorf("%s exited: %w", it.name, err)
	}
	if len(errorLines) > 0 {
		return output, fmt.Errorf("%w: %s", entities.ErrPackageManagerOutput, strings.TrimSpace(errorLines[0]))
	}
	return output, nil
}
