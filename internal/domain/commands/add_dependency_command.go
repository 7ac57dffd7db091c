package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/repositories"
	infraRepos "github.com/castastrophe/monorepo-tooling-scripts/internal/infrastructure/repositories"
)

// AddDependency is the interface for the add-dep command.
type AddDependency interface {
	Execute(ctx context.Context, opts AddDependencyOptions) error
}

// AddDependencyOptions holds runtime options for the add-dep command.
type AddDependencyOptions struct {
	ConfigPath     string
	Package        string // workspace receiving the dependency; defaults to the current one
	Dependency     string // "name" or "name@version"
	Dev            bool
	DryRun         bool
	Verbose        bool
	PackageManager string
}

// AddDependencyCommand adds a dependency to one workspace through the package manager.
type AddDependencyCommand struct {
	workspaces      repositories.WorkspaceRepository
	manifests       repositories.ManifestRepository
	packageManagers *infraRepos.PackageManagerRegistry
}

// NewAddDependencyCommand creates a new AddDependencyCommand.
func NewAddDependencyCommand(
	workspaces repositories.WorkspaceRepository,
	manifests repositories.ManifestRepository,
	packageManagers *infraRepos.PackageManagerRegistry,
) *AddDependencyCommand {
	return &AddDependencyCommand{
		workspaces:      workspaces,
		manifests:       manifests,
		packageManagers: packageManagers,
	}
}

// Execute resolves the target workspace and dependency names and runs the
// package manager.
func (it *AddDependencyCommand) Execute(ctx context.Context, opts AddDependencyOptions) error {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	root, err := it.workspaces.Root()
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}

	settings, err := entities.LoadSettings(opts.ConfigPath, root)
	if err != nil {
		return err
	}
	if opts.PackageManager != "" {
		settings.PackageManager = opts.PackageManager
	}

	pkg, err := it.resolvePackage(root, settings, opts.Package)
	if err != nil {
		return err
	}

	name, version := splitSpec(opts.Dependency)
	if name == "" {
		return errors.New("dependency name is required")
	}

	kind := entities.KindDependency
	if opts.Dev {
		kind = entities.KindDevDependency
	}
	input := entities.AddInput{
		Workspace:  pkg,
		Dependency: entities.QualifyName(name, settings.DependencyScope),
		Version:    version,
		Kind:       kind,
	}

	pm, err := it.packageManagers.Resolve(settings.PackageManager, root)
	if err != nil {
		return err
	}
	logger.Info(strings.Join(pm.Command(input), " "))

	if opts.DryRun {
		logger.Infof("[DRY RUN] Would add %s to %s", input.Spec(), pkg)
		return nil
	}

	if _, addErr := pm.Add(ctx, root, input); addErr != nil {
		return fmt.Errorf("failed to add %s to %s: %w", input.Spec(), pkg, addErr)
	}

	logger.Infof("%s added successfully to %s", input.Spec(), pkg)
	return nil
}

// resolvePackage returns the full name of the target workspace package.
//
// Without a name, the workspace containing the invocation directory is used.
// Bare names are looked up under each configured scope directory: the
// workspace's own manifest name wins, otherwise the directory's scope is
// prefixed.
func (it *AddDependencyCommand) resolvePackage(
	root string,
	settings *entities.Settings,
	name string,
) (string, error) {
	if name == "" {
		return it.currentPackage(root)
	}
	if strings.Contains(name, "/") {
		return name, nil
	}

	for _, scope := range settings.Scopes {
		dir := filepath.Join(root, scope.Directory, name)
		manifest, err := it.manifests.Read(entities.ManifestPath(dir))
		if err != nil {
			continue
		}
		if manifest.Name != "" {
			return manifest.Name, nil
		}
		return entities.QualifyName(name, scope.Scope), nil
	}

	return name, nil
}

func (it *AddDependencyCommand) currentPackage(root string) (string, error) {
	cwd, err := it.workspaces.InvocationDir()
	if err != nil {
		return "", err
	}

	dirs, err := it.workspaces.Discover(root)
	if err != nil {
		return "", fmt.Errorf("failed to discover workspaces: %w", err)
	}

	dir, ok := entities.WorkspaceForPath(dirs, cwd)
	if !ok {
		return "", errors.New("package name not found; run from inside a workspace or pass it explicitly")
	}

	manifest, err := it.manifests.Read(entities.ManifestPath(dir))
	if err != nil {
		return "", err
	}
	if manifest.Name == "" {
		return "", fmt.Errorf("workspace %s has no package name", dir)
	}
	return manifest.Name, nil
}

// splitSpec splits "name@version" keeping the leading "@" of scoped names.
func splitSpec(spec string) (string, string) {
	spec = strings.TrimSpace(spec)
	if idx := strings.LastIndex(spec, "@"); idx > 0 {
		return spec[:idx], spec[idx+1:]
	}
	return spec, ""
}
