package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/castastrophe/monorepo-tooling-scripts/internal/domain/repositories"
	manifestRepo "github.com/castastrophe/monorepo-tooling-scripts/internal/infrastructure/repositories/manifest"
	pmRepo "github.com/castastrophe/monorepo-tooling-scripts/internal/infrastructure/repositories/packagemanager"
	workspaceRepo "github.com/castastrophe/monorepo-tooling-scripts/internal/infrastructure/repositories/workspace"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(func() pmRepo.CommandRunner {
		return pmRepo.NewExecRunner()
	}); err != nil {
		return err
	}

	// Register package manager registry, in detection order
	if err := container.Provide(func(runner pmRepo.CommandRunner) *PackageManagerRegistry {
		reg := NewPackageManagerRegistry(pmRepo.Npm)
		reg.Register(pmRepo.NewPnpmRepository(runner))
		reg.Register(pmRepo.NewYarnRepository(runner))
		reg.Register(pmRepo.NewNpmRepository(runner))
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.ManifestRepository {
		return manifestRepo.NewManifestRepository()
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.WorkspaceRepository {
		return workspaceRepo.NewWorkspaceRepository()
	}); err != nil {
		return err
	}

	return nil
}
