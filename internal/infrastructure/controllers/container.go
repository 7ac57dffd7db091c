package controllers

import (
	"go.uber.org/dig"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewLintVersionsController); err != nil {
		return err
	}
	if err := container.Provide(NewAddDependencyController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	lintVersionsController *LintVersionsController,
	addDependencyController *AddDependencyController,
) *[]entities.Controller {
	return &[]entities.Controller{
		lintVersionsController,
		addDependencyController,
	}
}
