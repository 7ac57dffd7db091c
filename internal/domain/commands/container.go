package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewLintVersionsCommand); err != nil {
		return err
	}
	if err := container.Provide(NewAddDependencyCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *LintVersionsCommand) LintVersions {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *AddDependencyCommand) AddDependency {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
