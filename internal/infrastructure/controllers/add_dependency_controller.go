package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/commands"
	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
)

// AddDependencyController handles the "add-dep" subcommand.
type AddDependencyController struct {
	command commands.AddDependency
}

// NewAddDependencyController creates a new AddDependencyController.
func NewAddDependencyController(command commands.AddDependency) *AddDependencyController {
	return &AddDependencyController{command: command}
}

// GetBind returns the Cobra command metadata for the add-dep controller.
func (it *AddDependencyController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "add-dep [pkg] dep[@version]",
		Short: "Add a dependency to a workspace",
		Long: `Add a dependency to one workspace through the package manager.

With a single argument the dependency is added to the workspace containing
the current directory. Package names without a scope are resolved through
the "scopes" setting, dependency names without a scope get "dependency_scope".`,
	}
}

// AddFlags adds the add-dep flags to the given Cobra command.
func (it *AddDependencyController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("dev", "D", false, "Add as a devDependency")
	cmd.Flags().String("package-manager", "", "Package manager to use (yarn, npm, pnpm; default: detect)")
	cmd.Args = cobra.RangeArgs(1, 2) //nolint:mnd // [pkg] dep
}

// Execute runs the add-dep command.
func (it *AddDependencyController) Execute(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	dev, _ := cmd.Flags().GetBool("dev")
	packageManager, _ := cmd.Flags().GetString("package-manager")

	pkg, dep := "", args[len(args)-1]
	if len(args) > 1 {
		pkg = args[0]
	}

	return it.command.Execute(context.Background(), commands.AddDependencyOptions{
		ConfigPath:     configPath,
		Package:        pkg,
		Dependency:     dep,
		Dev:            dev,
		DryRun:         dryRun,
		Verbose:        verbose,
		PackageManager: packageManager,
	})
}
