package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/commands"
	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
)

// LintVersionsController handles the "lint-versions" subcommand.
type LintVersionsController struct {
	command commands.LintVersions
}

// NewLintVersionsController creates a new LintVersionsController.
func NewLintVersionsController(command commands.LintVersions) *LintVersionsController {
	return &LintVersionsController{command: command}
}

// GetBind returns the Cobra command metadata for the lint-versions controller.
func (it *LintVersionsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "lint-versions",
		Short: "Align dependency versions across workspaces",
		Long: `Read the package.json of the project root and of every workspace,
find dependencies declared with more than one version, and upgrade every
consumer to the highest declared version.

Local references (file:, link:) are never touched. Versions that cannot be
parsed are reported and left as they are.

Use --check in CI to fail on mismatches without changing anything.`,
	}
}

// AddFlags adds the lint-versions flags to the given Cobra command.
func (it *LintVersionsController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("check", false, "Fail if versions are not aligned, without upgrading")
	cmd.Flags().Bool("write", false, "Rewrite package.json files directly instead of calling the package manager")
	cmd.Flags().String("package-manager", "", "Package manager to use (yarn, npm, pnpm; default: detect)")
	cmd.Flags().Int("concurrency", 0,
		"Number of package manager runs in parallel (default: from config, 1); "+
			"parallel runs share one lockfile and node_modules and may overwrite each other's changes")
	cmd.Flags().Duration("timeout", 0, "Timeout for each package manager run (default: from config, 5m)")
	cmd.Flags().StringSlice("ignore", nil, "Dependency name globs to leave alone (repeatable)")
}

// Execute runs the lint-versions command.
func (it *LintVersionsController) Execute(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	check, _ := cmd.Flags().GetBool("check")
	write, _ := cmd.Flags().GetBool("write")
	packageManager, _ := cmd.Flags().GetString("package-manager")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	ignore, _ := cmd.Flags().GetStringSlice("ignore")

	_, err := it.command.Execute(context.Background(), commands.LintVersionsOptions{
		ConfigPath:     configPath,
		DryRun:         dryRun,
		Verbose:        verbose,
		Check:          check,
		Write:          write,
		PackageManager: packageManager,
		Concurrency:    concurrency,
		Timeout:        timeout,
		Ignore:         ignore,
	})
	return err
}
