package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/repositories"
	infraRepos "github.com/castastrophe/monorepo-tooling-scripts/internal/infrastructure/repositories"
)

// LintVersions is the interface for the lint-versions command.
type LintVersions interface {
	Execute(ctx context.Context, opts LintVersionsOptions) (*LintVersionsResult, error)
}

// LintVersionsOptions holds runtime options for a single lint-versions run.
// Zero values keep what the settings file says.
type LintVersionsOptions struct {
	ConfigPath     string
	DryRun         bool
	Verbose        bool
	Check          bool // report mismatches and fail instead of upgrading
	Write          bool // rewrite manifests instead of calling the package manager
	PackageManager string
	Concurrency    int
	Timeout        time.Duration
	Ignore         []string
}

// LintVersionsResult summarises a lint-versions run.
type LintVersionsResult struct {
	Actions   []entities.UpgradeAction
	Warnings  []error
	Report    entities.ExecutionReport
	Remaining int // mismatches still present after upgrading
}

// LintVersionsCommand finds dependencies declared with different versions
// across the workspaces and aligns them on the highest one.
type LintVersionsCommand struct {
	workspaces      repositories.WorkspaceRepository
	manifests       repositories.ManifestRepository
	packageManagers *infraRepos.PackageManagerRegistry
}

// NewLintVersionsCommand creates a new LintVersionsCommand.
func NewLintVersionsCommand(
	workspaces repositories.WorkspaceRepository,
	manifests repositories.ManifestRepository,
	packageManagers *infraRepos.PackageManagerRegistry,
) *LintVersionsCommand {
	return &LintVersionsCommand{
		workspaces:      workspaces,
		manifests:       manifests,
		packageManagers: packageManagers,
	}
}

// Execute runs the discovery -> reconcile -> upgrade -> verify cycle.
func (it *LintVersionsCommand) Execute(
	ctx context.Context,
	opts LintVersionsOptions,
) (*LintVersionsResult, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	root, err := it.workspaces.Root()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}
	logger.Debugf("Project root: %s", root)

	settings, err := entities.LoadSettings(opts.ConfigPath, root)
	if err != nil {
		return nil, err
	}
	applyLintOverrides(settings, opts)

	actions, warnings, err := it.plan(root, settings)
	if err != nil {
		return nil, err
	}
	for _, warning := range warnings {
		logger.Warnf("%v", warning)
	}

	result := &LintVersionsResult{Actions: actions, Warnings: warnings}
	if len(actions) == 0 {
		logger.Info("All versions aligned")
		return result, nil
	}

	if opts.Check || opts.DryRun {
		prefix := ""
		if opts.DryRun {
			prefix = "[DRY RUN] "
		}
		for _, action := range actions {
			logger.Infof("%s%s", prefix, action)
		}
		if opts.Check {
			return result, fmt.Errorf("%w: %d upgrades needed", entities.ErrVersionsMisaligned, len(actions))
		}
		return result, nil
	}

	executor, err := it.newExecutor(root, settings, opts)
	if err != nil {
		return result, err
	}
	result.Report = executor.Execute(ctx, actions)

	remaining, _, verifyErr := it.plan(root, settings)
	if verifyErr != nil {
		logger.Warnf("failed to verify alignment: %v", verifyErr)
	} else {
		result.Remaining = len(remaining)
		if result.Remaining > 0 {
			logger.Warnf("%d version mismatches remain after upgrading", result.Remaining)
		}
	}

	if failed := result.Report.Failed(); len(failed) > 0 {
		logger.Errorf("%d of %d upgrades failed", len(failed), len(actions))
		return result, fmt.Errorf("%w: %d of %d", entities.ErrUpgradesFailed, len(failed), len(actions))
	}

	logger.Info("All versions now aligned")
	return result, nil
}

// plan reads the root and workspace manifests and reconciles their versions.
func (it *LintVersionsCommand) plan(
	root string,
	settings *entities.Settings,
) ([]entities.UpgradeAction, []error, error) {
	dirs, err := it.workspaces.Discover(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to discover workspaces: %w", err)
	}

	paths := make([]string, 0, len(dirs)+1)
	paths = append(paths, entities.ManifestPath(root))
	for _, dir := range dirs {
		paths = append(paths, entities.ManifestPath(dir))
	}

	manifests := it.manifests.ReadAll(paths)
	index, err := entities.BuildIndex(manifests, entities.WithLocalMarkers(settings.LocalMarkers...)).
		Exclude(settings.Ignore)
	if err != nil {
		return nil, nil, err
	}
	logger.Debugf("Parsing %d dependencies from %d manifests for version mismatches...", index.Len(), len(manifests))

	for _, name := range index.Names() {
		buckets, _ := index.Get(name)
		if buckets.Len() > 1 {
			logger.Debugf("%s has %d versions: %s", name, buckets.Len(), strings.Join(buckets.Versions(), ", "))
		}
	}

	actions, warnings := entities.Reconcile(index)
	return actions, warnings, nil
}

func (it *LintVersionsCommand) newExecutor(
	root string,
	settings *entities.Settings,
	opts LintVersionsOptions,
) (*UpgradeExecutor, error) {
	if opts.Write {
		// several actions may target the same file
		return NewUpgradeExecutor(NewManifestApplier(it.manifests), 1, settings.ActionTimeout()), nil
	}

	pm, err := it.packageManagers.Resolve(settings.PackageManager, root)
	if err != nil {
		return nil, err
	}
	logger.Infof("Using package manager: %s", pm.Name())
	if settings.Concurrency > 1 {
		logger.Warnf(
			"Running %d %s processes in parallel; they share the lockfile and node_modules of %s",
			settings.Concurrency, pm.Name(), root,
		)
	}

	return NewUpgradeExecutor(
		NewPackageManagerApplier(pm, root), settings.Concurrency, settings.ActionTimeout(),
	), nil
}

func applyLintOverrides(settings *entities.Settings, opts LintVersionsOptions) {
	if opts.PackageManager != "" {
		settings.PackageManager = opts.PackageManager
	}
	if opts.Concurrency > 0 {
		settings.Concurrency = opts.Concurrency
	}
	if opts.Timeout > 0 {
		settings.SetTimeout(opts.Timeout)
	}
	settings.Ignore = append(settings.Ignore, opts.Ignore...)
}
