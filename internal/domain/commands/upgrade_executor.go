package commands

import (
	"context"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/repositories"
)

// ActionApplier applies a single upgrade action.
type ActionApplier interface {
	Apply(ctx context.Context, action entities.UpgradeAction) error
}

// UpgradeExecutor applies upgrade actions one by one, or through a bounded
// worker pool when concurrency is greater than one. A failed action never
// stops the others and nothing is rolled back.
type UpgradeExecutor struct {
	applier     ActionApplier
	concurrency int
	timeout     time.Duration
}

// NewUpgradeExecutor creates an executor. A zero timeout disables the per-action deadline.
func NewUpgradeExecutor(applier ActionApplier, concurrency int, timeout time.Duration) *UpgradeExecutor {
	return &UpgradeExecutor{
		applier:     applier,
		concurrency: max(concurrency, 1),
		timeout:     timeout,
	}
}

// Execute applies every action and reports the results in action order.
func (it *UpgradeExecutor) Execute(
	ctx context.Context,
	actions []entities.UpgradeAction,
) entities.ExecutionReport {
	results := make([]entities.ActionResult, len(actions))

	if it.concurrency == 1 {
		for i, action := range actions {
			results[i] = it.apply(ctx, action)
		}
		return entities.ExecutionReport{Results: results}
	}

	var group errgroup.Group
	group.SetLimit(it.concurrency)
	for i, action := range actions {
		group.Go(func() error {
			results[i] = it.apply(ctx, action)
			return nil
		})
	}
	_ = group.Wait()

	return entities.ExecutionReport{Results: results}
}

func (it *UpgradeExecutor) apply(ctx context.Context, action entities.UpgradeAction) entities.ActionResult {
	if err := ctx.Err(); err != nil {
		return entities.ActionResult{
			Action: action,
			Err:    &entities.UpgradeExecutionError{Action: action, Err: err},
		}
	}

	logger.Info(action.String())

	actionCtx := ctx
	if it.timeout > 0 {
		var cancel context.CancelFunc
		actionCtx, cancel = context.WithTimeout(ctx, it.timeout)
		defer cancel()
	}

	err := it.applier.Apply(actionCtx, action)
	if err != nil {
		logger.Errorf("%v", err)
	}
	return entities.ActionResult{Action: action, Err: err}
}

// PackageManagerApplier upgrades through the package manager's "add at version".
type PackageManagerApplier struct {
	packageManager repositories.PackageManagerRepository
	root           string
}

// NewPackageManagerApplier creates an applier running pm from root.
func NewPackageManagerApplier(pm repositories.PackageManagerRepository, root string) *PackageManagerApplier {
	return &PackageManagerApplier{packageManager: pm, root: root}
}

func (it *PackageManagerApplier) Apply(ctx context.Context, action entities.UpgradeAction) error {
	input := action.AddInput()
	logger.Infof("  %s", strings.Join(it.packageManager.Command(input), " "))

	output, err := it.packageManager.Add(ctx, it.root, input)
	if err != nil {
		return &entities.UpgradeExecutionError{Action: action, Output: output.Stderr, Err: err}
	}
	return nil
}

// ManifestApplier rewrites the manifest entry in place. The lockfile is left
// for the next install to refresh.
type ManifestApplier struct {
	manifests repositories.ManifestRepository
}

// NewManifestApplier creates an applier editing manifests directly.
func NewManifestApplier(manifests repositories.ManifestRepository) *ManifestApplier {
	return &ManifestApplier{manifests: manifests}
}

func (it *ManifestApplier) Apply(_ context.Context, action entities.UpgradeAction) error {
	err := it.manifests.UpdateVersion(action.ManifestPath, action.Kind, action.DependencyName, action.ToVersion)
	if err != nil {
		return &entities.UpgradeExecutionError{Action: action, Err: err}
	}
	return nil
}
