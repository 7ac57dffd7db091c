//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/commands"
	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
	doubles "github.com/castastrophe/monorepo-tooling-scripts/test/infrastructure/repositorydoubles"
)

// recordingApplier records applied actions and fails the consumers listed in failFor.
type recordingApplier struct {
	mu       sync.Mutex
	applied  []string
	failFor  map[string]error
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (a *recordingApplier) Apply(ctx context.Context, action entities.UpgradeAction) error {
	current := a.inFlight.Add(1)
	defer a.inFlight.Add(-1)
	for {
		peak := a.peak.Load()
		if current <= peak || a.peak.CompareAndSwap(peak, current) {
			break
		}
	}

	if a.delay > 0 {
		select {
		case <-time.After(a.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.applied = append(a.applied, action.Consumer)
	return a.failFor[action.Consumer]
}

func actionsFor(consumers ...string) []entities.UpgradeAction {
	actions := make([]entities.UpgradeAction, 0, len(consumers))
	for _, consumer := range consumers {
		actions = append(actions, entities.UpgradeAction{
			Consumer:       consumer,
			DependencyName: "lodash",
			Kind:           entities.KindDependency,
			FromVersion:    "4.17.0",
			ToVersion:      "4.17.21",
		})
	}
	return actions
}

func TestUpgradeExecutorExecute(t *testing.T) {
	t.Parallel()

	t.Run("should apply actions one by one in order", func(t *testing.T) {
		t.Parallel()

		// given
		applier := &recordingApplier{}
		executor := commands.NewUpgradeExecutor(applier, 1, time.Minute)

		// when
		report := executor.Execute(context.Background(), actionsFor("a", "b", "c"))

		// then
		assert.Equal(t, []string{"a", "b", "c"}, applier.applied)
		assert.Len(t, report.Succeeded(), 3)
		assert.Empty(t, report.Failed())
		assert.Equal(t, int32(1), applier.peak.Load())
	})

	t.Run("should keep going after a failed action", func(t *testing.T) {
		t.Parallel()

		// given
		applier := &recordingApplier{failFor: map[string]error{"b": errors.New("boom")}}
		executor := commands.NewUpgradeExecutor(applier, 1, 0)

		// when
		report := executor.Execute(context.Background(), actionsFor("a", "b", "c"))

		// then
		assert.Equal(t, []string{"a", "b", "c"}, applier.applied)
		failed := report.Failed()
		require.Len(t, failed, 1)
		assert.Equal(t, "b", failed[0].Action.Consumer)
		assert.Len(t, report.Succeeded(), 2)
	})

	t.Run("should bound parallel actions and keep results in action order", func(t *testing.T) {
		t.Parallel()

		// given
		applier := &recordingApplier{delay: 20 * time.Millisecond}
		executor := commands.NewUpgradeExecutor(applier, 2, time.Minute)
		actions := actionsFor("a", "b", "c", "d", "e")

		// when
		report := executor.Execute(context.Background(), actions)

		// then
		require.Len(t, report.Results, len(actions))
		for i, result := range report.Results {
			assert.Equal(t, actions[i], result.Action)
			require.NoError(t, result.Err)
		}
		assert.LessOrEqual(t, applier.peak.Load(), int32(2))
		assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e"}, applier.applied)
	})

	t.Run("should fail actions that exceed the timeout", func(t *testing.T) {
		t.Parallel()

		// given
		applier := &recordingApplier{delay: time.Second}
		executor := commands.NewUpgradeExecutor(applier, 1, 10*time.Millisecond)

		// when
		report := executor.Execute(context.Background(), actionsFor("slow"))

		// then
		failed := report.Failed()
		require.Len(t, failed, 1)
		assert.ErrorIs(t, failed[0].Err, context.DeadlineExceeded)
	})

	t.Run("should not start actions once the context is cancelled", func(t *testing.T) {
		t.Parallel()

		// given
		applier := &recordingApplier{}
		executor := commands.NewUpgradeExecutor(applier, 1, time.Minute)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		report := executor.Execute(ctx, actionsFor("a", "b"))

		// then
		assert.Empty(t, applier.applied)
		failed := report.Failed()
		require.Len(t, failed, 2)
		var execErr *entities.UpgradeExecutionError
		require.ErrorAs(t, failed[0].Err, &execErr)
		assert.ErrorIs(t, failed[0].Err, context.Canceled)
	})

	t.Run("should treat a zero concurrency as sequential", func(t *testing.T) {
		t.Parallel()

		// given
		applier := &recordingApplier{}
		executor := commands.NewUpgradeExecutor(applier, 0, 0)

		// when
		report := executor.Execute(context.Background(), actionsFor("a", "b"))

		// then
		assert.Equal(t, []string{"a", "b"}, applier.applied)
		assert.Len(t, report.Succeeded(), 2)
	})
}

func TestPackageManagerApplier(t *testing.T) {
	t.Parallel()

	t.Run("should add the target version to the consumer", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyPackageManagerRepository{PMName: "yarn"}
		applier := commands.NewPackageManagerApplier(spy, "/repo")
		action := entities.UpgradeAction{
			Consumer:       "app",
			DependencyName: "jest",
			Kind:           entities.KindDevDependency,
			ToVersion:      "29.7.0",
		}

		// when
		err := applier.Apply(context.Background(), action)

		// then
		require.NoError(t, err)
		require.Len(t, spy.AddInputs, 1)
		assert.Equal(t, action.AddInput(), spy.AddInputs[0])
		assert.Equal(t, []string{"/repo"}, spy.AddRootDirs)
	})

	t.Run("should wrap failures with the package manager output", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyPackageManagerRepository{
			PMName: "yarn",
			Output: entities.CommandOutput{Stderr: "error not found"},
			AddErr: entities.ErrPackageManagerOutput,
		}
		applier := commands.NewPackageManagerApplier(spy, "/repo")

		// when
		err := applier.Apply(context.Background(), entities.UpgradeAction{Consumer: "app", DependencyName: "x"})

		// then
		var execErr *entities.UpgradeExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, "error not found", execErr.Output)
		assert.ErrorIs(t, err, entities.ErrPackageManagerOutput)
	})
}

func TestManifestApplier(t *testing.T) {
	t.Parallel()

	t.Run("should rewrite the declaration in the consumer manifest", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := doubles.NewStubManifestRepository(entities.Manifest{
			Name:         "app",
			Path:         "app/package.json",
			Dependencies: []entities.Declaration{{Name: "react", Version: "17.0.0"}},
		})
		applier := commands.NewManifestApplier(manifests)

		// when
		err := applier.Apply(context.Background(), entities.UpgradeAction{
			Consumer:       "app",
			DependencyName: "react",
			Kind:           entities.KindDependency,
			ToVersion:      "18.2.0",
			ManifestPath:   "app/package.json",
		})

		// then
		require.NoError(t, err)
		version, _ := manifests.Manifests["app/package.json"].Version(entities.KindDependency, "react")
		assert.Equal(t, "18.2.0", version)
	})
}
