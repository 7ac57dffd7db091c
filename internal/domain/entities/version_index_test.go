//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
	builders "github.com/castastrophe/monorepo-tooling-scripts/test/domain/entitybuilders"
)

func TestBuildIndex(t *testing.T) {
	t.Parallel()

	t.Run("should group consumers by dependency and version", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := []entities.Manifest{
			builders.NewManifestBuilder().WithName("a").WithPath("a/package.json").
				WithDependency("lodash", "4.17.0").BuildManifest(),
			builders.NewManifestBuilder().WithName("b").WithPath("b/package.json").
				WithDevDependency("lodash", "4.17.21").BuildManifest(),
			builders.NewManifestBuilder().WithName("c").WithPath("c/package.json").
				WithDependency("lodash", "4.17.0").BuildManifest(),
		}

		// when
		index := entities.BuildIndex(manifests)

		// then
		buckets, ok := index.Get("lodash")
		require.True(t, ok)
		assert.Equal(t, []string{"4.17.0", "4.17.21"}, buckets.Versions())
		assert.Equal(t, []entities.Consumer{
			{Name: "a", Kind: entities.KindDependency, ManifestPath: "a/package.json"},
			{Name: "c", Kind: entities.KindDependency, ManifestPath: "c/package.json"},
		}, buckets.Consumers("4.17.0"))
		assert.Equal(t, []entities.Consumer{
			{Name: "b", Kind: entities.KindDevDependency, ManifestPath: "b/package.json"},
		}, buckets.Consumers("4.17.21"))
	})

	t.Run("should keep first-seen order of names with dependencies before devDependencies", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := []entities.Manifest{
			builders.NewManifestBuilder().
				WithDevDependency("zeta", "1.0.0").
				WithDependency("beta", "1.0.0").
				WithDependency("alpha", "1.0.0").
				BuildManifest(),
			builders.NewManifestBuilder().WithName("other").
				WithDependency("gamma", "1.0.0").
				WithDependency("alpha", "2.0.0").
				BuildManifest(),
		}

		// when
		index := entities.BuildIndex(manifests)

		// then
		assert.Equal(t, []string{"beta", "alpha", "zeta", "gamma"}, index.Names())
		assert.Equal(t, 4, index.Len())
	})

	t.Run("should skip local references and empty versions", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := []entities.Manifest{
			builders.NewManifestBuilder().
				WithDependency("local-a", "file:../local-a").
				WithDependency("local-b", "link:../local-b").
				WithDependency("empty", "").
				WithDependency("react", "18.2.0").
				BuildManifest(),
		}

		// when
		index := entities.BuildIndex(manifests)

		// then
		assert.Equal(t, []string{"react"}, index.Names())
	})

	t.Run("should skip workspace protocol versions by default", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := []entities.Manifest{
			builders.NewManifestBuilder().WithName("a").
				WithDependency("@acme/tokens", "workspace:^").
				WithDependency("react", "18.2.0").
				BuildManifest(),
			builders.NewManifestBuilder().WithName("b").
				WithDependency("@acme/tokens", "1.0.0").
				BuildManifest(),
		}

		// when
		index := entities.BuildIndex(manifests)
		actions, warnings := entities.Reconcile(index)

		// then
		buckets, ok := index.Get("@acme/tokens")
		require.True(t, ok)
		assert.Equal(t, []string{"1.0.0"}, buckets.Versions())
		assert.Empty(t, actions)
		assert.Empty(t, warnings)
	})

	t.Run("should use custom local markers when given", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := []entities.Manifest{
			builders.NewManifestBuilder().
				WithDependency("shared", "workspace:*").
				WithDependency("local", "file:../local").
				BuildManifest(),
		}

		// when
		index := entities.BuildIndex(manifests, entities.WithLocalMarkers("workspace:"))

		// then
		assert.Equal(t, []string{"local"}, index.Names())
	})

	t.Run("should return an empty index for no manifests", func(t *testing.T) {
		t.Parallel()

		// when
		index := entities.BuildIndex(nil)

		// then
		assert.Equal(t, 0, index.Len())
		assert.Empty(t, index.Names())
	})
}

func TestVersionIndexExclude(t *testing.T) {
	t.Parallel()

	index := entities.BuildIndex([]entities.Manifest{
		builders.NewManifestBuilder().
			WithDependency("react", "18.0.0").
			WithDependency("@types/node", "20.0.0").
			WithDependency("@types/react", "18.0.0").
			WithDependency("typescript", "5.0.0").
			BuildManifest(),
	})

	t.Run("should drop names matching the globs", func(t *testing.T) {
		t.Parallel()

		// when
		filtered, err := index.Exclude([]string{"@types/*", "typescript"})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"react"}, filtered.Names())
		assert.Equal(t, 4, index.Len(), "source index must not change")
	})

	t.Run("should keep everything without patterns", func(t *testing.T) {
		t.Parallel()

		// when
		filtered, err := index.Exclude(nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, index.Names(), filtered.Names())
	})

	t.Run("should reject invalid patterns", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := index.Exclude([]string{"[unclosed"})

		// then
		require.Error(t, err)
	})
}

func TestIsLocalReference(t *testing.T) {
	t.Parallel()

	t.Run("should match markers anywhere in the version", func(t *testing.T) {
		t.Parallel()

		// given
		markers := entities.DefaultLocalMarkers()

		// when / then
		assert.True(t, entities.IsLocalReference("file:../a", markers))
		assert.True(t, entities.IsLocalReference("npm:link:x", markers))
		assert.True(t, entities.IsLocalReference("workspace:*", markers))
		assert.False(t, entities.IsLocalReference("^1.0.0", markers))
		assert.False(t, entities.IsLocalReference("1.0.0", []string{""}))
	})
}
