//go:build unit

package commands_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	logger "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/commands"
	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
)

// captureLogs records every entry written to the global logger during the test.
func captureLogs(t *testing.T) *logtest.Hook {
	t.Helper()
	hook := logtest.NewGlobal()
	t.Cleanup(func() {
		logger.StandardLogger().ReplaceHooks(make(logger.LevelHooks))
	})
	return hook
}

func messages(hook *logtest.Hook, level logger.Level) []string {
	var result []string
	for _, entry := range hook.AllEntries() {
		if entry.Level == level {
			result = append(result, entry.Message)
		}
	}
	return result
}

func containsMessage(lines []string, fragment string) bool {
	for _, line := range lines {
		if strings.Contains(line, fragment) {
			return true
		}
	}
	return false
}

//nolint:paralleltest // hooks into the global logger
func TestLintVersionsCommandLogging(t *testing.T) {
	t.Run("should list actions without the dry-run prefix in check mode", func(t *testing.T) {
		// given
		hook := captureLogs(t)
		f := newLintFixture(t)

		// when
		_, err := f.command.Execute(context.Background(), commands.LintVersionsOptions{Check: true})

		// then
		require.ErrorIs(t, err, entities.ErrVersionsMisaligned)
		infos := messages(hook, logger.InfoLevel)
		assert.Contains(t, infos, "Upgrade lodash from 4.17.0 to 4.17.21 in A")
		assert.False(t, containsMessage(infos, "[DRY RUN]"))
	})

	t.Run("should prefix listed actions in dry-run mode", func(t *testing.T) {
		// given
		hook := captureLogs(t)
		f := newLintFixture(t)

		// when
		_, err := f.command.Execute(context.Background(), commands.LintVersionsOptions{DryRun: true})

		// then
		require.NoError(t, err)
		assert.Contains(t, messages(hook, logger.InfoLevel), "[DRY RUN] Upgrade lodash from 4.17.0 to 4.17.21 in A")
	})

	t.Run("should warn when alignment cannot be verified after upgrading", func(t *testing.T) {
		// given
		hook := captureLogs(t)
		f := newLintFixture(t)
		upgrade := f.pm.OnAdd
		f.pm.OnAdd = func(input entities.AddInput) {
			upgrade(input)
			f.workspaces.DiscoverErr = errors.New("root manifest removed")
		}

		// when
		result, err := f.command.Execute(context.Background(), commands.LintVersionsOptions{})

		// then
		require.NoError(t, err)
		assert.Len(t, result.Report.Succeeded(), 2)
		assert.True(t, containsMessage(messages(hook, logger.WarnLevel), "failed to verify alignment"))
	})

	t.Run("should warn about shared lockfiles when running package managers in parallel", func(t *testing.T) {
		// given
		hook := captureLogs(t)
		f := newLintFixture(t)

		// when
		_, err := f.command.Execute(context.Background(), commands.LintVersionsOptions{Concurrency: 2})

		// then
		require.NoError(t, err)
		assert.True(t, containsMessage(messages(hook, logger.WarnLevel), "share the lockfile"))
	})

	t.Run("should not warn about lockfiles when running sequentially", func(t *testing.T) {
		// given
		hook := captureLogs(t)
		f := newLintFixture(t)

		// when
		_, err := f.command.Execute(context.Background(), commands.LintVersionsOptions{})

		// then
		require.NoError(t, err)
		assert.False(t, containsMessage(messages(hook, logger.WarnLevel), "share the lockfile"))
	})
}
