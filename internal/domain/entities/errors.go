package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidVersionFormat is returned when a declared version cannot be
	// decomposed into numeric major.minor.patch components.
	ErrInvalidVersionFormat = errors.New("invalid version format")

	// ErrVersionsMisaligned is returned in check mode when at least one
	// dependency is declared with more than one version.
	ErrVersionsMisaligned = errors.New("dependency versions are not aligned")

	// ErrUpgradesFailed is returned when at least one upgrade action failed.
	ErrUpgradesFailed = errors.New("one or more upgrades failed")

	// ErrNoPackageManager is returned when no package manager matches the project.
	ErrNoPackageManager = errors.New("no package manager available")

	// ErrPackageManagerOutput marks a package manager run that exited cleanly
	// but reported an error on stderr.
	ErrPackageManagerOutput = errors.New("package manager reported an error")
)

// ManifestReadError reports a manifest that is missing or is not valid JSON.
type ManifestReadError struct {
	Path string
	Err  error
}

func (e *ManifestReadError) Error() string {
	return fmt.Sprintf("failed to read manifest %q: %v", e.Path, e.Err)
}

func (e *ManifestReadError) Unwrap() error { return e.Err }

// UpgradeExecutionError reports a single upgrade action that could not be applied.
type UpgradeExecutionError struct {
	Action UpgradeAction
	Output string
	Err    error
}

func (e *UpgradeExecutionError) Error() string {
	return fmt.Sprintf(
		"failed to upgrade %s to %s in %s: %v",
		e.Action.DependencyName, e.Action.ToVersion, e.Action.Consumer, e.Err,
	)
}

func (e *UpgradeExecutionError) Unwrap() error { return e.Err }
