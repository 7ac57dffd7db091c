package entities

import "fmt"

// UpgradeAction asks for the consumer's entry of DependencyName under Kind to
// be rewritten from FromVersion to ToVersion.
type UpgradeAction struct {
	Consumer       string
	DependencyName string
	Kind           DependencyKind
	FromVersion    string
	ToVersion      string
	ManifestPath   string
}

func (a UpgradeAction) String() string {
	return fmt.Sprintf(
		"Upgrade %s from %s to %s in %s", a.DependencyName, a.FromVersion, a.ToVersion, a.Consumer,
	)
}

// AddInput converts the action into a package manager "add at version" request.
func (a UpgradeAction) AddInput() AddInput {
	return AddInput{
		Workspace:  a.Consumer,
		Dependency: a.DependencyName,
		Version:    a.ToVersion,
		Kind:       a.Kind,
	}
}

// Reconcile emits the actions that bring every dependency to its highest
// declared version.
//
// Dependencies with a single declared version are already aligned. Actions
// are ordered by dependency name (index order), then by declared version
// (first-seen order), then by consumer (processing order). Versions that
// cannot be parsed are never rewritten; they are reported in the second return
// value, one error per dependency. Consumers without a name cannot be
// addressed and are skipped.
func Reconcile(index *VersionIndex) ([]UpgradeAction, []error) {
	var (
		actions  []UpgradeAction
		warnings []error
	)

	for _, name := range index.names {
		buckets := index.entries[name]
		if buckets.Len() <= 1 {
			continue
		}

		canonical, err := HighestVersion(buckets.versions)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("%s: %w", name, err))
		}
		if canonical == "" {
			continue
		}

		for _, version := range buckets.versions {
			if version == canonical {
				continue
			}
			if _, parseErr := ParseVersion(version); parseErr != nil {
				continue
			}

			for _, consumer := range buckets.consumers[version] {
				if consumer.Name == "" {
					continue
				}
				actions = append(actions, UpgradeAction{
					Consumer:       consumer.Name,
					DependencyName: name,
					Kind:           consumer.Kind,
					FromVersion:    version,
					ToVersion:      canonical,
					ManifestPath:   consumer.ManifestPath,
				})
			}
		}
	}

	return actions, warnings
}

// ActionResult is the outcome of applying one UpgradeAction.
type ActionResult struct {
	Action UpgradeAction
	Err    error
}

// ExecutionReport collects the results of an upgrade run, in action order.
type ExecutionReport struct {
	Results []ActionResult
}

// Succeeded returns the actions that were applied.
func (r ExecutionReport) Succeeded() []UpgradeAction {
	var succeeded []UpgradeAction
	for _, result := range r.Results {
		if result.Err == nil {
			succeeded = append(succeeded, result.Action)
		}
	}
	return succeeded
}

// Failed returns the results that carry an error.
func (r ExecutionReport) Failed() []ActionResult {
	var failed []ActionResult
	for _, result := range r.Results {
		if result.Err != nil {
			failed = append(failed, result)
		}
	}
	return failed
}
