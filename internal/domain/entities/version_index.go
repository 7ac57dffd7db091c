package entities

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Consumer is a workspace declaring a dependency at a given version.
type Consumer struct {
	Name         string
	Kind         DependencyKind
	ManifestPath string
}

// VersionBuckets groups the consumers of one dependency by declared version.
// Versions keep the order in which they were first seen.
type VersionBuckets struct {
	versions  []string
	consumers map[string][]Consumer
}

// Versions returns the distinct declared versions in first-seen order.
func (b *VersionBuckets) Versions() []string { return slices.Clone(b.versions) }

// Consumers returns the consumers that declared version, in processing order.
func (b *VersionBuckets) Consumers(version string) []Consumer {
	return slices.Clone(b.consumers[version])
}

// Len returns the number of distinct versions.
func (b *VersionBuckets) Len() int { return len(b.versions) }

func (b *VersionBuckets) add(version string, consumer Consumer) {
	if _, ok := b.consumers[version]; !ok {
		b.versions = append(b.versions, version)
	}
	b.consumers[version] = append(b.consumers[version], consumer)
}

// VersionIndex maps every dependency name to the versions declared for it
// across all workspaces. It is built once by BuildIndex and only read afterwards.
type VersionIndex struct {
	names   []string
	entries map[string]*VersionBuckets
}

func newVersionIndex() *VersionIndex {
	return &VersionIndex{entries: make(map[string]*VersionBuckets)}
}

// Names returns the dependency names in first-seen order.
func (i *VersionIndex) Names() []string { return slices.Clone(i.names) }

// Get returns the version buckets for a dependency name.
func (i *VersionIndex) Get(name string) (*VersionBuckets, bool) {
	buckets, ok := i.entries[name]
	return buckets, ok
}

// Len returns the number of indexed dependency names.
func (i *VersionIndex) Len() int { return len(i.names) }

// Exclude returns a new index without the dependency names matching any of
// the given glob patterns (e.g. "typescript", "@types/*").
func (i *VersionIndex) Exclude(patterns []string) (*VersionIndex, error) {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	filtered := newVersionIndex()
	for _, name := range i.names {
		if matchesAny(name, patterns) {
			continue
		}
		filtered.names = append(filtered.names, name)
		filtered.entries[name] = i.entries[name]
	}
	return filtered, nil
}

func (i *VersionIndex) record(name, version string, consumer Consumer) {
	buckets, ok := i.entries[name]
	if !ok {
		buckets = &VersionBuckets{consumers: make(map[string][]Consumer)}
		i.entries[name] = buckets
		i.names = append(i.names, name)
	}
	buckets.add(version, consumer)
}

// IndexOption customises BuildIndex.
type IndexOption func(*indexOptions)

type indexOptions struct {
	localMarkers []string
}

// DefaultLocalMarkers are the version prefixes that point at a path on disk
// or a sibling workspace instead of a published release.
func DefaultLocalMarkers() []string { return []string{"file:", "link:", "workspace:"} }

// WithLocalMarkers replaces the markers used to recognise local references.
func WithLocalMarkers(markers ...string) IndexOption {
	return func(o *indexOptions) {
		o.localMarkers = markers
	}
}

// IsLocalReference reports whether version contains any of the markers.
func IsLocalReference(version string, markers []string) bool {
	for _, marker := range markers {
		if marker != "" && strings.Contains(version, marker) {
			return true
		}
	}
	return false
}

// BuildIndex folds the manifests into a VersionIndex. Manifests are processed
// in order, "dependencies" before "devDependencies". Empty versions and local
// references are skipped.
func BuildIndex(manifests []Manifest, opts ...IndexOption) *VersionIndex {
	options := indexOptions{localMarkers: DefaultLocalMarkers()}
	for _, opt := range opts {
		opt(&options)
	}

	index := newVersionIndex()
	for _, manifest := range manifests {
		for _, kind := range Kinds() {
			for _, declaration := range manifest.Declarations(kind) {
				if declaration.Version == "" || IsLocalReference(declaration.Version, options.localMarkers) {
					continue
				}
				index.record(declaration.Name, declaration.Version, Consumer{
					Name:         manifest.Name,
					Kind:         kind,
					ManifestPath: manifest.Path,
				})
			}
		}
	}
	return index
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
