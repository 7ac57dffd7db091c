package entities

import "slices"

// DependencyKind identifies the manifest section a dependency is declared in.
type DependencyKind string

const (
	KindDependency    DependencyKind = "dependencies"
	KindDevDependency DependencyKind = "devDependencies"
)

// Kinds returns the dependency kinds in the order manifests are folded.
func Kinds() []DependencyKind {
	return []DependencyKind{KindDependency, KindDevDependency}
}

// IsDev reports whether the kind is the development section.
func (k DependencyKind) IsDev() bool { return k == KindDevDependency }

func (k DependencyKind) String() string { return string(k) }

// Declaration is a single "name": "version" entry of a manifest section.
type Declaration struct {
	Name    string
	Version string
}

// Manifest is a workspace package.json reduced to what version reconciliation needs.
// Declarations keep the order in which they appear in the file.
type Manifest struct {
	Name            string
	Path            string
	Dependencies    []Declaration
	DevDependencies []Declaration
}

// Declarations returns the entries of the given section.
func (m Manifest) Declarations(kind DependencyKind) []Declaration {
	if kind.IsDev() {
		return m.DevDependencies
	}
	return m.Dependencies
}

// Version returns the version declared for name in the given section.
func (m Manifest) Version(kind DependencyKind, name string) (string, bool) {
	for _, declaration := range m.Declarations(kind) {
		if declaration.Name == name {
			return declaration.Version, true
		}
	}
	return "", false
}

// WithVersion returns a copy of the manifest where the entry for name in the
// given section is set to version. Unknown names are left untouched.
func (m Manifest) WithVersion(kind DependencyKind, name, version string) Manifest {
	updated := m
	declarations := slices.Clone(m.Declarations(kind))
	for i := range declarations {
		if declarations[i].Name == name {
			declarations[i].Version = version
		}
	}

	if kind.IsDev() {
		updated.DevDependencies = declarations
	} else {
		updated.Dependencies = declarations
	}
	return updated
}
