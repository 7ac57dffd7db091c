package repositories

import (
	"fmt"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
	domainRepos "github.com/castastrophe/monorepo-tooling-scripts/internal/domain/repositories"
)

// PackageManagerRegistry manages all registered package manager implementations.
// Registration order is the detection priority.
type PackageManagerRegistry struct {
	managers map[string]domainRepos.PackageManagerRepository
	order    []string
	fallback string
}

// NewPackageManagerRegistry creates an empty registry. fallback names the
// package manager used when none is detected.
func NewPackageManagerRegistry(fallback string) *PackageManagerRegistry {
	return &PackageManagerRegistry{
		managers: make(map[string]domainRepos.PackageManagerRepository),
		fallback: fallback,
	}
}

// Register adds a package manager under its name.
func (r *PackageManagerRegistry) Register(pm domainRepos.PackageManagerRepository) {
	if _, exists := r.managers[pm.Name()]; !exists {
		r.order = append(r.order, pm.Name())
	}
	r.managers[pm.Name()] = pm
}

// Get returns the package manager with the given name, or nil if not registered.
func (r *PackageManagerRegistry) Get(name string) domainRepos.PackageManagerRepository {
	return r.managers[name]
}

// All returns every registered package manager in registration order.
func (r *PackageManagerRegistry) All() []domainRepos.PackageManagerRepository {
	result := make([]domainRepos.PackageManagerRepository, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.managers[name])
	}
	return result
}

// Names returns the registered package manager names in registration order.
func (r *PackageManagerRegistry) Names() []string {
	return append([]string(nil), r.order...)
}

// Resolve returns the named package manager, or the first one detecting the
// project at root, or the fallback.
func (r *PackageManagerRegistry) Resolve(name, root string) (domainRepos.PackageManagerRepository, error) {
	if name != "" {
		if pm := r.Get(name); pm != nil {
			return pm, nil
		}
		return nil, fmt.Errorf("%w: unknown package manager %q (known: %v)", entities.ErrNoPackageManager, name, r.order)
	}

	for _, pm := range r.All() {
		if pm.Detect(root) {
			return pm, nil
		}
	}

	if pm := r.Get(r.fallback); pm != nil {
		return pm, nil
	}
	return nil, fmt.Errorf("%w: nothing detected in %s", entities.ErrNoPackageManager, root)
}
