package manifest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/repositories"
)

// JSONManifestRepository reads package.json files keeping the declaration
// order of dependency entries, and edits them without reformatting.
type JSONManifestRepository struct{}

var _ repositories.ManifestRepository = (*JSONManifestRepository)(nil)

// NewManifestRepository creates a JSONManifestRepository.
func NewManifestRepository() *JSONManifestRepository {
	return &JSONManifestRepository{}
}

// Read parses the manifest at path.
func (it *JSONManifestRepository) Read(path string) (entities.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entities.Manifest{}, &entities.ManifestReadError{Path: path, Err: err}
	}

	if !gjson.ValidBytes(data) {
		return entities.Manifest{}, &entities.ManifestReadError{Path: path, Err: errors.New("invalid JSON")}
	}

	document := gjson.ParseBytes(data)
	if !document.IsObject() {
		return entities.Manifest{}, &entities.ManifestReadError{
			Path: path,
			Err:  errors.New("manifest is not a JSON object"),
		}
	}

	return entities.Manifest{
		Name:            document.Get("name").String(),
		Path:            path,
		Dependencies:    declarations(document.Get(string(entities.KindDependency))),
		DevDependencies: declarations(document.Get(string(entities.KindDevDependency))),
	}, nil
}

// ReadAll parses every manifest, skipping the ones that cannot be read.
func (it *JSONManifestRepository) ReadAll(paths []string) []entities.Manifest {
	manifests := make([]entities.Manifest, 0, len(paths))
	for _, path := range paths {
		manifest, err := it.Read(path)
		if err != nil {
			logger.Debugf("Skipping manifest: %v", err)
			continue
		}
		logger.Debugf("Read versions from %s", path)
		manifests = append(manifests, manifest)
	}
	return manifests
}

// UpdateVersion sets the version of an existing entry.
func (it *JSONManifestRepository) UpdateVersion(
	path string,
	kind entities.DependencyKind,
	name, version string,
) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &entities.ManifestReadError{Path: path, Err: err}
	}

	entryPath := string(kind) + "." + escapePath(name)
	if !gjson.GetBytes(data, entryPath).Exists() {
		return fmt.Errorf("%s has no %s entry for %q", path, kind, name)
	}

	updated, setErr := sjson.SetBytes(data, entryPath, version)
	if setErr != nil {
		return fmt.Errorf("failed to set %s in %s: %w", name, path, setErr)
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		return fmt.Errorf("failed to stat %s: %w", path, statErr)
	}

	if writeErr := os.WriteFile(path, updated, info.Mode().Perm()); writeErr != nil {
		return fmt.Errorf("failed to write %s: %w", path, writeErr)
	}
	return nil
}

// declarations collects the string entries of a manifest section in file order.
func declarations(section gjson.Result) []entities.Declaration {
	if !section.IsObject() {
		return nil
	}

	var result []entities.Declaration
	section.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.String {
			result = append(result, entities.Declaration{Name: key.String(), Version: value.String()})
		}
		return true
	})
	return result
}

// escapePath escapes a package name so it is read as a single path component.
func escapePath(name string) string {
	var sb strings.Builder
	for _, r := range name {
		isPlain := r == '-' || r == '_' || r == '/' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !isPlain {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
