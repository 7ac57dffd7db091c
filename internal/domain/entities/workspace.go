package entities

import (
	"path/filepath"
	"strings"
)

// ManifestFile is the file name of a workspace manifest.
const ManifestFile = "package.json"

// ManifestPath returns the manifest location of a workspace directory.
func ManifestPath(dir string) string {
	return filepath.Join(dir, ManifestFile)
}

// WorkspaceForPath returns the deepest workspace directory containing path.
func WorkspaceForPath(dirs []string, path string) (string, bool) {
	best := ""
	for _, dir := range dirs {
		if !isWithin(dir, path) {
			continue
		}
		if len(dir) > len(best) {
			best = dir
		}
	}
	return best, best != ""
}

// QualifyName prefixes a bare package name with scope. Names that already
// carry a scope, and empty scopes, are returned unchanged.
func QualifyName(name, scope string) string {
	if name == "" || scope == "" || strings.Contains(name, "/") {
		return name
	}
	return strings.TrimSuffix(scope, "/") + "/" + name
}

func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
