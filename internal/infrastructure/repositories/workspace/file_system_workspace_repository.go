package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5"
	logger "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/entities"
	"github.com/castastrophe/monorepo-tooling-scripts/internal/domain/repositories"
)

const (
	envProjectCwd = "PROJECT_CWD"
	envInitCwd    = "INIT_CWD"
	nodeModules   = "node_modules"
)

// FileSystemRepository discovers workspaces from the "workspaces" field of
// the root package.json.
type FileSystemRepository struct {
	getenv func(string) string
	getwd  func() (string, error)
}

var _ repositories.WorkspaceRepository = (*FileSystemRepository)(nil)

// NewWorkspaceRepository creates a FileSystemRepository bound to the process environment.
func NewWorkspaceRepository() *FileSystemRepository {
	return &FileSystemRepository{getenv: os.Getenv, getwd: os.Getwd}
}

// Root resolves the project root, in order:
//  1. the PROJECT_CWD environment variable (set by yarn when running scripts);
//  2. the nearest ancestor whose package.json declares workspaces;
//  3. the enclosing git worktree;
//  4. the invocation directory.
func (it *FileSystemRepository) Root() (string, error) {
	if root := it.getenv(envProjectCwd); root != "" {
		return filepath.Abs(root)
	}

	dir, err := it.InvocationDir()
	if err != nil {
		return "", err
	}

	if root, ok := findWorkspaceRoot(dir); ok {
		return root, nil
	}

	repo, openErr := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if openErr == nil {
		if worktree, wtErr := repo.Worktree(); wtErr == nil {
			return worktree.Filesystem.Root(), nil
		}
	}

	logger.Debugf("No workspace root or git worktree around %s, using it as project root", dir)
	return dir, nil
}

// InvocationDir returns INIT_CWD when set, otherwise the working directory.
func (it *FileSystemRepository) InvocationDir() (string, error) {
	if dir := it.getenv(envInitCwd); dir != "" {
		return filepath.Abs(dir)
	}

	dir, err := it.getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return dir, nil
}

// Discover expands the workspace globs of the root manifest into absolute
// directories. Patterns prefixed with "!" exclude matches, and anything under
// node_modules is ignored.
func (it *FileSystemRepository) Discover(root string) ([]string, error) {
	data, err := os.ReadFile(entities.ManifestPath(root))
	if err != nil {
		return nil, fmt.Errorf("failed to read root manifest: %w", err)
	}

	includes, excludes := splitPatterns(workspacePatterns(gjson.GetBytes(data, "workspaces")))
	fsys := os.DirFS(root)

	var dirs []string
	for _, pattern := range includes {
		matches, globErr := doublestar.Glob(fsys, pattern)
		if globErr != nil {
			return nil, fmt.Errorf("invalid workspace pattern %q: %w", pattern, globErr)
		}

		for _, match := range matches {
			if isNodeModules(match) || isExcluded(match, excludes) || !isDir(fsys, match) {
				continue
			}
			dir := filepath.Join(root, filepath.FromSlash(match))
			if !slices.Contains(dirs, dir) {
				dirs = append(dirs, dir)
			}
		}
	}

	slices.Sort(dirs)
	return dirs, nil
}

// workspacePatterns supports both the array form and the yarn
// {"packages": [...]} form of the "workspaces" field.
func workspacePatterns(field gjson.Result) []string {
	if field.IsObject() {
		field = field.Get("packages")
	}
	if !field.IsArray() {
		return nil
	}

	var patterns []string
	for _, item := range field.Array() {
		if pattern := strings.TrimSpace(item.String()); pattern != "" {
			patterns = append(patterns, pattern)
		}
	}
	return patterns
}

func splitPatterns(patterns []string) ([]string, []string) {
	var includes, excludes []string
	for _, pattern := range patterns {
		if negated, ok := strings.CutPrefix(pattern, "!"); ok {
			excludes = append(excludes, cleanPattern(negated))
			continue
		}
		includes = append(includes, cleanPattern(pattern))
	}
	return includes, excludes
}

func cleanPattern(pattern string) string {
	return strings.TrimPrefix(path.Clean(filepath.ToSlash(pattern)), "./")
}

func isExcluded(match string, excludes []string) bool {
	for _, exclude := range excludes {
		if ok, _ := doublestar.Match(exclude, match); ok {
			return true
		}
	}
	return false
}

func isNodeModules(match string) bool {
	return slices.Contains(strings.Split(match, "/"), nodeModules)
}

func isDir(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && info.IsDir()
}

// findWorkspaceRoot walks up from dir to the first package.json declaring workspaces.
func findWorkspaceRoot(dir string) (string, bool) {
	for current := dir; ; {
		data, err := os.ReadFile(entities.ManifestPath(current))
		if err == nil && gjson.GetBytes(data, "workspaces").Exists() {
			return current, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}
