package workspace

// NewWorkspaceRepositoryWithEnv builds a repository with a fake environment for testing.
func NewWorkspaceRepositoryWithEnv(env map[string]string, wd string) *FileSystemRepository {
	return &FileSystemRepository{
		getenv: func(key string) string { return env[key] },
		getwd:  func() (string, error) { return wd, nil },
	}
}
