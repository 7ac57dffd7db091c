package repositories

// WorkspaceRepository locates the project and its workspaces.
type WorkspaceRepository interface {
	// Root returns the absolute project root directory.
	Root() (string, error)

	// InvocationDir returns the directory the tool was invoked from.
	InvocationDir() (string, error)

	// Discover returns the absolute workspace directories declared by the
	// root manifest, in a stable order.
	Discover(root string) ([]string, error)
}
