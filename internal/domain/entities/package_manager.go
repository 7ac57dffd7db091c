package entities

import "strings"

// AddInput describes one "add a dependency to a workspace" request.
type AddInput struct {
	Workspace  string
	Dependency string
	Version    string // optional; empty lets the package manager pick
	Kind       DependencyKind
}

// Spec returns the "name[@version]" argument passed to the package manager.
func (in AddInput) Spec() string {
	if in.Version == "" {
		return in.Dependency
	}
	return in.Dependency + "@" + in.Version
}

// CommandOutput holds what a package manager invocation printed.
type CommandOutput struct {
	Stdout string
	Stderr string
}

// ErrorLines returns the stderr lines mentioning an error.
func (o CommandOutput) ErrorLines() []string {
	var lines []string
	for _, line := range strings.Split(o.Stderr, "\n") {
		if strings.Contains(line, "error") {
			lines = append(lines, line)
		}
	}
	return lines
}
