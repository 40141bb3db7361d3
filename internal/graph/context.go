package graph

import "strings"

const (
	DefaultProject = "default"
	DefaultBranch  = "main"
)

// ResolveContext builds the partition key that scopes every node and edge
// in the graph. Missing inputs fall back to "default"/"main".
//
// The ":" separator is reserved in project names: any colon in the project
// is replaced so that SplitContext can always recover the original pair by
// cutting at the first colon. Branch names may contain ":" freely.
func ResolveContext(project, branch string) string {
	if project == "" {
		project = DefaultProject
	}
	if branch == "" {
		branch = DefaultBranch
	}
	project = strings.ReplaceAll(project, ":", "-")
	return project + ":" + branch
}

// SplitContext recovers the (project, branch) pair from a context key.
// The project part never contains a colon, so the first colon is the
// separator; everything after it, colons included, is the branch.
func SplitContext(context string) (project, branch string) {
	project, branch, ok := strings.Cut(context, ":")
	if !ok {
		return context, DefaultBranch
	}
	return project, branch
}

// BranchPrefix returns the prefix shared by all contexts of a project.
func BranchPrefix(project string) string {
	if project == "" {
		project = DefaultProject
	}
	return strings.ReplaceAll(project, ":", "-") + ":"
}
