package util

import (
	"os"
	"path/filepath"
	"strings"
)

// FindGitRoot finds the root of the git repository starting from the current directory.
// Returns the current directory if .git is not found.
func FindGitRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			cwd, _ := os.Getwd()
			return cwd, nil
		}
		dir = parent
	}
}

// CurrentBranch reads the checked-out branch from .git/HEAD at the given
// repo root. Returns "" for detached HEAD or when the repo is missing,
// letting callers fall back to their default branch.
func CurrentBranch(root string) string {
	data, err := os.ReadFile(filepath.Join(root, ".git", "HEAD"))
	if err != nil {
		return ""
	}
	head := strings.TrimSpace(string(data))
	const refPrefix = "ref: refs/heads/"
	if !strings.HasPrefix(head, refPrefix) {
		return ""
	}
	return strings.TrimPrefix(head, refPrefix)
}

// ProjectName derives a default project name from the repo root's
// directory name.
func ProjectName(root string) string {
	name := filepath.Base(root)
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return name
}
