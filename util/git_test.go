package util

import (
	"os"
	"path/filepath"
	"testing"
)

func writeHead(t *testing.T, root, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".git", "HEAD"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCurrentBranch(t *testing.T) {
	root := t.TempDir()
	writeHead(t, root, "ref: refs/heads/feature/login\n")

	if got := CurrentBranch(root); got != "feature/login" {
		t.Errorf("Expected feature/login, got %q", got)
	}
}

func TestCurrentBranchDetachedHead(t *testing.T) {
	root := t.TempDir()
	writeHead(t, root, "f3c2a1b4d5e6f3c2a1b4d5e6f3c2a1b4d5e6f3c2\n")

	if got := CurrentBranch(root); got != "" {
		t.Errorf("Expected empty branch for detached HEAD, got %q", got)
	}
}

func TestCurrentBranchNoRepo(t *testing.T) {
	if got := CurrentBranch(t.TempDir()); got != "" {
		t.Errorf("Expected empty branch without a repo, got %q", got)
	}
}

func TestProjectName(t *testing.T) {
	if got := ProjectName("/home/dev/my-app"); got != "my-app" {
		t.Errorf("Expected my-app, got %q", got)
	}
}
