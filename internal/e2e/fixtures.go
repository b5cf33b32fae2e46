package e2e

import (
	"os"
	"path/filepath"
	"testing"
)

// Fixture provides helpers for creating test fixtures in E2E tests.
type Fixture struct {
	t       *testing.T
	baseDir string
}

// NewFixture creates a new fixture helper rooted at the given directory.
func NewFixture(t *testing.T, baseDir string) *Fixture {
	t.Helper()
	return &Fixture{
		t:       t,
		baseDir: baseDir,
	}
}

// WriteFile writes content to a file relative to the fixture base directory.
// It creates parent directories as needed.
func (f *Fixture) WriteFile(relPath, content string) string {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		f.t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0o600); err != nil {
		f.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}

	return fullPath
}

// MkdirAll creates a directory and all parent directories relative to the base.
func (f *Fixture) MkdirAll(relPath string) string {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)

	if err := os.MkdirAll(fullPath, 0o750); err != nil {
		f.t.Fatalf("failed to create directory %s: %v", fullPath, err)
	}

	return fullPath
}

// Path returns the full path for a relative path.
func (f *Fixture) Path(relPath string) string {
	return filepath.Join(f.baseDir, relPath)
}

// Exists returns true if the file or directory exists.
func (f *Fixture) Exists(relPath string) bool {
	f.t.Helper()
	_, err := os.Stat(filepath.Join(f.baseDir, relPath))
	return err == nil
}

// ReadFile reads and returns the content of a file.
func (f *Fixture) ReadFile(relPath string) string {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)

	// #nosec G304 - fullPath is constructed from trusted test fixture base and test-provided path
	data, err := os.ReadFile(fullPath)
	if err != nil {
		f.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}

	return string(data)
}

// Repo is a fixture for a repository with a .git directory and a
// .githooks staging directory.
type Repo struct {
	*Fixture
}

// Dir returns the repository root.
func (r *Repo) Dir() string {
	return r.baseDir
}

// Stage writes a hook into the staging directory.
func (r *Repo) Stage(hook, content string) string {
	r.t.Helper()
	return r.WriteFile(filepath.Join(".githooks", hook), content)
}

// Install writes a hook directly into .git/hooks, as if installed earlier.
func (r *Repo) Install(hook, content string) string {
	r.t.Helper()
	return r.WriteFile(filepath.Join(".git", "hooks", hook), content)
}

// HookPath returns the installed location of a hook.
func (r *Repo) HookPath(hook string) string {
	return r.Path(filepath.Join(".git", "hooks", hook))
}

// Installed returns the content of an installed hook.
func (r *Repo) Installed(hook string) string {
	r.t.Helper()
	return r.ReadFile(filepath.Join(".git", "hooks", hook))
}

// RepoFixture creates a repository with empty .git/hooks and .githooks directories.
func (h *Harness) RepoFixture() *Repo {
	h.t.Helper()

	r := &Repo{Fixture: NewFixture(h.t, h.t.TempDir())}
	r.MkdirAll(filepath.Join(".git", "hooks"))
	r.MkdirAll(".githooks")
	return r
}

// TempFixture creates a fixture helper for a new temporary directory.
func (h *Harness) TempFixture() *Fixture {
	h.t.Helper()
	return NewFixture(h.t, h.t.TempDir())
}
