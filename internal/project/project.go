// Package project describes the filesystem layout of a repository that
// receives hooks: its root, the staging directory and the live hooks
// directory.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultHooksDir is the staging directory used when none is configured.
const DefaultHooksDir = ".githooks"

// GitDirName is the name of the version-control metadata directory.
const GitDirName = ".git"

// Project is the immutable layout of one repository for a single run.
type Project struct {
	baseDir  string
	hooksDir string
}

// New builds a Project rooted at baseDir with hooks staged in hooksDir,
// which is interpreted relative to baseDir. A relative baseDir is resolved
// against the working directory and an empty hooksDir means
// DefaultHooksDir.
func New(baseDir, hooksDir string) (*Project, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		baseDir = wd
	}

	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory %q: %w", baseDir, err)
	}

	rel := stripTrailingSeparators(hooksDir)
	if rel == "" {
		rel = DefaultHooksDir
	}
	if filepath.IsAbs(rel) {
		return nil, fmt.Errorf("hooks directory %q must be relative to the project root", hooksDir)
	}

	base := stripTrailingSeparators(filepath.Clean(abs))
	return &Project{
		baseDir:  base,
		hooksDir: filepath.Join(base, filepath.Clean(rel)),
	}, nil
}

// BaseDir returns the absolute path to the repository root.
func (p *Project) BaseDir() string {
	return p.baseDir
}

// HooksDir returns the absolute path to the hooks staging directory.
func (p *Project) HooksDir() string {
	return p.hooksDir
}

// GitDir returns the path of the .git directory.
func (p *Project) GitDir() string {
	return filepath.Join(p.baseDir, GitDirName)
}

// TargetDir returns the live hooks directory, always <base>/.git/hooks.
func (p *Project) TargetDir() string {
	return filepath.Join(p.baseDir, GitDirName, "hooks")
}

// SourcePath returns the staged path for the named hook.
func (p *Project) SourcePath(hook string) string {
	return filepath.Join(p.hooksDir, hook)
}

// TargetPath returns the installed path for the named hook.
func (p *Project) TargetPath(hook string) string {
	return filepath.Join(p.TargetDir(), hook)
}

// stripTrailingSeparators removes trailing path separators but leaves a
// bare root ("/") intact.
func stripTrailingSeparators(path string) string {
	trimmed := strings.TrimRight(path, `/\`)
	if trimmed == "" && path != "" {
		return path[:1]
	}
	return trimmed
}
