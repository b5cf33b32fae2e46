// Package gitrepo creates the .git directory hooks are installed into.
package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/klauern/hooksync/internal/logging"
)

// DefaultBinary is the git executable used by CommandInitializer.
const DefaultBinary = "git"

// ErrAlreadyInitialized is returned when dir already holds a repository.
var ErrAlreadyInitialized = errors.New("repository already initialized")

// Initializer creates an empty repository in a directory.
type Initializer interface {
	Init(ctx context.Context, dir string) error
}

// HasGitDir reports whether dir contains a .git directory.
func HasGitDir(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// GoGitInitializer initializes repositories in-process with go-git.
type GoGitInitializer struct{}

// Init implements Initializer.
func (GoGitInitializer) Init(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := git.PlainInit(dir, false); err != nil {
		if errors.Is(err, git.ErrRepositoryAlreadyExists) {
			return fmt.Errorf("%w: %s", ErrAlreadyInitialized, dir)
		}
		return fmt.Errorf("failed to initialize repository in %s: %w", dir, err)
	}

	logging.Info("initialized repository", logging.Path(dir), logging.Operation("init"))
	return nil
}

// CommandInitializer initializes repositories by running `git init`.
type CommandInitializer struct {
	// Binary is the git executable. Defaults to DefaultBinary.
	Binary string
}

// Init implements Initializer.
func (c CommandInitializer) Init(ctx context.Context, dir string) error {
	if HasGitDir(dir) {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, dir)
	}

	binary := c.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	var stderr bytes.Buffer
	// #nosec G204 - binary is chosen by the user running the command
	cmd := exec.CommandContext(ctx, binary, "init", dir)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s init failed: %w: %s", binary, err, msg)
		}
		return fmt.Errorf("%s init failed: %w", binary, err)
	}

	logging.Info("initialized repository",
		logging.Path(dir),
		logging.Operation("init"),
		slog.String("binary", binary),
	)
	return nil
}
