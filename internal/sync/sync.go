package sync

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/klauern/hooksync/internal/logging"
	"github.com/klauern/hooksync/internal/project"
)

// hooksDirPerm is used when .git exists but .git/hooks does not.
const hooksDirPerm = 0o755

// Backuper saves an installed hook before it is overwritten.
type Backuper interface {
	Backup(hook, path string) error
}

// Options configures a Synchronizer.
type Options struct {
	// Fs is the filesystem to operate on. Defaults to the OS filesystem.
	Fs afero.Fs

	// Exclude lists doublestar patterns matched against staged entry names.
	// Matching entries are never installed or reported.
	Exclude []string

	// StopOnConflict ends a SynchronizeAll pass at the first conflict
	// instead of finishing the listing.
	StopOnConflict bool

	// Backuper, when set, receives every installed hook about to be
	// overwritten.
	Backuper Backuper
}

// Synchronizer copies staged hooks into the live hooks directory and keeps
// the bookkeeping for one session. It is not safe for concurrent use; create
// one per session.
type Synchronizer struct {
	project *project.Project
	fs      afero.Fs
	opts    Options
	session string
	logger  *slog.Logger

	copied     []string
	skipped    []string
	copiedSet  map[string]struct{}
	skippedSet map[string]struct{}
}

// New creates a Synchronizer for p with fresh session state.
func New(p *project.Project, opts Options) (*Synchronizer, error) {
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	session := uuid.NewString()
	return &Synchronizer{
		project:    p,
		fs:         fsys,
		opts:       opts,
		session:    session,
		logger:     logging.With(logging.Session(session)),
		copied:     []string{},
		skipped:    []string{},
		copiedSet:  make(map[string]struct{}),
		skippedSet: make(map[string]struct{}),
	}, nil
}

// Project returns the project layout this synchronizer operates on.
func (s *Synchronizer) Project() *project.Project {
	return s.project
}

// Session returns the identifier attached to this session's log lines.
func (s *Synchronizer) Session() string {
	return s.session
}

// SynchronizeAll applies SynchronizeOne to every entry of the staging
// directory in listing order. It fails with ErrNoVersionControlDirectory or
// ErrNoHooksSourceDirectory before touching anything.
func (s *Synchronizer) SynchronizeAll() (*PassResult, error) {
	names, err := s.listEntries()
	if err != nil {
		s.logger.Debug("synchronization aborted", logging.Err(err))
		return nil, err
	}

	if err := s.fs.MkdirAll(s.project.TargetDir(), hooksDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create hooks directory %q: %w", s.project.TargetDir(), err)
	}

	s.logger.Debug("synchronizing hooks",
		logging.Path(s.project.HooksDir()),
		logging.Count(len(names)),
	)

	result := &PassResult{Outcomes: make([]Outcome, 0, len(names))}
	for _, name := range names {
		outcome := s.SynchronizeOne(name, false)
		result.Outcomes = append(result.Outcomes, outcome)
		if outcome.Kind == OutcomeConflict && s.opts.StopOnConflict {
			break
		}
	}

	return result, nil
}

// SynchronizeOne installs a single staged entry. Only the base name of name
// is used. With force set, an installed hook is replaced without comparing
// contents.
func (s *Synchronizer) SynchronizeOne(name string, force bool) Outcome {
	hook := filepath.Base(name)
	if !validName(hook) {
		return Outcome{Hook: hook, Kind: OutcomeIneligible}
	}

	status, err := s.classify(hook)
	switch status {
	case PlanSettled, PlanDirectory, PlanExcluded:
		return Outcome{Hook: hook, Kind: OutcomeIneligible}
	case PlanUnreadable:
		s.logger.Warn("cannot read hook", logging.Hook(hook), logging.Err(err))
		return Outcome{Hook: hook, Kind: OutcomeFailed, Err: err}
	case PlanUpToDate:
		if !force {
			s.MarkSkipped(hook)
			s.logger.Debug("hook already up to date", logging.Hook(hook))
			return Outcome{Hook: hook, Kind: OutcomeUpToDate}
		}
	case PlanConflict:
		if !force {
			s.logger.Debug("hook conflict", logging.Hook(hook))
			return Outcome{Hook: hook, Kind: OutcomeConflict, Err: &ConflictError{Hook: hook}}
		}
	}

	if err := s.install(hook, status != PlanNew); err != nil {
		s.logger.Warn("failed to install hook", logging.Hook(hook), logging.Err(err))
		return Outcome{Hook: hook, Kind: OutcomeFailed, Err: err}
	}

	s.copied = append(s.copied, hook)
	s.copiedSet[hook] = struct{}{}
	s.logger.Debug("hook installed", logging.Hook(hook), slog.Bool("forced", force))

	return Outcome{Hook: hook, Kind: OutcomeCopied}
}

// MarkSkipped excludes the hook from the rest of the session. Calling it again,
// or for a hook already copied this session, has no effect.
func (s *Synchronizer) MarkSkipped(name string) {
	hook := filepath.Base(name)
	if _, ok := s.skippedSet[hook]; ok {
		return
	}
	if _, ok := s.copiedSet[hook]; ok {
		return
	}
	s.skipped = append(s.skipped, hook)
	s.skippedSet[hook] = struct{}{}
}

// ComputeDiff returns a unified diff from the installed hook to the staged
// one. It fails with ErrFileUnreadable if either file cannot be read.
func (s *Synchronizer) ComputeDiff(name string) (string, error) {
	hook := filepath.Base(name)
	target := s.project.TargetPath(hook)
	source := s.project.SourcePath(hook)

	installed, err := afero.ReadFile(s.fs, target)
	if err != nil {
		return "", &DiffError{Hook: hook, Path: target, Err: err}
	}
	staged, err := afero.ReadFile(s.fs, source)
	if err != nil {
		return "", &DiffError{Hook: hook, Path: source, Err: err}
	}

	s.logger.Debug("computing diff", logging.Hook(hook), logging.Operation("diff"))
	return unifiedDiff(s.relative(target), s.relative(source), installed, staged)
}

// Copied returns the hooks written this session in discovery order.
func (s *Synchronizer) Copied() []string {
	out := make([]string, len(s.copied))
	copy(out, s.copied)
	return out
}

// Skipped returns the hooks excluded for the rest of this session.
func (s *Synchronizer) Skipped() []string {
	out := make([]string, len(s.skipped))
	copy(out, s.skipped)
	return out
}

// install writes the staged hook, backing up the installed one first when
// it exists and a Backuper is configured.
func (s *Synchronizer) install(hook string, exists bool) error {
	target := s.project.TargetPath(hook)
	if exists && s.opts.Backuper != nil {
		if err := s.opts.Backuper.Backup(hook, target); err != nil {
			return fmt.Errorf("failed to back up %q: %w", target, err)
		}
	}
	return copyFile(s.fs, s.project.SourcePath(hook), target)
}

// listEntries validates the project directories and lists the staging
// directory.
func (s *Synchronizer) listEntries() ([]string, error) {
	gitDir := s.project.GitDir()
	info, err := s.fs.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return nil, &DirectoryError{
			Kind:    ErrNoVersionControlDirectory,
			Path:    s.project.BaseDir(),
			Missing: err != nil && errors.Is(err, fs.ErrNotExist),
			Err:     err,
		}
	}

	hooksDir := s.project.HooksDir()
	info, err = s.fs.Stat(hooksDir)
	if err != nil {
		return nil, &DirectoryError{
			Kind:    ErrNoHooksSourceDirectory,
			Path:    hooksDir,
			Missing: errors.Is(err, fs.ErrNotExist),
			Err:     err,
		}
	}
	if !info.IsDir() {
		return nil, &DirectoryError{Kind: ErrNoHooksSourceDirectory, Path: hooksDir}
	}

	entries, err := afero.ReadDir(s.fs, hooksDir)
	if err != nil {
		return nil, &DirectoryError{Kind: ErrNoHooksSourceDirectory, Path: hooksDir, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// classify inspects one staged hook without changing anything.
func (s *Synchronizer) classify(hook string) (PlanStatus, error) {
	if s.settled(hook) {
		return PlanSettled, nil
	}
	if s.excluded(hook) {
		return PlanExcluded, nil
	}

	source := s.project.SourcePath(hook)
	info, err := s.fs.Stat(source)
	if err != nil {
		return PlanUnreadable, fmt.Errorf("failed to stat source %q: %w", source, err)
	}
	if info.IsDir() {
		return PlanDirectory, nil
	}

	target := s.project.TargetPath(hook)
	exists, err := afero.Exists(s.fs, target)
	if err != nil {
		return PlanUnreadable, fmt.Errorf("failed to stat destination %q: %w", target, err)
	}
	if !exists {
		return PlanNew, nil
	}

	same, err := sameContent(s.fs, source, target)
	if err != nil {
		return PlanUnreadable, err
	}
	if same {
		return PlanUpToDate, nil
	}
	return PlanConflict, nil
}

func (s *Synchronizer) settled(hook string) bool {
	if _, ok := s.skippedSet[hook]; ok {
		return true
	}
	_, ok := s.copiedSet[hook]
	return ok
}

func (s *Synchronizer) excluded(hook string) bool {
	for _, pattern := range s.opts.Exclude {
		if ok, _ := doublestar.Match(pattern, hook); ok {
			return true
		}
	}
	return false
}

// relative shortens path for diff headers; it falls back to path.
func (s *Synchronizer) relative(path string) string {
	rel, err := filepath.Rel(s.project.BaseDir(), path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func validName(hook string) bool {
	switch hook {
	case "", ".", "..", string(filepath.Separator):
		return false
	}
	return true
}
