package sync

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/klauern/hooksync/internal/project"
)

// fixture is a repository laid out on an in-memory filesystem.
type fixture struct {
	fs      afero.Fs
	project *project.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(t, afero.NewMemMapFs(), "/repo")
}

func newFixtureOn(t *testing.T, fs afero.Fs, baseDir string) *fixture {
	t.Helper()
	p, err := project.New(baseDir, "")
	if err != nil {
		t.Fatalf("project.New() error = %v", err)
	}
	for _, dir := range []string{p.GitDir(), p.HooksDir()} {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}
	return &fixture{fs: fs, project: p}
}

func (f *fixture) stage(t *testing.T, hook, content string) {
	t.Helper()
	f.write(t, f.project.SourcePath(hook), content, 0o644)
}

func (f *fixture) install(t *testing.T, hook, content string) {
	t.Helper()
	if err := f.fs.MkdirAll(f.project.TargetDir(), 0o755); err != nil {
		t.Fatalf("failed to create hooks dir: %v", err)
	}
	f.write(t, f.project.TargetPath(hook), content, 0o755)
}

func (f *fixture) write(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	if err := afero.WriteFile(f.fs, path, []byte(content), perm); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func (f *fixture) installed(t *testing.T, hook string) string {
	t.Helper()
	data, err := afero.ReadFile(f.fs, f.project.TargetPath(hook))
	if err != nil {
		t.Fatalf("failed to read installed %s: %v", hook, err)
	}
	return string(data)
}

func (f *fixture) synchronizer(t *testing.T, opts Options) *Synchronizer {
	t.Helper()
	opts.Fs = f.fs
	s, err := New(f.project, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func kinds(result *PassResult) map[string]OutcomeKind {
	out := make(map[string]OutcomeKind, len(result.Outcomes))
	for _, o := range result.Outcomes {
		out[o.Hook] = o.Kind
	}
	return out
}

func TestNew(t *testing.T) {
	f := newFixture(t)
	s := f.synchronizer(t, Options{})

	if s.Session() == "" {
		t.Error("New() should assign a session id")
	}
	if s.Project() != f.project {
		t.Error("Project() should return the configured project")
	}
	if got := s.Copied(); got == nil || len(got) != 0 {
		t.Errorf("Copied() = %#v, want empty non-nil slice", got)
	}
	if got := s.Skipped(); got == nil || len(got) != 0 {
		t.Errorf("Skipped() = %#v, want empty non-nil slice", got)
	}

	other := f.synchronizer(t, Options{})
	if other.Session() == s.Session() {
		t.Error("each synchronizer should get its own session id")
	}
}

func TestNew_InvalidExcludePattern(t *testing.T) {
	p, err := project.New("/repo", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(p, Options{Fs: afero.NewMemMapFs(), Exclude: []string{"[oops"}}); err == nil {
		t.Error("New() should reject an invalid exclude pattern")
	}
}

func TestSynchronizeAll_EmptySource(t *testing.T) {
	f := newFixture(t)
	s := f.synchronizer(t, Options{})

	result, err := s.SynchronizeAll()
	if err != nil {
		t.Fatalf("SynchronizeAll() error = %v", err)
	}
	if len(result.Outcomes) != 0 {
		t.Errorf("expected no outcomes, got %d", len(result.Outcomes))
	}
	if len(s.Copied()) != 0 || len(s.Skipped()) != 0 {
		t.Errorf("expected nothing copied or skipped, got %v / %v", s.Copied(), s.Skipped())
	}
}

func TestSynchronizeAll_Outcomes(t *testing.T) {
	tests := map[string]struct {
		staged      map[string]string
		installed   map[string]string
		wantKinds   map[string]OutcomeKind
		wantCopied  []string
		wantSkipped []string
	}{
		"new hook is copied": {
			staged:     map[string]string{"pre-commit": "#!/bin/sh\necho hi\n"},
			wantKinds:  map[string]OutcomeKind{"pre-commit": OutcomeCopied},
			wantCopied: []string{"pre-commit"},
		},
		"identical hook is skipped": {
			staged:      map[string]string{"pre-commit": "same"},
			installed:   map[string]string{"pre-commit": "same"},
			wantKinds:   map[string]OutcomeKind{"pre-commit": OutcomeUpToDate},
			wantSkipped: []string{"pre-commit"},
		},
		"different hook conflicts": {
			staged:    map[string]string{"pre-commit": "new"},
			installed: map[string]string{"pre-commit": "old"},
			wantKinds: map[string]OutcomeKind{"pre-commit": OutcomeConflict},
		},
		"mixed in discovery order": {
			staged: map[string]string{
				"commit-msg": "a",
				"pre-commit": "new",
				"pre-push":   "same",
				".hidden":    "dot",
			},
			installed: map[string]string{
				"pre-commit": "old",
				"pre-push":   "same",
			},
			wantKinds: map[string]OutcomeKind{
				".hidden":    OutcomeCopied,
				"commit-msg": OutcomeCopied,
				"pre-commit": OutcomeConflict,
				"pre-push":   OutcomeUpToDate,
			},
			wantCopied:  []string{".hidden", "commit-msg"},
			wantSkipped: []string{"pre-push"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			for hook, content := range tt.staged {
				f.stage(t, hook, content)
			}
			for hook, content := range tt.installed {
				f.install(t, hook, content)
			}
			s := f.synchronizer(t, Options{})

			result, err := s.SynchronizeAll()
			if err != nil {
				t.Fatalf("SynchronizeAll() error = %v", err)
			}

			got := kinds(result)
			for hook, want := range tt.wantKinds {
				if got[hook] != want {
					t.Errorf("outcome for %s = %q, want %q", hook, got[hook], want)
				}
			}
			if copied := s.Copied(); !slices.Equal(copied, nonNil(tt.wantCopied)) {
				t.Errorf("Copied() = %v, want %v", copied, tt.wantCopied)
			}
			if skipped := s.Skipped(); !slices.Equal(skipped, nonNil(tt.wantSkipped)) {
				t.Errorf("Skipped() = %v, want %v", skipped, tt.wantSkipped)
			}
		})
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func TestSynchronizeAll_CopiesContentAndMode(t *testing.T) {
	f := newFixture(t)
	content := "#!/bin/sh\nexit 0\n"
	f.stage(t, "pre-commit", content)
	s := f.synchronizer(t, Options{})

	if _, err := s.SynchronizeAll(); err != nil {
		t.Fatalf("SynchronizeAll() error = %v", err)
	}

	if got := f.installed(t, "pre-commit"); got != content {
		t.Errorf("installed content = %q, want %q", got, content)
	}
	info, err := f.fs.Stat(f.project.TargetPath("pre-commit"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o744 {
		t.Errorf("installed mode = %o, want %o", info.Mode().Perm(), 0o744)
	}
}

func TestSynchronizeAll_IdenticalLeavesDestinationUntouched(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "pre-commit", "same")
	f.install(t, "pre-commit", "same")
	if err := f.fs.Chmod(f.project.TargetPath("pre-commit"), 0o700); err != nil {
		t.Fatal(err)
	}
	s := f.synchronizer(t, Options{})

	if _, err := s.SynchronizeAll(); err != nil {
		t.Fatalf("SynchronizeAll() error = %v", err)
	}

	info, err := f.fs.Stat(f.project.TargetPath("pre-commit"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o700 {
		t.Errorf("identical hook should not be rewritten, mode = %o", info.Mode().Perm())
	}
}

func TestSynchronizeAll_ConflictLeavesDestination(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "pre-commit", "new")
	f.install(t, "pre-commit", "old")
	s := f.synchronizer(t, Options{})

	result, err := s.SynchronizeAll()
	if err != nil {
		t.Fatalf("SynchronizeAll() error = %v", err)
	}

	if !result.HasConflicts() {
		t.Fatal("expected a conflict")
	}
	outcome := result.Outcomes[0]
	if !errors.Is(outcome.Err, ErrHookConflict) {
		t.Errorf("conflict outcome error = %v, want ErrHookConflict", outcome.Err)
	}
	var conflictErr *ConflictError
	if !errors.As(outcome.Err, &conflictErr) || conflictErr.Hook != "pre-commit" {
		t.Errorf("expected *ConflictError for pre-commit, got %v", outcome.Err)
	}
	if got := f.installed(t, "pre-commit"); got != "old" {
		t.Errorf("installed content = %q, want unchanged", got)
	}
	if len(s.Copied()) != 0 || len(s.Skipped()) != 0 {
		t.Error("a pending conflict should be neither copied nor skipped")
	}
}

func TestSynchronizeAll_DirectoriesNeverReported(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "pre-commit", "hook")
	f.write(t, filepath.Join(f.project.HooksDir(), "lib", "helper.sh"), "helper", 0o644)
	s := f.synchronizer(t, Options{})

	result, err := s.SynchronizeAll()
	if err != nil {
		t.Fatalf("SynchronizeAll() error = %v", err)
	}

	if got := kinds(result)["lib"]; got != OutcomeIneligible {
		t.Errorf("directory outcome = %q, want %q", got, OutcomeIneligible)
	}
	if slices.Contains(s.Copied(), "lib") || slices.Contains(s.Skipped(), "lib") {
		t.Error("directories must never be reported as copied or skipped")
	}
	if exists, _ := afero.Exists(f.fs, f.project.TargetPath("lib")); exists {
		t.Error("directory should not be installed")
	}
	if !slices.Equal(s.Copied(), []string{"pre-commit"}) {
		t.Errorf("Copied() = %v", s.Copied())
	}
}

func TestSynchronizeAll_Exclude(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "pre-commit", "hook")
	f.stage(t, "README.md", "docs")
	s := f.synchronizer(t, Options{Exclude: []string{"*.md"}})

	result, err := s.SynchronizeAll()
	if err != nil {
		t.Fatalf("SynchronizeAll() error = %v", err)
	}

	if got := kinds(result)["README.md"]; got != OutcomeIneligible {
		t.Errorf("excluded outcome = %q, want %q", got, OutcomeIneligible)
	}
	if !slices.Equal(s.Copied(), []string{"pre-commit"}) {
		t.Errorf("Copied() = %v, want [pre-commit]", s.Copied())
	}
}

func TestSynchronizeAll_StopOnConflict(t *testing.T) {
	tests := map[string]struct {
		stop         bool
		wantOutcomes int
		wantCopied   []string
	}{
		"finishes the listing by default": {stop: false, wantOutcomes: 2, wantCopied: []string{"pre-commit"}},
		"ends at the first conflict":      {stop: true, wantOutcomes: 1, wantCopied: []string{}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.stage(t, "commit-msg", "new")
			f.install(t, "commit-msg", "old")
			f.stage(t, "pre-commit", "hook")
			s := f.synchronizer(t, Options{StopOnConflict: tt.stop})

			result, err := s.SynchronizeAll()
			if err != nil {
				t.Fatalf("SynchronizeAll() error = %v", err)
			}
			if len(result.Outcomes) != tt.wantOutcomes {
				t.Errorf("got %d outcomes, want %d", len(result.Outcomes), tt.wantOutcomes)
			}
			if !slices.Equal(s.Copied(), tt.wantCopied) {
				t.Errorf("Copied() = %v, want %v", s.Copied(), tt.wantCopied)
			}
		})
	}
}

func TestSynchronizeAll_Preconditions(t *testing.T) {
	tests := map[string]struct {
		setup       func(t *testing.T, fs afero.Fs, p *project.Project)
		wantKind    error
		wantMissing bool
		wantMessage string
	}{
		"missing .git": {
			setup: func(t *testing.T, fs afero.Fs, p *project.Project) {
				mustMkdir(t, fs, p.HooksDir())
			},
			wantKind:    ErrNoVersionControlDirectory,
			wantMissing: true,
			wantMessage: "no .git directory was found within /repo",
		},
		".git is a file": {
			setup: func(t *testing.T, fs afero.Fs, p *project.Project) {
				mustMkdir(t, fs, p.HooksDir())
				if err := afero.WriteFile(fs, p.GitDir(), []byte("gitdir: elsewhere"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantKind:    ErrNoVersionControlDirectory,
			wantMessage: "no .git directory was found within /repo",
		},
		"missing hooks directory": {
			setup: func(t *testing.T, fs afero.Fs, p *project.Project) {
				mustMkdir(t, fs, p.GitDir())
			},
			wantKind:    ErrNoHooksSourceDirectory,
			wantMissing: true,
			wantMessage: "the git hooks directory at /repo/.githooks does not exist",
		},
		"hooks path is a file": {
			setup: func(t *testing.T, fs afero.Fs, p *project.Project) {
				mustMkdir(t, fs, p.GitDir())
				if err := afero.WriteFile(fs, p.HooksDir(), []byte("x"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantKind:    ErrNoHooksSourceDirectory,
			wantMessage: "the git hooks directory at /repo/.githooks is inaccessible",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if runtime.GOOS == "windows" {
				t.Skip("messages use unix paths")
			}
			fs := afero.NewMemMapFs()
			p, err := project.New("/repo", "")
			if err != nil {
				t.Fatal(err)
			}
			tt.setup(t, fs, p)

			s, err := New(p, Options{Fs: fs})
			if err != nil {
				t.Fatal(err)
			}
			result, err := s.SynchronizeAll()
			if err == nil {
				t.Fatal("SynchronizeAll() should fail")
			}
			if result != nil {
				t.Error("no pass result expected on a fatal error")
			}
			if !errors.Is(err, tt.wantKind) {
				t.Errorf("error = %v, want %v", err, tt.wantKind)
			}
			var dirErr *DirectoryError
			if !errors.As(err, &dirErr) {
				t.Fatalf("expected *DirectoryError, got %T", err)
			}
			if dirErr.Missing != tt.wantMissing {
				t.Errorf("Missing = %v, want %v", dirErr.Missing, tt.wantMissing)
			}
			if err.Error() != tt.wantMessage {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMessage)
			}
			if exists, _ := afero.DirExists(fs, p.TargetDir()); exists {
				t.Error("hooks directory should not be created on a fatal error")
			}
			if len(s.Copied()) != 0 {
				t.Error("nothing should be copied")
			}
		})
	}
}

func mustMkdir(t *testing.T, fs afero.Fs, dir string) {
	t.Helper()
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
}

func TestSynchronizeAll_CreatesHooksDirectory(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "pre-commit", "hook")
	s := f.synchronizer(t, Options{})

	if _, err := s.SynchronizeAll(); err != nil {
		t.Fatalf("SynchronizeAll() error = %v", err)
	}
	if exists, _ := afero.DirExists(f.fs, f.project.TargetDir()); !exists {
		t.Error("SynchronizeAll() should create .git/hooks")
	}
}

func TestSynchronizeAll_SecondSessionCopiesNothing(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "pre-commit", "a")
	f.stage(t, "pre-push", "b")

	first := f.synchronizer(t, Options{})
	if _, err := first.SynchronizeAll(); err != nil {
		t.Fatal(err)
	}
	if len(first.Copied()) != 2 {
		t.Fatalf("first session copied %v", first.Copied())
	}

	second := f.synchronizer(t, Options{})
	if _, err := second.SynchronizeAll(); err != nil {
		t.Fatal(err)
	}
	if len(second.Copied()) != 0 {
		t.Errorf("second session copied %v, want nothing", second.Copied())
	}
	if !slices.Equal(second.Skipped(), []string{"pre-commit", "pre-push"}) {
		t.Errorf("second session skipped %v", second.Skipped())
	}
}

func TestSynchronizeOne(t *testing.T) {
	t.Run("force overwrites a conflict", func(t *testing.T) {
		f := newFixture(t)
		f.stage(t, "pre-commit", "new")
		f.install(t, "pre-commit", "old")
		s := f.synchronizer(t, Options{})

		outcome := s.SynchronizeOne("pre-commit", true)
		if outcome.Kind != OutcomeCopied || !outcome.Eligible() {
			t.Fatalf("outcome = %+v, want copied", outcome)
		}
		if got := f.installed(t, "pre-commit"); got != "new" {
			t.Errorf("installed content = %q, want %q", got, "new")
		}
	})

	t.Run("uses the base name", func(t *testing.T) {
		f := newFixture(t)
		f.stage(t, "pre-commit", "hook")
		s := f.synchronizer(t, Options{})
		mustMkdir(t, f.fs, f.project.TargetDir())

		outcome := s.SynchronizeOne("some/where/pre-commit", false)
		if outcome.Hook != "pre-commit" || outcome.Kind != OutcomeCopied {
			t.Errorf("outcome = %+v", outcome)
		}
	})

	t.Run("invalid names are ineligible", func(t *testing.T) {
		f := newFixture(t)
		s := f.synchronizer(t, Options{})
		for _, name := range []string{"", ".", "..", "/"} {
			if outcome := s.SynchronizeOne(name, true); outcome.Kind != OutcomeIneligible {
				t.Errorf("SynchronizeOne(%q) = %q, want ineligible", name, outcome.Kind)
			}
		}
	})

	t.Run("copied hooks are not processed again", func(t *testing.T) {
		f := newFixture(t)
		f.stage(t, "pre-commit", "hook")
		s := f.synchronizer(t, Options{})
		mustMkdir(t, f.fs, f.project.TargetDir())

		s.SynchronizeOne("pre-commit", false)
		if outcome := s.SynchronizeOne("pre-commit", false); outcome.Kind != OutcomeIneligible {
			t.Errorf("second call = %q, want ineligible", outcome.Kind)
		}
		if len(s.Skipped()) != 0 {
			t.Errorf("a copied hook must not also be skipped, got %v", s.Skipped())
		}
	})

	t.Run("vanished source fails", func(t *testing.T) {
		f := newFixture(t)
		s := f.synchronizer(t, Options{})

		outcome := s.SynchronizeOne("ghost", false)
		if outcome.Kind != OutcomeFailed || outcome.Err == nil {
			t.Errorf("outcome = %+v, want failed with cause", outcome)
		}
	})

	t.Run("write failure is an outcome", func(t *testing.T) {
		f := newFixture(t)
		f.stage(t, "pre-commit", "hook")
		mustMkdir(t, f.fs, f.project.TargetDir())
		s, err := New(f.project, Options{Fs: afero.NewReadOnlyFs(f.fs)})
		if err != nil {
			t.Fatal(err)
		}

		outcome := s.SynchronizeOne("pre-commit", false)
		if outcome.Kind != OutcomeFailed || outcome.Err == nil {
			t.Errorf("outcome = %+v, want failed", outcome)
		}
		if len(s.Copied()) != 0 {
			t.Error("a failed copy must not be recorded")
		}
	})
}

type recordingBackuper struct {
	calls []string
	err   error
}

func (b *recordingBackuper) Backup(hook, _ string) error {
	b.calls = append(b.calls, hook)
	return b.err
}

func TestSynchronizeOne_Backup(t *testing.T) {
	tests := map[string]struct {
		installed     bool
		backupErr     error
		wantCalls     int
		wantKind      OutcomeKind
		wantInstalled string
	}{
		"backs up before overwrite": {
			installed: true, wantCalls: 1, wantKind: OutcomeCopied, wantInstalled: "new",
		},
		"nothing to back up for a new hook": {
			installed: false, wantCalls: 0, wantKind: OutcomeCopied, wantInstalled: "new",
		},
		"backup failure keeps the installed hook": {
			installed: true, backupErr: errors.New("disk full"), wantCalls: 1, wantKind: OutcomeFailed, wantInstalled: "old",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.stage(t, "pre-commit", "new")
			mustMkdir(t, f.fs, f.project.TargetDir())
			if tt.installed {
				f.install(t, "pre-commit", "old")
			}
			b := &recordingBackuper{err: tt.backupErr}
			s := f.synchronizer(t, Options{Backuper: b})

			outcome := s.SynchronizeOne("pre-commit", true)
			if outcome.Kind != tt.wantKind {
				t.Errorf("outcome = %q, want %q", outcome.Kind, tt.wantKind)
			}
			if len(b.calls) != tt.wantCalls {
				t.Errorf("backup calls = %d, want %d", len(b.calls), tt.wantCalls)
			}
			if got := f.installed(t, "pre-commit"); got != tt.wantInstalled {
				t.Errorf("installed = %q, want %q", got, tt.wantInstalled)
			}
		})
	}
}

func TestMarkSkipped(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "pre-commit", "new")
	f.stage(t, "pre-push", "hook")
	f.install(t, "pre-commit", "old")
	s := f.synchronizer(t, Options{})

	s.MarkSkipped("pre-commit")
	s.MarkSkipped("pre-commit")
	if !slices.Equal(s.Skipped(), []string{"pre-commit"}) {
		t.Errorf("Skipped() = %v, want single entry", s.Skipped())
	}

	result, err := s.SynchronizeAll()
	if err != nil {
		t.Fatal(err)
	}
	if result.HasConflicts() {
		t.Error("a skipped hook must not conflict again")
	}
	if got := f.installed(t, "pre-commit"); got != "old" {
		t.Errorf("skipped hook was modified: %q", got)
	}
	if !slices.Equal(s.Copied(), []string{"pre-push"}) {
		t.Errorf("Copied() = %v, want [pre-push]", s.Copied())
	}

	s.MarkSkipped("pre-push")
	if slices.Contains(s.Skipped(), "pre-push") {
		t.Error("MarkSkipped must not move a copied hook into skipped")
	}
}

func TestCopiedSkipped_AreCopies(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "pre-commit", "hook")
	s := f.synchronizer(t, Options{})
	if _, err := s.SynchronizeAll(); err != nil {
		t.Fatal(err)
	}
	s.MarkSkipped("other")

	copied := s.Copied()
	copied[0] = "mutated"
	skipped := s.Skipped()
	skipped[0] = "mutated"

	if s.Copied()[0] != "pre-commit" || s.Skipped()[0] != "other" {
		t.Error("returned slices must not alias session state")
	}
}

func TestComputeDiff(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "pre-commit", "new pre-commit content")
	f.install(t, "pre-commit", "old pre-commit content")
	s := f.synchronizer(t, Options{})

	diff, err := s.ComputeDiff("pre-commit")
	if err != nil {
		t.Fatalf("ComputeDiff() error = %v", err)
	}

	for _, want := range []string{
		"--- .git/hooks/pre-commit",
		"+++ .githooks/pre-commit",
		"@@",
		"-old pre-commit content",
		"+new pre-commit content",
	} {
		if !strings.Contains(diff, want) {
			t.Errorf("diff missing %q:\n%s", want, diff)
		}
	}
	if len(s.Copied()) != 0 || len(s.Skipped()) != 0 {
		t.Error("ComputeDiff must not change session state")
	}
}

func TestComputeDiff_Unreadable(t *testing.T) {
	tests := map[string]struct {
		staged    bool
		installed bool
		wantPath  func(p *project.Project) string
	}{
		"installed hook missing": {
			staged:   true,
			wantPath: func(p *project.Project) string { return p.TargetPath("pre-commit") },
		},
		"staged hook missing": {
			installed: true,
			wantPath:  func(p *project.Project) string { return p.SourcePath("pre-commit") },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			if tt.staged {
				f.stage(t, "pre-commit", "new")
			}
			if tt.installed {
				f.install(t, "pre-commit", "old")
			}
			s := f.synchronizer(t, Options{})

			_, err := s.ComputeDiff("pre-commit")
			if !errors.Is(err, ErrFileUnreadable) {
				t.Fatalf("error = %v, want ErrFileUnreadable", err)
			}
			var diffErr *DiffError
			if !errors.As(err, &diffErr) {
				t.Fatalf("expected *DiffError, got %T", err)
			}
			if diffErr.Path != tt.wantPath(f.project) {
				t.Errorf("Path = %q, want %q", diffErr.Path, tt.wantPath(f.project))
			}
		})
	}
}

func TestPlan(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "commit-msg", "a")
	f.stage(t, "pre-commit", "new")
	f.install(t, "pre-commit", "old")
	f.stage(t, "pre-push", "same")
	f.install(t, "pre-push", "same")
	f.stage(t, "notes.md", "docs")
	mustMkdir(t, f.fs, filepath.Join(f.project.HooksDir(), "lib"))
	s := f.synchronizer(t, Options{Exclude: []string{"*.md"}})

	entries, err := s.Plan()
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	want := map[string]PlanStatus{
		"commit-msg": PlanNew,
		"lib":        PlanDirectory,
		"notes.md":   PlanExcluded,
		"pre-commit": PlanConflict,
		"pre-push":   PlanUpToDate,
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for _, e := range entries {
		if e.Status != want[e.Hook] {
			t.Errorf("%s: status = %q, want %q", e.Hook, e.Status, want[e.Hook])
		}
	}

	if exists, _ := afero.Exists(f.fs, f.project.TargetPath("commit-msg")); exists {
		t.Error("Plan() must not install anything")
	}
	if len(s.Skipped()) != 0 {
		t.Error("Plan() must not change session state")
	}
}

func TestPlan_Preconditions(t *testing.T) {
	fs := afero.NewMemMapFs()
	p, err := project.New("/repo", "")
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(p, Options{Fs: fs})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Plan(); !errors.Is(err, ErrNoVersionControlDirectory) {
		t.Errorf("Plan() error = %v, want ErrNoVersionControlDirectory", err)
	}
}

func TestSynchronizeAll_OsFs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("execute bits are not meaningful on Windows")
	}

	f := newFixtureOn(t, afero.NewOsFs(), t.TempDir())
	f.stage(t, "pre-commit", "#!/bin/sh\nexit 0\n")
	f.stage(t, "pre-push", "#!/bin/sh\nexit 1\n")
	f.install(t, "pre-push", "#!/bin/sh\nexit 1\n")
	s := f.synchronizer(t, Options{})

	if _, err := s.SynchronizeAll(); err != nil {
		t.Fatalf("SynchronizeAll() error = %v", err)
	}

	info, err := os.Stat(f.project.TargetPath("pre-commit"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o100 == 0 {
		t.Errorf("installed hook is not executable: %o", info.Mode().Perm())
	}
	if !slices.Equal(s.Copied(), []string{"pre-commit"}) {
		t.Errorf("Copied() = %v", s.Copied())
	}
	if !slices.Equal(s.Skipped(), []string{"pre-push"}) {
		t.Errorf("Skipped() = %v", s.Skipped())
	}
}
