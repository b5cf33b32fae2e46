package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	base := t.TempDir()

	tests := map[string]struct {
		baseDir      string
		hooksDir     string
		wantBase     string
		wantHooksDir string
	}{
		"defaults to .githooks": {
			baseDir:      base,
			hooksDir:     "",
			wantBase:     base,
			wantHooksDir: filepath.Join(base, ".githooks"),
		},
		"trailing separator on base": {
			baseDir:      base + string(filepath.Separator),
			hooksDir:     ".githooks",
			wantBase:     base,
			wantHooksDir: filepath.Join(base, ".githooks"),
		},
		"trailing separator on hooks dir": {
			baseDir:      base,
			hooksDir:     "scripts/hooks/",
			wantBase:     base,
			wantHooksDir: filepath.Join(base, "scripts", "hooks"),
		},
		"repeated trailing separators": {
			baseDir:      base + "//",
			hooksDir:     "hooks//",
			wantBase:     base,
			wantHooksDir: filepath.Join(base, "hooks"),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := New(tt.baseDir, tt.hooksDir)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if p.BaseDir() != tt.wantBase {
				t.Errorf("BaseDir() = %q, want %q", p.BaseDir(), tt.wantBase)
			}
			if p.HooksDir() != tt.wantHooksDir {
				t.Errorf("HooksDir() = %q, want %q", p.HooksDir(), tt.wantHooksDir)
			}
		})
	}
}

func TestNew_DerivedPaths(t *testing.T) {
	base := t.TempDir()
	p, err := New(base, ".githooks")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got, want := p.GitDir(), filepath.Join(base, ".git"); got != want {
		t.Errorf("GitDir() = %q, want %q", got, want)
	}
	if got, want := p.TargetDir(), filepath.Join(base, ".git", "hooks"); got != want {
		t.Errorf("TargetDir() = %q, want %q", got, want)
	}
	if got, want := p.SourcePath("pre-commit"), filepath.Join(base, ".githooks", "pre-commit"); got != want {
		t.Errorf("SourcePath() = %q, want %q", got, want)
	}
	if got, want := p.TargetPath("pre-commit"), filepath.Join(base, ".git", "hooks", "pre-commit"); got != want {
		t.Errorf("TargetPath() = %q, want %q", got, want)
	}
}

func TestNew_RelativeBaseUsesWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}

	p, err := New(".", "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.BaseDir() != wd {
		t.Errorf("BaseDir() = %q, want %q", p.BaseDir(), wd)
	}

	p, err = New("", "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.BaseDir() != wd {
		t.Errorf("BaseDir() with empty input = %q, want %q", p.BaseDir(), wd)
	}
}

func TestNew_RejectsAbsoluteHooksDir(t *testing.T) {
	if _, err := New(t.TempDir(), "/etc/hooks"); err == nil {
		t.Error("expected error for absolute hooks directory")
	}
}
