package ui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStatusFunctions(t *testing.T) {
	// Disable colors for consistent test output
	DisableColors()
	defer EnableColors()

	tests := []struct {
		name  string
		fn    func(string) string
		input string
		want  string
	}{
		{"StatusSuccess empty", StatusSuccess, "", SymbolSuccess},
		{"StatusSuccess with msg", StatusSuccess, "pre-commit", SymbolSuccess + " pre-commit"},
		{"StatusError with msg", StatusError, "failed", SymbolError + " failed"},
		{"StatusWarning with msg", StatusWarning, "caution", SymbolWarning + " caution"},
		{"StatusSkipped empty", StatusSkipped, "", SymbolSkipped},
		{"StatusConflict with msg", StatusConflict, "pre-push", SymbolConflict + " pre-push"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigureColors(t *testing.T) {
	initial := IsColorEnabled()
	defer func() {
		if initial {
			EnableColors()
		} else {
			DisableColors()
		}
	}()

	if err := ConfigureColors("never"); err != nil {
		t.Fatal(err)
	}
	if IsColorEnabled() {
		t.Error("expected colors to be disabled")
	}

	if err := ConfigureColors("always"); err != nil {
		t.Fatal(err)
	}
	if !IsColorEnabled() {
		t.Error("expected colors to be enabled")
	}

	if err := ConfigureColors("auto"); err != nil {
		t.Errorf("auto should be accepted: %v", err)
	}
	if err := ConfigureColors("sometimes"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(nil) {
		t.Error("nil file is not a terminal")
	}

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	if IsTerminal(f) {
		t.Error("a regular file is not a terminal")
	}
}
