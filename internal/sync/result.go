package sync

import (
	"errors"
	"fmt"
	"strings"
)

// OutcomeKind identifies what happened to one staged entry.
type OutcomeKind string

const (
	// OutcomeCopied means the hook was written to the hooks directory.
	OutcomeCopied OutcomeKind = "copied"

	// OutcomeUpToDate means the installed hook already matches the staged
	// one; the hook is now skipped for the rest of the session.
	OutcomeUpToDate OutcomeKind = "up-to-date"

	// OutcomeIneligible means the entry was not considered: a directory,
	// an excluded name, or a hook already settled this session.
	OutcomeIneligible OutcomeKind = "ineligible"

	// OutcomeConflict means a different hook of the same name is installed.
	OutcomeConflict OutcomeKind = "conflict"

	// OutcomeFailed means reading, backing up or writing the hook failed.
	OutcomeFailed OutcomeKind = "failed"
)

// Outcome is the result of synchronizing a single staged entry.
type Outcome struct {
	// Hook is the base name of the entry.
	Hook string

	// Kind is what happened.
	Kind OutcomeKind

	// Err is a *ConflictError for OutcomeConflict and the I/O cause for
	// OutcomeFailed. It is nil otherwise.
	Err error
}

// Eligible reports whether the hook was written.
func (o Outcome) Eligible() bool {
	return o.Kind == OutcomeCopied
}

// PassResult collects the outcomes of one SynchronizeAll pass in listing order.
type PassResult struct {
	Outcomes []Outcome
}

// Processed returns the names of every entry handled during the pass.
func (r *PassResult) Processed() []string {
	names := make([]string, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		names = append(names, o.Hook)
	}
	return names
}

// Conflicts returns the conflicting hooks in discovery order.
func (r *PassResult) Conflicts() []string {
	return r.namesByKind(OutcomeConflict)
}

// Failed returns the outcomes whose copy failed.
func (r *PassResult) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Kind == OutcomeFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// HasConflicts returns true if the pass raised at least one conflict.
func (r *PassResult) HasConflicts() bool {
	return len(r.Conflicts()) > 0
}

func (r *PassResult) namesByKind(kind OutcomeKind) []string {
	var names []string
	for _, o := range r.Outcomes {
		if o.Kind == kind {
			names = append(names, o.Hook)
		}
	}
	return names
}

// Failure records a hook whose final copy attempt failed.
type Failure struct {
	Hook string
	Err  error
}

// Report is the final outcome of a driven session.
type Report struct {
	// Copied lists the hooks written this session, in discovery order.
	Copied []string

	// Skipped lists hooks left alone: identical content or a skip decision.
	Skipped []string

	// Failed lists hooks whose last copy attempt failed.
	Failed []Failure

	// DiffFailures lists hooks whose diff could not be computed and
	// therefore fell back to being skipped.
	DiffFailures []Failure

	// Passes counts SynchronizeAll invocations.
	Passes int
}

// Success returns true if no copy failed.
func (r *Report) Success() bool {
	return len(r.Failed) == 0
}

// FailureError joins every copy failure into one error, or returns nil.
func (r *Report) FailureError() error {
	if len(r.Failed) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d hook(s) could not be copied:", len(r.Failed)))
	for _, f := range r.Failed {
		sb.WriteString(fmt.Sprintf(" %s (%v);", f.Hook, f.Err))
	}
	return errors.New(strings.TrimSuffix(sb.String(), ";"))
}

// Summary returns a human-readable summary of the session.
func (r *Report) Summary() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  Copied:  %d\n", len(r.Copied)))
	sb.WriteString(fmt.Sprintf("  Skipped: %d\n", len(r.Skipped)))
	sb.WriteString(fmt.Sprintf("  Failed:  %d\n", len(r.Failed)))

	if !r.Success() {
		sb.WriteString("\nErrors:\n")
		for _, f := range r.Failed {
			sb.WriteString(fmt.Sprintf("  - %s: %v\n", f.Hook, f.Err))
		}
	}

	return sb.String()
}
