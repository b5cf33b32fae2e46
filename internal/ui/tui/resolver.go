package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/klauern/hooksync/internal/sync"
)

// ErrCancelled is returned when the user quits a conflict prompt.
var ErrCancelled = errors.New("conflict resolution cancelled")

// runFunc runs a model to completion.
type runFunc func(ctx context.Context, model tea.Model, opts ...tea.ProgramOption) (tea.Model, error)

// Resolver asks about each conflict with an interactive prompt. It
// implements sync.Resolver.
type Resolver struct {
	opts []tea.ProgramOption
	run  runFunc
}

var _ sync.Resolver = (*Resolver)(nil)

// NewResolver returns a resolver whose prompts run with opts.
func NewResolver(opts ...tea.ProgramOption) *Resolver {
	return &Resolver{opts: opts, run: Run}
}

// Resolve implements sync.Resolver.
func (r *Resolver) Resolve(ctx context.Context, hook string) (sync.Decision, error) {
	return r.prompt(ctx, NewConflictPromptModel(hook), r.opts...)
}

// ResolveAfterDiff implements sync.Resolver.
func (r *Resolver) ResolveAfterDiff(ctx context.Context, hook, diff string) (sync.Decision, error) {
	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, r.opts...)
	d, err := r.prompt(ctx, NewDiffPromptModel(hook, diff), opts...)
	if err != nil {
		return "", err
	}
	if d != sync.DecisionOverwrite {
		return sync.DecisionSkip, nil
	}
	return d, nil
}

func (r *Resolver) prompt(ctx context.Context, model ConflictPromptModel, opts ...tea.ProgramOption) (sync.Decision, error) {
	final, err := r.run(ctx, model, opts...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", err
	}

	m, ok := final.(ConflictPromptModel)
	if !ok {
		return sync.DecisionSkip, nil
	}
	result := m.Result()
	if result.Cancelled {
		return "", ErrCancelled
	}
	return result.Decision, nil
}
