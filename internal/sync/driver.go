package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/klauern/hooksync/internal/logging"
)

// Driver runs a Synchronizer to completion, asking a Resolver about every
// conflict and retrying until a pass yields none.
type Driver struct {
	sync     *Synchronizer
	resolver Resolver
	logger   *slog.Logger

	failures     map[string]error
	failureOrder []string
	diffFailures []Failure
}

// NewDriver creates a driver for one session of s.
func NewDriver(s *Synchronizer, r Resolver) *Driver {
	return &Driver{
		sync:     s,
		resolver: r,
		logger:   logging.With(logging.Session(s.Session()), logging.Operation("install")),
		failures: make(map[string]error),
	}
}

// Run synchronizes until a pass produces no conflict. Directory errors from
// the synchronizer are returned unchanged and never retried. Resolver errors
// and context cancellation also end the run.
func (d *Driver) Run(ctx context.Context) (*Report, error) {
	defer logging.Timer("install")()

	passes := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pass, err := d.sync.SynchronizeAll()
		if err != nil {
			return nil, err
		}
		passes++

		for _, o := range pass.Outcomes {
			d.record(o)
		}

		conflicts := pass.Conflicts()
		if len(conflicts) == 0 {
			break
		}

		d.logger.Debug("resolving conflicts", logging.Count(len(conflicts)), slog.Int("pass", passes))
		for _, hook := range conflicts {
			if err := d.resolve(ctx, hook); err != nil {
				return nil, err
			}
		}
	}

	return d.report(passes), nil
}

// resolve applies one decision to a conflicting hook.
func (d *Driver) resolve(ctx context.Context, hook string) error {
	decision, err := d.resolver.Resolve(ctx, hook)
	if err != nil {
		return fmt.Errorf("failed to resolve conflict for %s: %w", hook, err)
	}

	if decision == DecisionInspect {
		decision, err = d.inspect(ctx, hook)
		if err != nil {
			return err
		}
	}

	d.logger.Debug("conflict resolved", logging.Hook(hook), logging.Decision(decision.String()))

	switch decision {
	case DecisionOverwrite:
		outcome := d.sync.SynchronizeOne(hook, true)
		d.record(outcome)
		if outcome.Kind == OutcomeFailed {
			// Leaving it eligible would raise the same conflict forever.
			d.sync.MarkSkipped(hook)
		}
	default:
		d.sync.MarkSkipped(hook)
	}
	return nil
}

// inspect shows the diff and asks again. An unreadable side falls back to
// skipping the hook.
func (d *Driver) inspect(ctx context.Context, hook string) (Decision, error) {
	diff, err := d.sync.ComputeDiff(hook)
	if err != nil {
		d.logger.Warn("cannot show differences", logging.Hook(hook), logging.Err(err))
		d.diffFailures = append(d.diffFailures, Failure{Hook: hook, Err: err})
		return DecisionSkip, nil
	}

	decision, err := d.resolver.ResolveAfterDiff(ctx, hook, diff)
	if err != nil {
		return "", fmt.Errorf("failed to resolve conflict for %s: %w", hook, err)
	}
	if decision != DecisionOverwrite {
		decision = DecisionSkip
	}
	return decision, nil
}

// record keeps the latest failure per hook and forgets it once the hook
// is copied.
func (d *Driver) record(o Outcome) {
	switch o.Kind {
	case OutcomeFailed:
		if _, seen := d.failures[o.Hook]; !seen {
			d.failureOrder = append(d.failureOrder, o.Hook)
		}
		d.failures[o.Hook] = o.Err
	case OutcomeCopied:
		delete(d.failures, o.Hook)
	}
}

func (d *Driver) report(passes int) *Report {
	report := &Report{
		Copied:       d.sync.Copied(),
		Skipped:      d.sync.Skipped(),
		DiffFailures: d.diffFailures,
		Passes:       passes,
	}
	for _, hook := range d.failureOrder {
		if err, ok := d.failures[hook]; ok {
			report.Failed = append(report.Failed, Failure{Hook: hook, Err: err})
		}
	}
	return report
}
