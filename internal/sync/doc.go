// Package sync installs staged git hooks into a repository's .git/hooks
// directory.
//
// A Synchronizer owns the state of one session: the hooks copied so far and
// the hooks that are skipped for the rest of the session. Each pass over the
// staging directory yields one Outcome per entry:
//
//   - OutcomeCopied: the hook was new, or was forced over an installed one
//   - OutcomeUpToDate: the installed hook is byte-identical and is now skipped
//   - OutcomeIneligible: directories, excluded names and settled hooks
//   - OutcomeConflict: a different hook of the same name is installed
//   - OutcomeFailed: an I/O error while hashing, backing up or copying
//
// # Resolving Conflicts
//
// Conflicts are handed to a Resolver by the Driver, which retries until a
// pass raises no conflict:
//
//	s, err := sync.New(p, sync.Options{})
//	if err != nil {
//	    return err
//	}
//	report, err := sync.NewDriver(s, sync.NewPolicyResolver(sync.DecisionSkip)).Run(ctx)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(report.Copied)
//
// A resolver answering DecisionInspect is shown the unified diff from the
// installed hook to the staged one and asked again via ResolveAfterDiff.
//
// Installed hooks always end up with the owner execute bit set.
package sync
