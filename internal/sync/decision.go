package sync

import (
	"context"
	"fmt"
	"strings"
)

// Decision is how a single hook conflict should be handled.
type Decision string

const (
	// DecisionOverwrite replaces the installed hook with the staged one.
	DecisionOverwrite Decision = "overwrite"

	// DecisionSkip keeps the installed hook for the rest of the session.
	DecisionSkip Decision = "skip"

	// DecisionInspect asks for the diff before deciding.
	DecisionInspect Decision = "inspect"
)

// IsValid returns true if the decision is recognized.
func (d Decision) IsValid() bool {
	switch d {
	case DecisionOverwrite, DecisionSkip, DecisionInspect:
		return true
	default:
		return false
	}
}

// String returns the string representation of the decision.
func (d Decision) String() string {
	return string(d)
}

// Description returns a human-readable description of the decision.
func (d Decision) Description() string {
	switch d {
	case DecisionOverwrite:
		return "Replace the installed hook with the staged one"
	case DecisionSkip:
		return "Keep the installed hook"
	case DecisionInspect:
		return "Show the differences before deciding"
	default:
		return "Unknown decision"
	}
}

// ParseDecision parses a decision name or its single-letter shortcut
// (o, s, d).
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "o", "overwrite":
		return DecisionOverwrite, nil
	case "s", "skip":
		return DecisionSkip, nil
	case "d", "diff", "inspect", "show differences":
		return DecisionInspect, nil
	default:
		return "", fmt.Errorf("unknown decision %q", s)
	}
}

// Resolver is the decision source consulted for every conflict.
type Resolver interface {
	// Resolve chooses between overwrite, skip and inspect for a conflict.
	Resolve(ctx context.Context, hook string) (Decision, error)

	// ResolveAfterDiff chooses between overwrite and skip once the diff
	// has been computed. Inspect is not a valid answer here.
	ResolveAfterDiff(ctx context.Context, hook, diff string) (Decision, error)
}

// PolicyResolver answers every conflict with the same decision. It is the
// non-interactive decision source.
type PolicyResolver struct {
	Decision Decision
}

// NewPolicyResolver returns a resolver that always answers d. Anything
// other than DecisionOverwrite resolves to DecisionSkip.
func NewPolicyResolver(d Decision) *PolicyResolver {
	if d != DecisionOverwrite {
		d = DecisionSkip
	}
	return &PolicyResolver{Decision: d}
}

// Resolve implements Resolver.
func (p *PolicyResolver) Resolve(_ context.Context, _ string) (Decision, error) {
	return p.decision(), nil
}

// ResolveAfterDiff implements Resolver.
func (p *PolicyResolver) ResolveAfterDiff(_ context.Context, _, _ string) (Decision, error) {
	return p.decision(), nil
}

func (p *PolicyResolver) decision() Decision {
	if p.Decision == DecisionOverwrite {
		return DecisionOverwrite
	}
	return DecisionSkip
}
