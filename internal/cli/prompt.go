package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauern/hooksync/internal/sync"
	"github.com/klauern/hooksync/internal/ui"
)

// LinePrompter asks about conflicts and confirmations on a line-oriented
// reader, such as stdin. It implements sync.Resolver. An empty answer or end
// of input selects the default.
type LinePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

var _ sync.Resolver = (*LinePrompter)(nil)

// NewLinePrompter creates a prompter reading answers from in and writing
// questions to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Resolve implements sync.Resolver. The default answer is skip.
func (p *LinePrompter) Resolve(ctx context.Context, hook string) (sync.Decision, error) {
	p.printQuestion(hook)
	fmt.Fprintln(p.out, "  [o] Overwrite")
	fmt.Fprintln(p.out, "  [s] Skip")
	fmt.Fprintln(p.out, "  [d] Show differences")
	return p.choose(ctx, "Enter choice [o/s/d] (default: s): ", true)
}

// ResolveAfterDiff implements sync.Resolver. It prints the diff and offers
// overwrite and skip only.
func (p *LinePrompter) ResolveAfterDiff(ctx context.Context, hook, diff string) (sync.Decision, error) {
	fmt.Fprintln(p.out)
	fmt.Fprint(p.out, formatDiff(diff))
	fmt.Fprintln(p.out, ui.Dim(sync.DiffSummary(diff)))
	fmt.Fprintln(p.out)

	p.printQuestion(hook)
	fmt.Fprintln(p.out, "  [o] Overwrite")
	fmt.Fprintln(p.out, "  [s] Skip")
	return p.choose(ctx, "Enter choice [o/s] (default: s): ", false)
}

func (p *LinePrompter) printQuestion(hook string) {
	fmt.Fprintf(p.out, "A %s hook already exists for this repository, how would you like to proceed?\n", ui.Bold(hook))
}

// choose reads answers until one is valid. Show differences is only
// accepted when allowInspect is set.
func (p *LinePrompter) choose(ctx context.Context, prompt string, allowInspect bool) (sync.Decision, error) {
	for {
		answer, eof, err := p.readLine(ctx, prompt)
		if err != nil {
			return "", err
		}
		if answer == "" {
			return sync.DecisionSkip, nil
		}

		d, parseErr := sync.ParseDecision(answer)
		if parseErr == nil && (allowInspect || d != sync.DecisionInspect) {
			return d, nil
		}
		if eof {
			return sync.DecisionSkip, nil
		}
		fmt.Fprintf(p.out, "%s\n", ui.Warning(fmt.Sprintf("Invalid choice %q.", answer)))
	}
}

// Confirm asks a yes/no question. An empty answer or end of input selects
// defaultYes.
func (p *LinePrompter) Confirm(ctx context.Context, question string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	for {
		answer, eof, err := p.readLine(ctx, fmt.Sprintf("%s %s: ", question, hint))
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if eof {
			return defaultYes, nil
		}
		fmt.Fprintln(p.out, ui.Warning("Please answer yes or no."))
	}
}

// readLine prints prompt and reads one trimmed answer. eof reports that the
// input is exhausted.
func (p *LinePrompter) readLine(ctx context.Context, prompt string) (answer string, eof bool, err error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	fmt.Fprint(p.out, prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, fmt.Errorf("failed to read input: %w", err)
	}
	eof = errors.Is(err, io.EOF)
	if eof {
		fmt.Fprintln(p.out)
	}
	return strings.TrimSpace(line), eof, nil
}

// formatDiff colors a unified diff for the terminal.
func formatDiff(diff string) string {
	var sb strings.Builder
	for _, line := range sync.ParseDiff(diff) {
		switch line.Type {
		case sync.DiffLineAdded:
			sb.WriteString(ui.Success(line.String()))
		case sync.DiffLineRemoved:
			sb.WriteString(ui.Error(line.String()))
		case sync.DiffLineHeader:
			sb.WriteString(ui.Info(line.String()))
		default:
			sb.WriteString(line.String())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
