package sync

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 3

// DiffLine represents a single line in a diff.
type DiffLine struct {
	// Type indicates if this line is added, removed, unchanged or a header.
	Type DiffLineType

	// Content is the line without its prefix.
	Content string
}

// DiffLineType indicates the type of a diff line.
type DiffLineType string

const (
	// DiffLineContext is an unchanged line.
	DiffLineContext DiffLineType = " "

	// DiffLineAdded is a line only present in the staged hook.
	DiffLineAdded DiffLineType = "+"

	// DiffLineRemoved is a line only present in the installed hook.
	DiffLineRemoved DiffLineType = "-"

	// DiffLineHeader is a file header or hunk marker.
	DiffLineHeader DiffLineType = "@"
)

// String returns the line with its diff prefix.
func (dl DiffLine) String() string {
	if dl.Type == DiffLineHeader {
		return dl.Content
	}
	return string(dl.Type) + dl.Content
}

// unifiedDiff renders the change from the installed content (a) to the
// staged content (b).
func unifiedDiff(fromFile, toFile string, a, b []byte) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  diffContext,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to render diff: %w", err)
	}
	return text, nil
}

// ParseDiff splits unified diff text into typed lines for rendering.
func ParseDiff(diff string) []DiffLine {
	if diff == "" {
		return nil
	}

	raw := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	lines := make([]DiffLine, 0, len(raw))
	for _, l := range raw {
		switch {
		case strings.HasPrefix(l, "---"), strings.HasPrefix(l, "+++"), strings.HasPrefix(l, "@@"):
			lines = append(lines, DiffLine{Type: DiffLineHeader, Content: l})
		case strings.HasPrefix(l, "+"):
			lines = append(lines, DiffLine{Type: DiffLineAdded, Content: l[1:]})
		case strings.HasPrefix(l, "-"):
			lines = append(lines, DiffLine{Type: DiffLineRemoved, Content: l[1:]})
		case strings.HasPrefix(l, " "):
			lines = append(lines, DiffLine{Type: DiffLineContext, Content: l[1:]})
		default:
			lines = append(lines, DiffLine{Type: DiffLineContext, Content: l})
		}
	}
	return lines
}

// DiffSummary returns a brief description of the changes in diff.
func DiffSummary(diff string) string {
	hunks, added, removed := 0, 0, 0
	for _, line := range ParseDiff(diff) {
		switch {
		case line.Type == DiffLineHeader && strings.HasPrefix(line.Content, "@@"):
			hunks++
		case line.Type == DiffLineAdded:
			added++
		case line.Type == DiffLineRemoved:
			removed++
		}
	}
	return fmt.Sprintf("%d hunk(s), +%d/-%d lines", hunks, added, removed)
}
