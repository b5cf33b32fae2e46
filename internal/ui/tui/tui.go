// Package tui provides interactive terminal UI components using BubbleTea.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles contains reusable lipgloss styles for the TUI.
var Styles = struct {
	Title    lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Help     lipgloss.Style
	Added    lipgloss.Style
	Removed  lipgloss.Style
	Hunk     lipgloss.Style
	Context  lipgloss.Style
	Status   lipgloss.Style
}{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
	Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
	Normal:   lipgloss.NewStyle(),
	Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Added:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	Removed:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	Hunk:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
	Context:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
}

// Run starts a BubbleTea program with the given model. The program is
// killed when ctx is cancelled.
func Run(ctx context.Context, model tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	return tea.NewProgram(model, opts...).Run()
}
