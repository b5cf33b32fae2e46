package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/klauern/hooksync/internal/sync"
)

// ConflictPromptResult contains the outcome of a conflict prompt.
type ConflictPromptResult struct {
	Decision  sync.Decision
	Cancelled bool
}

// promptPhase is what the prompt is asking for.
type promptPhase int

const (
	// phaseChoose offers overwrite, skip and show differences.
	phaseChoose promptPhase = iota
	// phaseDiff shows the diff and offers overwrite and skip.
	phaseDiff
)

type conflictPromptKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Overwrite key.Binding
	Skip      key.Binding
	Inspect   key.Binding
	Quit      key.Binding
}

func defaultConflictPromptKeyMap() conflictPromptKeyMap {
	return conflictPromptKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Overwrite: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "overwrite"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip"),
		),
		Inspect: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "show differences"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// choiceLabel returns the menu label for d.
func choiceLabel(d sync.Decision) string {
	caser := cases.Title(language.English)
	if d == sync.DecisionInspect {
		return caser.String("show differences")
	}
	return caser.String(d.String())
}

func shortcut(d sync.Decision) string {
	if d == sync.DecisionInspect {
		return "d"
	}
	return d.String()[:1]
}

// ConflictPromptModel is the BubbleTea model asking how to resolve one
// hook conflict.
type ConflictPromptModel struct {
	hook     string
	diff     string
	phase    promptPhase
	choices  []sync.Decision
	cursor   int
	keys     conflictPromptKeyMap
	viewport viewport.Model
	ready    bool
	width    int
	result   ConflictPromptResult
	quitting bool
}

// NewConflictPromptModel creates a prompt offering overwrite, skip and
// show differences for hook.
func NewConflictPromptModel(hook string) ConflictPromptModel {
	return ConflictPromptModel{
		hook:    hook,
		phase:   phaseChoose,
		choices: []sync.Decision{sync.DecisionOverwrite, sync.DecisionSkip, sync.DecisionInspect},
		cursor:  1,
		keys:    defaultConflictPromptKeyMap(),
		result:  ConflictPromptResult{Decision: sync.DecisionSkip},
	}
}

// NewDiffPromptModel creates a prompt showing diff and offering overwrite
// and skip for hook.
func NewDiffPromptModel(hook, diff string) ConflictPromptModel {
	m := NewConflictPromptModel(hook)
	m.diff = diff
	m.phase = phaseDiff
	m.choices = []sync.Decision{sync.DecisionOverwrite, sync.DecisionSkip}
	return m
}

// Init implements tea.Model.
func (m ConflictPromptModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ConflictPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.phase == phaseDiff {
			headerHeight := 4 // Question + spacing
			footerHeight := 4 // Choices + status + help
			height := max(msg.Height-headerHeight-footerHeight, 5)
			if !m.ready {
				m.viewport = viewport.New(msg.Width, height)
				m.viewport.SetContent(m.renderDiff(msg.Width))
				m.ready = true
			} else {
				m.viewport.Width = msg.Width
				m.viewport.Height = height
				m.viewport.SetContent(m.renderDiff(msg.Width))
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.result = ConflictPromptResult{Decision: sync.DecisionSkip, Cancelled: true}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Overwrite):
			return m.choose(sync.DecisionOverwrite)

		case key.Matches(msg, m.keys.Skip):
			return m.choose(sync.DecisionSkip)

		case key.Matches(msg, m.keys.Inspect) && m.phase == phaseChoose:
			return m.choose(sync.DecisionInspect)

		case key.Matches(msg, m.keys.Select):
			return m.choose(m.choices[m.cursor])

		case key.Matches(msg, m.keys.Up) && m.phase == phaseChoose:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down) && m.phase == phaseChoose:
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	if m.phase == phaseDiff && m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ConflictPromptModel) choose(d sync.Decision) (tea.Model, tea.Cmd) {
	m.result = ConflictPromptResult{Decision: d}
	m.quitting = true
	return m, tea.Quit
}

// renderDiff colors the unified diff line by line.
func (m ConflictPromptModel) renderDiff(width int) string {
	lines := sync.ParseDiff(m.diff)
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		text := truncateText(line.String(), width)
		switch line.Type {
		case sync.DiffLineAdded:
			rendered = append(rendered, Styles.Added.Render(text))
		case sync.DiffLineRemoved:
			rendered = append(rendered, Styles.Removed.Render(text))
		case sync.DiffLineHeader:
			rendered = append(rendered, Styles.Hunk.Render(text))
		default:
			rendered = append(rendered, Styles.Context.Render(text))
		}
	}
	return strings.Join(rendered, "\n")
}

func (m ConflictPromptModel) question() string {
	if m.phase == phaseDiff {
		return fmt.Sprintf("Differences between the installed and staged %s hook:", m.hook)
	}
	return fmt.Sprintf("A %s hook already exists for this repository, how would you like to proceed?", m.hook)
}

// View implements tea.Model.
func (m ConflictPromptModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(Styles.Title.Render(wrapText(m.question(), m.width)))
	b.WriteString("\n\n")

	if m.phase == phaseDiff {
		if !m.ready {
			return b.String() + "Loading..."
		}
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(Styles.Status.Render(fmt.Sprintf("%s • Scroll: %d%%",
			sync.DiffSummary(m.diff), int(m.viewport.ScrollPercent()*100))))
		b.WriteString("\n")
		b.WriteString(Styles.Help.Render("o overwrite • s skip • ↑/↓ scroll • q quit"))
		return b.String()
	}

	for i, d := range m.choices {
		line := fmt.Sprintf("[%s] %s", shortcut(d), choiceLabel(d))
		if i == m.cursor {
			b.WriteString(Styles.Selected.Render("> " + line))
		} else {
			b.WriteString(Styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(Styles.Help.Render("↑/↓ move • enter select • o/s/d choose • q quit"))
	return b.String()
}

// Result returns the result of the user interaction.
func (m ConflictPromptModel) Result() ConflictPromptResult {
	return m.result
}
