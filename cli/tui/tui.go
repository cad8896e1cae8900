package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmView is the data payload for the confirmation inspector.
// It mirrors the non-TUI confirm output; positions are per-bit verdicts.
type ConfirmView struct {
	Evaluator  string
	SeedHex    string
	ItemLength int
	Positions  []bool
}

// Confirmed reports whether every position matched.
func (v ConfirmView) Confirmed() bool {
	for _, ok := range v.Positions {
		if !ok {
			return false
		}
	}
	return true
}

// Mismatches returns the mismatched position indices.
func (v ConfirmView) Mismatches() []int {
	var out []int
	for i, ok := range v.Positions {
		if !ok {
			out = append(out, i)
		}
	}
	return out
}

// ConfirmModel is a Bubble Tea model for inspecting a confirmation result.
type ConfirmModel struct {
	view     ConfirmView
	vp       viewport.Model
	ready    bool
	quitting bool
}

// NewConfirmModel creates a new confirmation inspector model.
func NewConfirmModel(view ConfirmView) ConfirmModel {
	return ConfirmModel{view: view}
}

// Init implements tea.Model.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 8
		if !m.ready {
			m.vp = viewport.New(msg.Width, max(msg.Height-headerHeight, 4))
			m.vp.SetContent(m.renderGrid())
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = max(msg.Height-headerHeight, 4)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ConfirmModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Confirmation Result"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n",
		LabelStyle.Render("Evaluator:"),
		ValueStyle.Render(m.view.Evaluator)))
	b.WriteString(fmt.Sprintf("%s %s\n",
		LabelStyle.Render("Seed:"),
		ValueStyle.Render(m.view.SeedHex)))
	b.WriteString(fmt.Sprintf("%s %s\n",
		LabelStyle.Render("Item Length:"),
		ValueStyle.Render(fmt.Sprintf("%d bytes", m.view.ItemLength))))

	verdict := "confirmed"
	if !m.view.Confirmed() {
		verdict = fmt.Sprintf("mismatch at %d of %d positions",
			len(m.view.Mismatches()), len(m.view.Positions))
	}
	b.WriteString(fmt.Sprintf("%s %s\n",
		LabelStyle.Render("Verdict:"),
		VerdictStyle(m.view.Confirmed()).Render(verdict)))

	body := m.renderGrid()
	if m.ready {
		body = m.vp.View()
	}
	help := HelpStyle.Render("↑/↓ scroll • q or Ctrl+C to quit")
	return BoxStyle.Render(b.String()+"\n"+body) + "\n" + help
}

// renderGrid lays positions out in rows of 64, a marker per bit.
func (m ConfirmModel) renderGrid() string {
	const perRow = 64

	var b strings.Builder
	for start := 0; start < len(m.view.Positions); start += perRow {
		end := min(start+perRow, len(m.view.Positions))
		b.WriteString(LabelStyle.Render(fmt.Sprintf("%6d ", start)))
		for _, ok := range m.view.Positions[start:end] {
			if ok {
				b.WriteString(MatchStyle.Render("·"))
			} else {
				b.WriteString(MismatchStyle.Render("x"))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// keyMap defines key bindings.
type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// RunConfirmTUI runs the confirmation inspector.
func RunConfirmTUI(view ConfirmView) error {
	p := tea.NewProgram(NewConfirmModel(view), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
