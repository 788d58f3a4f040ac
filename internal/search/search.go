package search

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/i3sv/i3sv/internal/dev"
	"github.com/i3sv/i3sv/internal/style"
	"github.com/muesli/reflow/truncate"
	"strings"
)

const label = "Search:"

// Model is the search bar. It runs the search over lines whenever the typed query changes
type Model struct {
	State     State
	textinput textinput.Model
	lines     []string
	visible   bool
	width     int
	styles    style.Styles
}

func New(lines []string, styles style.Styles) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorHide)

	return Model{
		State:     NewState(),
		textinput: ti,
		lines:     lines,
		styles:    styles,
	}
}

// Update forwards input to the text field while it is capturing and reruns the search when the query changes
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	dev.DebugUpdateMsg("Search", msg)
	if !m.Capturing() {
		return m, nil
	}

	var cmd tea.Cmd
	prev := m.textinput.Value()
	m.textinput, cmd = m.textinput.Update(msg)
	if m.textinput.Value() != prev {
		m.State.Run(m.lines, m.textinput.Value())
	}
	return m, cmd
}

func (m Model) View() string {
	if !m.visible {
		return ""
	}
	m.textinput.PromptStyle = m.styles.SearchInput
	m.textinput.TextStyle = m.styles.SearchInput
	m.textinput.Cursor.Style = m.styles.SearchCursor.Reverse(true)
	m.textinput.Cursor.TextStyle = m.styles.SearchInput

	prefix := m.styles.SearchBar.Render(" " + label + " ")
	info := m.styles.SearchInfo.Render(" " + m.State.Info() + " ")
	input := m.textinput.View()

	room := m.width - lipgloss.Width(prefix) - lipgloss.Width(info)
	if lipgloss.Width(input) > room {
		input = truncate.String(input, uint(max(0, room)))
	}
	gap := max(0, room-lipgloss.Width(input))
	return prefix + input + m.styles.SearchInput.Render(strings.Repeat(" ", gap)) + info
}

// Open shows the bar and starts capturing keystrokes. Existing matches are kept
func (m *Model) Open() tea.Cmd {
	m.visible = true
	m.textinput.Cursor.SetMode(cursor.CursorBlink)
	return m.textinput.Focus()
}

// StopCapturing returns keystrokes to the viewer while the bar and its matches stay
func (m *Model) StopCapturing() {
	// move cursor to end of word so it does not hide part of the query when blurred
	m.textinput.SetCursor(len(m.textinput.Value()))
	m.textinput.Cursor.SetMode(cursor.CursorHide)
	m.textinput.Blur()
}

// Close hides the bar and clears the query and its matches
func (m *Model) Close() {
	m.StopCapturing()
	m.visible = false
	m.textinput.SetValue("")
	m.State.Clear()
}

func (m *Model) Next() bool {
	return m.State.Next()
}

func (m *Model) Prev() bool {
	return m.State.Prev()
}

func (m Model) Visible() bool {
	return m.visible
}

func (m Model) Capturing() bool {
	return m.textinput.Focused()
}

func (m Model) Value() string {
	return m.textinput.Value()
}

func (m Model) Phase() Phase {
	switch {
	case !m.visible:
		return Closed
	case m.State.Query == "":
		return OpenEmpty
	case len(m.State.Matches) > 0:
		return OpenWithMatches
	default:
		return OpenNoMatches
	}
}

func (m Model) ViewHeight() int {
	if !m.visible {
		return 0
	}
	return 1
}

func (m *Model) SetWidth(width int) {
	m.width = width
	m.textinput.Width = max(1, width-lipgloss.Width(" "+label+" ")-len(" 999/999 "))
}
