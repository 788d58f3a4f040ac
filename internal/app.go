package internal

// NOTE: Searching for `// #` will walk you through the main flow of the application

import (
	"fmt"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/i3sv/i3sv/internal/appconfig"
	"github.com/i3sv/i3sv/internal/command"
	"github.com/i3sv/i3sv/internal/constants"
	"github.com/i3sv/i3sv/internal/dev"
	"github.com/i3sv/i3sv/internal/document"
	"github.com/i3sv/i3sv/internal/help"
	"github.com/i3sv/i3sv/internal/keymap"
	"github.com/i3sv/i3sv/internal/message"
	"github.com/i3sv/i3sv/internal/scroll"
	"github.com/i3sv/i3sv/internal/search"
	"github.com/i3sv/i3sv/internal/style"
	"github.com/i3sv/i3sv/internal/theme"
	"github.com/i3sv/i3sv/internal/toast"
	"github.com/i3sv/i3sv/internal/viewport"
	"github.com/muesli/reflow/wrap"
	"strings"
)

const windowTitle = "i3 Shortcuts"

type Model struct {
	config    Config
	keyMap    keymap.KeyMap
	appConfig appconfig.Config
	theme     theme.Theme
	styles    style.Styles
	doc       document.Document
	viewport  viewport.Model
	search    search.Model
	scroller  scroll.Scroller
	toast     toast.Model
	// dragging is true between a left mouse press on a line and its release
	dragging      bool
	width, height int
	initialized   bool
	helpText      string
	err           error
}

// #1: Everything is read before the program starts. Reading the shortcuts is the only step that can fail
func InitialModel(c Config) Model {
	return initializedModel(Model{
		config: c,
		keyMap: c.KeyMap,
	})
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(windowTitle)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	dev.DebugUpdateMsg("App", msg)
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	// #2: The user presses a key. Keys either go to the search bar while it captures input or drive the viewer
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case message.ErrMsg:
		m.err = msg.Err

	// WindowSizeMsg arrives once on startup, then again every time the window is resized
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.initialized = true
		m = m.resize()
		return m, nil

	// #4: One step of the smooth scroll animation. The scroller schedules the next step until it comes to rest
	case message.ScrollTickMsg:
		pos, moved, next := m.scroller.Tick(msg)
		if moved {
			m.viewport.SetYFraction(pos)
		}
		return m, next

	case command.ContentCopiedToClipboardMsg:
		toastMsg := fmt.Sprintf("Copied %s to clipboard", pluralize(strings.Count(msg.Content, "\n")+1, "line"))
		if msg.Err != nil {
			toastMsg = fmt.Sprintf("Error copying to clipboard: %s", msg.Err.Error())
		}
		m.toast = toast.New(toastMsg, m.styles.Toast)
		cmds = append(cmds, m.toast.TimeoutCmd(constants.ToastDuration))
		return m, tea.Batch(cmds...)

	case toast.TimeoutMsg:
		m.toast, cmd = m.toast.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	if m.err == nil {
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.err != nil {
		return m.errorView()
	}
	if !m.initialized {
		return ""
	}
	if m.helpText != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.helpText)
	}

	var viewLines []string
	if m.search.Visible() {
		viewLines = append(viewLines, m.search.View())
	}
	viewLines = append(viewLines, strings.Split(m.viewport.View(), "\n")...)
	if toastHeight := m.toast.ViewHeight(); m.toast.Visible && toastHeight > 0 && len(viewLines) >= toastHeight {
		viewLines = viewLines[:len(viewLines)-toastHeight]
		viewLines = append(viewLines, strings.Split(m.toast.View(), "\n")...)
	}
	return strings.Join(viewLines, "\n")
}

// Err is the startup error shown on the error screen, if any
func (m Model) Err() error {
	return m.err
}

func (m Model) errorView() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	errString := wrap.String(m.err.Error(), width)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.styles.ErrorTitle.Render("Error"),
		"",
		errString,
		"",
		"press any key to exit",
	)
}

func (m Model) resize() Model {
	m.search.SetWidth(m.width)
	m.viewport.SetWidth(m.width)
	m.viewport.SetHeight(m.height - m.search.ViewHeight())
	m.scroller.Sync(m.viewport.YFraction())
	return m
}

// tea.KeyMsg handling
// ---

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	// ctrl+c quits from anywhere, other quit keys are typed into the search bar while it captures input
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// any key exits the error screen
	if m.err != nil {
		return m, tea.Quit
	}

	// if help text visible, pressing any key will dismiss it
	if m.helpText != "" {
		m.helpText = ""
		return m, nil
	}

	if m.search.Capturing() {
		return m.handleSearchKeyMsg(msg)
	}
	return m.handleViewerKeyMsg(msg)
}

// #3: Typing into the search bar reruns the search, so highlights and the revealed match follow every keystroke
func (m Model) handleSearchKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keyMap.Clear):
		m = m.closeSearch()
		return m, nil

	case key.Matches(msg, m.keyMap.Enter):
		m.search.StopCapturing()
		return m, nil

	case key.Matches(msg, m.keyMap.TabNext):
		m.search.Next()
		return m.withSearchApplied(), nil

	case key.Matches(msg, m.keyMap.TabPrev):
		m.search.Prev()
		return m.withSearchApplied(), nil
	}

	// navigation keys that cannot be typed still scroll
	if msg.Type != tea.KeyRunes {
		if delta, ok := m.scrollDelta(msg); ok {
			return m, m.scroller.Add(delta)
		}
	}

	prevQuery := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != prevQuery {
		m = m.withSearchApplied()
	}
	return m, cmd
}

func (m Model) handleViewerKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if delta, ok := m.scrollDelta(msg); ok {
		return m, m.scroller.Add(delta)
	}

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Clear):
		if m.search.Visible() {
			m = m.closeSearch()
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Help):
		m.helpText = help.MakeHelp(m.keyMap, m.styles.KeyHelp, m.fontNote())
		return m, nil

	case key.Matches(msg, m.keyMap.Search):
		cmd = m.search.Open()
		m = m.resize()
		return m, cmd

	// enter stops typing the query first, then cycles matches like n
	case key.Matches(msg, m.keyMap.NextMatch, m.keyMap.Enter):
		if m.search.Next() {
			m = m.withSearchApplied()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.PrevMatch):
		if m.search.Prev() {
			m = m.withSearchApplied()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Copy):
		return m.copySelection()
	}

	// top and bottom jump directly, cancelling the animation. Panning and unbound keys leave it running
	prevTopLine := m.viewport.TopLine()
	m.viewport, cmd = m.viewport.Update(msg)
	if m.viewport.TopLine() != prevTopLine {
		m.scroller.Stop()
		m.scroller.Sync(m.viewport.YFraction())
	}
	return m, cmd
}

func (m Model) scrollDelta(msg tea.KeyMsg) (float64, bool) {
	switch {
	case key.Matches(msg, m.keyMap.LineUp):
		return -constants.LineScrollDelta, true
	case key.Matches(msg, m.keyMap.LineDown):
		return constants.LineScrollDelta, true
	case key.Matches(msg, m.keyMap.PageUp):
		return -constants.PageScrollDelta, true
	case key.Matches(msg, m.keyMap.PageDown):
		return constants.PageScrollDelta, true
	}
	return 0, false
}

// withSearchApplied redraws the highlights from the search state and brings the current match into view
func (m Model) withSearchApplied() Model {
	state := m.search.State
	m.viewport.SetHighlights(state.Matches, state.MatchLen(), state.Current)
	if pos, ok := state.CurrentMatch(); ok {
		m.viewport.RevealPosition(pos, state.MatchLen())
		m.scroller.Stop()
		m.scroller.Sync(m.viewport.YFraction())
	}
	return m
}

func (m Model) closeSearch() Model {
	m.search.Close()
	m.viewport.ClearHighlights()
	return m.resize()
}

func (m Model) copySelection() (Model, tea.Cmd) {
	text, ok := m.viewport.SelectedText()
	if !ok {
		return m, nil
	}
	return m, command.CopyContentToClipboardCmd(document.CleanCopiedText(text))
}

func (m Model) fontNote() string {
	return fmt.Sprintf(
		"%s %dpt, headers %dpt",
		m.theme.FontFamily,
		m.appConfig.FontSize,
		m.appConfig.EffectiveHeaderFontSize(),
	)
}

// tea.MouseMsg handling
// ---

// #5: The wheel feeds the scroll animation and a left button drag selects whole lines for copying
func (m Model) handleMouseMsg(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.err != nil || m.helpText != "" {
		return m, nil
	}

	// ctrl+wheel scrolls finely, as one 120 unit wheel delta
	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Ctrl:
		return m, m.scroller.Add(scroll.WheelDelta(120))
	case msg.Button == tea.MouseButtonWheelDown && msg.Ctrl:
		return m, m.scroller.Add(scroll.WheelDelta(-120))
	case msg.Button == tea.MouseButtonWheelUp:
		return m, m.scroller.Add(-constants.LineScrollDelta)
	case msg.Button == tea.MouseButtonWheelDown:
		return m, m.scroller.Add(constants.LineScrollDelta)
	}

	line, onLine := m.viewport.LineAtRow(msg.Y - m.search.ViewHeight())
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if !onLine {
			m.viewport.ClearSelection()
			return m, nil
		}
		m.viewport.StartSelection(line)
		m.dragging = true

	case tea.MouseActionMotion:
		if m.dragging && onLine {
			m.viewport.ExtendSelection(line)
		}

	case tea.MouseActionRelease:
		m.dragging = false
	}
	return m, nil
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
