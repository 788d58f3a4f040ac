package internal

import (
	"errors"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/i3sv/i3sv/internal/command"
	"github.com/i3sv/i3sv/internal/fixtures"
	"github.com/i3sv/i3sv/internal/keymap"
	"github.com/i3sv/i3sv/internal/message"
	"github.com/i3sv/i3sv/internal/search"
	"github.com/i3sv/i3sv/internal/shortcuts"
	"github.com/i3sv/i3sv/internal/style"
	"github.com/muesli/termenv"
	"io"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

// lines:
// 0  Window Management
// 1  ────
// 2  $mod+f	fullscreen toggle
// 3  $mod+Shift+q	kill
// 4
// 5
// 6  Launchers
// 7  ────
// 8  $mod+Return	alacritty
// 9  $mod+d	rofi -show drun
// 10
const shortcutsFile = `# Window Management
bindsym $mod+f fullscreen toggle
bindsym $mod+Shift+q kill

# Launchers
bindsym $mod+Return exec alacritty
bindsym $mod+d exec --no-startup-id rofi -show drun
`

var (
	escKeyMsg   = tea.KeyMsg{Type: tea.KeyEsc}
	enterKeyMsg = tea.KeyMsg{Type: tea.KeyEnter}
)

func runeKeyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testConfig(t *testing.T, shortcutsPath string) Config {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return Config{
		KeyMap:        keymap.DefaultKeyMap(),
		ShortcutsPath: shortcutsPath,
		ThemePath:     filepath.Join(t.TempDir(), "alacritty.toml"),
		ConfigDir:     t.TempDir(),
		Renderer:      style.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii)),
	}
}

func newTestModel(t *testing.T, width, height int) Model {
	t.Helper()
	m := InitialModel(testConfig(t, fixtures.WriteFile(t, "shortcuts", shortcutsFile)))
	if m.Err() != nil {
		t.Fatalf("unexpected error %v", m.Err())
	}
	m, _ = update(t, m, tea.WindowSizeMsg{Width: width, Height: height})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	newModel, cmd := m.Update(msg)
	return newModel.(Model), cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, runeKeyMsg(string(r)))
	}
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestInitialModel_MissingShortcuts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope")
	m := InitialModel(testConfig(t, path))
	if !errors.Is(m.Err(), shortcuts.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", m.Err())
	}
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})

	view := m.View()
	for _, want := range []string{"Error", "shortcuts file not found", "press any key to exit"} {
		if !strings.Contains(view, want) {
			t.Errorf("error view missing %q:\n%s", want, view)
		}
	}

	_, cmd := update(t, m, runeKeyMsg("x"))
	fixtures.Cmp(t, true, isQuit(cmd))
}

func TestInit_SetsTitle(t *testing.T) {
	m := newTestModel(t, 80, 20)
	if m.Init() == nil {
		t.Error("expected window title command")
	}
}

func TestView_ShowsDocument(t *testing.T) {
	m := newTestModel(t, 80, 20)
	view := m.View()
	for _, want := range []string{"Window Management", "$mod+Shift+q", "rofi -show drun", "Launchers"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	fixtures.Cmp(t, 20, len(strings.Split(view, "\n")))
}

func TestSearch_Flow(t *testing.T) {
	m := newTestModel(t, 80, 6)

	m, _ = update(t, m, runeKeyMsg("/"))
	fixtures.Cmp(t, search.OpenEmpty, m.search.Phase())

	m = typeText(t, m, "mod")
	fixtures.Cmp(t, search.OpenWithMatches, m.search.Phase())
	fixtures.Cmp(t, "1/4", m.search.State.Info())
	firstLine := strings.Split(m.View(), "\n")[0]
	if !strings.HasPrefix(firstLine, " Search: mod") || !strings.Contains(firstLine, "1/4") {
		t.Errorf("unexpected search bar %q", firstLine)
	}
	fixtures.Cmp(t, 6, len(strings.Split(m.View(), "\n")))

	// stop typing, then jump with n
	m, _ = update(t, m, enterKeyMsg)
	fixtures.Cmp(t, false, m.search.Capturing())
	m, _ = update(t, m, runeKeyMsg("n"))
	m, _ = update(t, m, runeKeyMsg("n"))
	fixtures.Cmp(t, "3/4", m.search.State.Info())
	// the search bar leaves four content rows above the footer, so line 8 is revealed at the bottom
	fixtures.Cmp(t, 5, m.viewport.TopLine())

	m, _ = update(t, m, runeKeyMsg("N"))
	fixtures.Cmp(t, "2/4", m.search.State.Info())

	m, cmd := update(t, m, escKeyMsg)
	fixtures.Cmp(t, false, isQuit(cmd))
	fixtures.Cmp(t, search.Closed, m.search.Phase())
	fixtures.Cmp(t, "", m.search.Value())
	if strings.Contains(m.View(), "Search:") {
		t.Error("search bar still shown after closing")
	}

	_, cmd = update(t, m, escKeyMsg)
	fixtures.Cmp(t, true, isQuit(cmd))
}

func TestSearch_EnterCyclesMatches(t *testing.T) {
	m := newTestModel(t, 80, 20)
	m, _ = update(t, m, runeKeyMsg("/"))
	m = typeText(t, m, "mod")

	m, _ = update(t, m, enterKeyMsg)
	fixtures.Cmp(t, false, m.search.Capturing())
	fixtures.Cmp(t, "1/4", m.search.State.Info())

	for _, want := range []string{"2/4", "3/4", "4/4", "1/4"} {
		m, _ = update(t, m, enterKeyMsg)
		fixtures.Cmp(t, want, m.search.State.Info())
	}
}

func TestEnter_WithoutSearchDoesNothing(t *testing.T) {
	m := newTestModel(t, 80, 20)
	m, cmd := update(t, m, enterKeyMsg)
	if cmd != nil {
		t.Error("expected no command")
	}
	fixtures.Cmp(t, search.Closed, m.search.Phase())
}

func TestSearch_NoMatches(t *testing.T) {
	m := newTestModel(t, 80, 20)
	m, _ = update(t, m, runeKeyMsg("/"))
	m = typeText(t, m, "firefox")
	fixtures.Cmp(t, search.OpenNoMatches, m.search.Phase())
	if !strings.Contains(strings.Split(m.View(), "\n")[0], "No matches") {
		t.Errorf("expected no matches info, got %q", strings.Split(m.View(), "\n")[0])
	}
}

func TestSearch_TabNavigatesWhileTyping(t *testing.T) {
	m := newTestModel(t, 80, 20)
	m, _ = update(t, m, runeKeyMsg("/"))
	m = typeText(t, m, "mod")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	fixtures.Cmp(t, "2/4", m.search.State.Info())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	fixtures.Cmp(t, "4/4", m.search.State.Info())
	fixtures.Cmp(t, true, m.search.Capturing())
}

func TestSearch_QuitKeysAreTyped(t *testing.T) {
	m := newTestModel(t, 80, 20)
	m, _ = update(t, m, runeKeyMsg("/"))
	m, cmd := update(t, m, runeKeyMsg("q"))
	fixtures.Cmp(t, false, isQuit(cmd))
	fixtures.Cmp(t, "q", m.search.Value())

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	fixtures.Cmp(t, true, isQuit(cmd))
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, 80, 20)
	_, cmd := update(t, m, runeKeyMsg("q"))
	fixtures.Cmp(t, true, isQuit(cmd))
}

func TestScroll_AnimatesToRest(t *testing.T) {
	m := newTestModel(t, 80, 6)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	if cmd == nil {
		t.Fatal("expected the animation to start")
	}
	tick, ok := cmd().(message.ScrollTickMsg)
	if !ok {
		t.Fatalf("expected a scroll tick, got %T", cmd())
	}

	// a second input while animating only adds velocity
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	if cmd != nil {
		t.Error("expected no second animation")
	}

	for i := 0; ; i++ {
		var next tea.Cmd
		m, next = update(t, m, tick)
		if next == nil {
			break
		}
		if i > 1000 {
			t.Fatal("animation did not stop")
		}
	}
	fixtures.Cmp(t, false, m.scroller.Running())
	fixtures.Cmp(t, 0.0, m.scroller.Velocity)
	if m.viewport.TopLine() == 0 {
		t.Error("expected the view to have scrolled down")
	}
}

func TestScroll_UnboundKeysKeepAnimation(t *testing.T) {
	m := newTestModel(t, 80, 6)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	tick := cmd().(message.ScrollTickMsg)
	m, next := update(t, m, tick)
	if next == nil {
		t.Fatal("expected the animation to continue")
	}
	velocity := m.scroller.Velocity

	for _, k := range []string{"x", "l", "h"} {
		m, _ = update(t, m, runeKeyMsg(k))
		fixtures.Cmp(t, true, m.scroller.Running())
		fixtures.Cmp(t, velocity, m.scroller.Velocity)
	}

	_, next = update(t, m, tick)
	if next == nil {
		t.Error("expected the pending tick to continue the animation")
	}
}

func TestScroll_JumpStopsAnimation(t *testing.T) {
	m := newTestModel(t, 80, 6)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	m, _ = update(t, m, runeKeyMsg("G"))
	fixtures.Cmp(t, false, m.scroller.Running())
	fixtures.Cmp(t, 0.0, m.scroller.Velocity)
	fixtures.Cmp(t, 1.0, m.scroller.Position)
}

func TestScroll_Wheel(t *testing.T) {
	m := newTestModel(t, 80, 6)
	m, cmd := update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if cmd == nil {
		t.Fatal("expected the animation to start")
	}
	fixtures.Cmp(t, 0.08, m.scroller.Velocity)

	m = newTestModel(t, 80, 6)
	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress, Ctrl: true})
	if math.Abs(m.scroller.Velocity-0.03) > 1e-9 {
		t.Errorf("expected fine downward velocity, got %f", m.scroller.Velocity)
	}
}

func TestTopBottom(t *testing.T) {
	m := newTestModel(t, 80, 6)
	m, _ = update(t, m, runeKeyMsg("G"))
	fixtures.Cmp(t, 6, m.viewport.TopLine())
	fixtures.Cmp(t, 1.0, m.scroller.Position)

	m, _ = update(t, m, runeKeyMsg("g"))
	fixtures.Cmp(t, 0, m.viewport.TopLine())
	fixtures.Cmp(t, 0.0, m.scroller.Position)
}

func TestSelectAndCopy(t *testing.T) {
	m := newTestModel(t, 80, 20)

	_, cmd := update(t, m, runeKeyMsg("y"))
	if cmd != nil {
		t.Error("copy without a selection should do nothing")
	}

	m, _ = update(t, m, tea.MouseMsg{Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{Y: 3, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{Y: 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
	fixtures.Cmp(t, false, m.dragging)

	text, ok := m.viewport.SelectedText()
	fixtures.Cmp(t, true, ok)
	fixtures.Cmp(t, "$mod+f\tfullscreen toggle\n$mod+Shift+q\tkill", text)

	m, cmd = update(t, m, runeKeyMsg("y"))
	if cmd == nil {
		t.Fatal("expected a copy command")
	}

	m, cmd = update(t, m, command.ContentCopiedToClipboardMsg{Content: text})
	if cmd == nil {
		t.Error("expected a toast timeout")
	}
	view := m.View()
	if !strings.Contains(view, "Copied 2 lines to clipboard") {
		t.Errorf("expected toast in view:\n%s", view)
	}

	m, _ = update(t, m, tea.MouseMsg{Y: 19, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	fixtures.Cmp(t, false, m.viewport.HasSelection())
}

func TestCopyError(t *testing.T) {
	m := newTestModel(t, 80, 20)
	m, _ = update(t, m, command.ContentCopiedToClipboardMsg{Content: "x", Err: errors.New("no clipboard")})
	if !strings.Contains(m.View(), "Error copying to clipboard: no clipboard") {
		t.Errorf("expected error toast:\n%s", m.View())
	}
}

func TestHelp(t *testing.T) {
	m := newTestModel(t, 80, 30)
	m, _ = update(t, m, runeKeyMsg("?"))
	view := m.View()
	if !strings.Contains(view, "Help (press any key to hide)") || !strings.Contains(view, "Monospace 10pt, headers 14pt") {
		t.Errorf("unexpected help view:\n%s", view)
	}

	m, cmd := update(t, m, runeKeyMsg("q"))
	fixtures.Cmp(t, false, isQuit(cmd))
	fixtures.Cmp(t, "", m.helpText)
}

func TestNoWrap(t *testing.T) {
	long := "bindsym $mod+x exec " + strings.Repeat("word ", 20) + "\n"
	c := testConfig(t, fixtures.WriteFile(t, "shortcuts", long))

	wrapped := InitialModel(c)
	fixtures.Cmp(t, 5, len(wrapped.doc.Lines))

	c.NoWrap = true
	unwrapped := InitialModel(c)
	fixtures.Cmp(t, 4, len(unwrapped.doc.Lines))
}

func TestPluralize(t *testing.T) {
	fixtures.Cmp(t, "1 line", pluralize(1, "line"))
	fixtures.Cmp(t, "3 lines", pluralize(3, "line"))
}
