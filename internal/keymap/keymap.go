package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyMap struct {
	Bottom    key.Binding
	Clear     key.Binding
	Copy      key.Binding
	Enter     key.Binding
	Help      key.Binding
	LineDown  key.Binding
	LineUp    key.Binding
	NextMatch key.Binding
	PageDown  key.Binding
	PageUp    key.Binding
	PanLeft   key.Binding
	PanRight  key.Binding
	PrevMatch key.Binding
	Quit      key.Binding
	Search    key.Binding
	TabNext   key.Binding
	TabPrev   key.Binding
	Top       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close search / quit"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y", "ctrl+y"),
			key.WithHelp("y", "copy selected lines"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "stop typing / next match"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "show/hide help"),
		),
		LineDown: key.NewBinding(
			key.WithKeys("down", "j", "ctrl+n"),
			key.WithHelp("↓/j", "scroll down"),
		),
		LineUp: key.NewBinding(
			key.WithKeys("up", "k", "ctrl+p"),
			key.WithHelp("↑/k", "scroll up"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next match"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PanLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "pan left"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "pan right"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "previous match"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		TabNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next match while typing"),
		),
		TabPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous match while typing"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
	}
}

// NavigationKeyBindings are shown in the first help block
func NavigationKeyBindings(km KeyMap) []key.Binding {
	return []key.Binding{
		km.LineUp,
		km.LineDown,
		km.PageUp,
		km.PageDown,
		km.Top,
		km.Bottom,
		km.PanLeft,
		km.PanRight,
		WithDesc(km.Copy, "copy mouse selection"),
		km.Help,
		km.Quit,
	}
}

func SearchKeyBindings(km KeyMap) []key.Binding {
	return []key.Binding{
		km.Search,
		km.Enter,
		km.TabNext,
		km.TabPrev,
		km.NextMatch,
		km.PrevMatch,
		km.Clear,
	}
}

func WithDesc(k key.Binding, d string) key.Binding {
	newK := k
	newK.SetHelp(newK.Help().Key, d)
	return newK
}
