package internal

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/i3sv/i3sv/internal/keymap"
)

type Config struct {
	KeyMap        keymap.KeyMap
	ShortcutsPath string
	ThemePath     string
	ConfigDir     string
	NoWrap        bool
	Version       string
	// Renderer defaults to lipgloss's renderer for stdout
	Renderer *lipgloss.Renderer
}
