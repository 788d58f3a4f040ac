package internal

import (
	"errors"
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/i3sv/i3sv/internal/appconfig"
	"github.com/i3sv/i3sv/internal/dev"
	"github.com/i3sv/i3sv/internal/document"
	"github.com/i3sv/i3sv/internal/keymap"
	"github.com/i3sv/i3sv/internal/search"
	"github.com/i3sv/i3sv/internal/shortcuts"
	"github.com/i3sv/i3sv/internal/style"
	"github.com/i3sv/i3sv/internal/theme"
	"github.com/i3sv/i3sv/internal/viewport"
	"go.uber.org/zap"
)

// initializedModel reads the three input files and lays out the document. Only a failure to read the shortcuts
// is fatal, and it is kept on the model so the error screen can show it
func initializedModel(m Model) Model {
	dev.Debug("initializing")
	defer dev.Debug("done initializing")

	m.appConfig = appconfig.Load(m.config.ConfigDir)
	m.theme = theme.Load(m.config.ThemePath)

	renderer := m.config.Renderer
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	m.styles = style.New(renderer, m.theme)

	opts := document.DefaultOptions()
	opts.Wrap = m.appConfig.WrapCommand && !m.config.NoWrap
	dev.Debug(
		"settings",
		zap.Int("fontSize", m.appConfig.FontSize),
		zap.Int("headerFontSize", m.appConfig.EffectiveHeaderFontSize()),
		zap.Bool("wrap", opts.Wrap),
	)

	groups, err := shortcuts.ParseFile(m.config.ShortcutsPath)
	if err != nil {
		m.err = loadError(err)
		return m
	}
	m.doc = document.Build(groups, opts)

	m.viewport = viewport.New(m.width, m.height, viewportKeyMap(m.keyMap), m.styles)
	m.viewport.SetDocument(m.doc)
	m.search = search.New(m.doc.LineTexts(), m.styles)
	return m
}

func loadError(err error) error {
	if errors.Is(err, shortcuts.ErrNotFound) {
		return err
	}
	return fmt.Errorf("failed to load shortcuts: %w", err)
}

func viewportKeyMap(km keymap.KeyMap) viewport.KeyMap {
	return viewport.KeyMap{
		Top:    km.Top,
		Bottom: km.Bottom,
		Left:   km.PanLeft,
		Right:  km.PanRight,
	}
}
