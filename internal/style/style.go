package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/i3sv/i3sv/internal/color"
	"github.com/i3sv/i3sv/internal/dev"
	"github.com/i3sv/i3sv/internal/document"
	"github.com/i3sv/i3sv/internal/theme"
	"github.com/muesli/termenv"
	"go.uber.org/zap"
	"io"
)

const (
	searchBarLighten = 0.15
	selectionLighten = 0.2
	footerAdjust     = 0.6
)

type Styles struct {
	Regular       lipgloss.Style
	Header        lipgloss.Style
	Separator     lipgloss.Style
	Keybinding    lipgloss.Style
	Command       lipgloss.Style
	WrapIndicator lipgloss.Style
	Match         lipgloss.Style
	CurrentMatch  lipgloss.Style
	Selection     lipgloss.Style
	SearchBar     lipgloss.Style
	SearchInput   lipgloss.Style
	SearchInfo    lipgloss.Style
	SearchCursor  lipgloss.Style
	Footer        lipgloss.Style
	KeyHelp       lipgloss.Style
	Toast         lipgloss.Style
	ErrorTitle    lipgloss.Style
}

// NewRenderer returns a renderer writing to w. Pass termenv.WithProfile to force a color profile
func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *lipgloss.Renderer {
	return lipgloss.NewRenderer(w, opts...)
}

// New derives the viewer styles from t. Headers are bold and underlined since a terminal cannot enlarge them
func New(r *lipgloss.Renderer, t theme.Theme) Styles {
	bg := lipgloss.Color(t.Background)
	fg := lipgloss.Color(t.Foreground)
	searchBg := lipgloss.Color(color.Lighten(t.Background, searchBarLighten))

	regular := r.NewStyle().Foreground(fg).Background(bg)
	searchBar := regular.Background(searchBg)

	s := Styles{
		Regular:       regular,
		Header:        regular.Foreground(lipgloss.Color(t.Bright.Blue)).Bold(true).Underline(true),
		Separator:     regular.Foreground(lipgloss.Color(t.Bright.Black)),
		Keybinding:    regular.Foreground(lipgloss.Color(t.Bright.Green)),
		Command:       regular,
		WrapIndicator: regular.Foreground(lipgloss.Color(t.Bright.Black)),
		Match:         regular.Foreground(bg).Background(lipgloss.Color(t.Normal.Yellow)),
		CurrentMatch:  regular.Foreground(bg).Background(lipgloss.Color(t.Bright.Green)),
		Selection: regular.
			Foreground(lipgloss.Color(t.Bright.White)).
			Background(lipgloss.Color(color.Lighten(t.Background, selectionLighten))),
		SearchBar:    searchBar,
		SearchInput:  regular,
		SearchInfo:   searchBar.Foreground(lipgloss.Color(t.Bright.Blue)),
		SearchCursor: regular.Foreground(lipgloss.Color(t.Bright.Cyan)),
		Footer:       regular.Foreground(lipgloss.Color(color.Adjust(t.Foreground, footerAdjust))),
		KeyHelp:      regular.Foreground(lipgloss.Color(t.Bright.Green)).Bold(true),
		Toast:        regular.Foreground(bg).Background(lipgloss.Color(t.Bright.Blue)).Padding(0, 1),
		ErrorTitle:   regular.Foreground(lipgloss.Color(t.Bright.Red)).Bold(true),
	}
	debugColors(t)
	return s
}

// ForKind is the style of a document segment
func (s Styles) ForKind(k document.Kind) lipgloss.Style {
	switch k {
	case document.Header:
		return s.Header
	case document.Separator:
		return s.Separator
	case document.Keybinding:
		return s.Keybinding
	case document.Command:
		return s.Command
	case document.WrapIndicator:
		return s.WrapIndicator
	default:
		return s.Regular
	}
}

func debugColors(t theme.Theme) {
	dev.Debug(
		"styles built",
		zap.String("background", t.Background),
		zap.String("foreground", t.Foreground),
		zap.String("searchBackground", color.Lighten(t.Background, searchBarLighten)),
		zap.String("selectionBackground", color.Lighten(t.Background, selectionLighten)),
		zap.String("footerForeground", color.Adjust(t.Foreground, footerAdjust)),
	)
}
