package theme

import (
	"errors"
	"fmt"
	"github.com/i3sv/i3sv/internal/color"
	"github.com/i3sv/i3sv/internal/dev"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"io/fs"
	"os"
	"path/filepath"
)

var ErrInvalidTheme = errors.New("invalid theme")

// Palette is the set of eight ANSI colors, as #rrggbb
type Palette struct {
	Black   string
	Red     string
	Green   string
	Yellow  string
	Blue    string
	Magenta string
	Cyan    string
	White   string
}

type Theme struct {
	Background string
	Foreground string
	Normal     Palette
	Bright     Palette
	FontFamily string
	FontSize   int
}

func Default() Theme {
	return Theme{
		Background: "#2e3440",
		Foreground: "#d8dee9",
		Normal: Palette{
			Black:   "#2e3436",
			Red:     "#cc0000",
			Green:   "#73d216",
			Yellow:  "#edd400",
			Blue:    "#3465a4",
			Magenta: "#75507b",
			Cyan:    "#06989a",
			White:   "#d3d7cf",
		},
		Bright: Palette{
			Black:   "#2e3436",
			Red:     "#ef2929",
			Green:   "#8ae234",
			Yellow:  "#fce94f",
			Blue:    "#729fcf",
			Magenta: "#ad7fa8",
			Cyan:    "#34e2e2",
			White:   "#eeeeec",
		},
		FontFamily: "Monospace",
		FontSize:   10,
	}
}

func DefaultPath() string {
	return filepath.Join(homeDir(), ".config", "alacritty", "alacritty.toml")
}

// Load reads the alacritty config at path (DefaultPath if empty). It never fails: every field missing from the
// file, or not reached because of an error, keeps its default
func Load(path string) Theme {
	t, err := LoadStrict(path)
	if err != nil {
		dev.Debug("theme partially loaded", zap.Error(err))
	}
	return t
}

// LoadStrict is Load that also reports why the file could not be fully applied. The returned Theme is always
// usable and holds every override applied before the failure. A missing file is not an error
func LoadStrict(path string) (Theme, error) {
	t := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return t, nil
		}
		return t, fmt.Errorf("reading theme %s: %w", path, err)
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return t, fmt.Errorf("%w: parsing %s: %w", ErrInvalidTheme, path, err)
	}
	if err := t.apply(doc); err != nil {
		return t, fmt.Errorf("%w: %s: %w", ErrInvalidTheme, path, err)
	}
	return t, nil
}

func (t *Theme) apply(doc map[string]any) error {
	colors, err := subTable(doc, "colors")
	if err != nil {
		return err
	}
	primary, err := subTable(colors, "primary")
	if err != nil {
		return err
	}
	if err := setColor(primary, "background", &t.Background); err != nil {
		return err
	}
	if err := setColor(primary, "foreground", &t.Foreground); err != nil {
		return err
	}
	for _, p := range []struct {
		name    string
		palette *Palette
	}{
		{"normal", &t.Normal},
		{"bright", &t.Bright},
	} {
		table, err := subTable(colors, p.name)
		if err != nil {
			return err
		}
		if err := p.palette.apply(table); err != nil {
			return fmt.Errorf("colors.%s: %w", p.name, err)
		}
	}

	font, err := subTable(doc, "font")
	if err != nil {
		return err
	}
	if v, ok := font["size"]; ok {
		size, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("font.size: %w", err)
		}
		t.FontSize = size
	}
	normal, err := subTable(font, "normal")
	if err != nil {
		return err
	}
	if v, ok := normal["family"]; ok {
		family, err := cast.ToStringE(v)
		if err != nil {
			return fmt.Errorf("font.normal.family: %w", err)
		}
		t.FontFamily = family
	}
	return nil
}

func (p *Palette) apply(table map[string]any) error {
	fields := []struct {
		name string
		dst  *string
	}{
		{"black", &p.Black},
		{"red", &p.Red},
		{"green", &p.Green},
		{"yellow", &p.Yellow},
		{"blue", &p.Blue},
		{"magenta", &p.Magenta},
		{"cyan", &p.Cyan},
		{"white", &p.White},
	}
	for _, f := range fields {
		if err := setColor(table, f.name, f.dst); err != nil {
			return err
		}
	}
	return nil
}

// subTable returns the nested table at key, or nil if absent. A nil parent yields nil
func subTable(parent map[string]any, key string) (map[string]any, error) {
	v, ok := parent[key]
	if !ok {
		return nil, nil
	}
	table, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a table, got %T", key, v)
	}
	return table, nil
}

func setColor(table map[string]any, key string, dst *string) error {
	v, ok := table[key]
	if !ok {
		return nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	hex, err := color.Normalize(s)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = hex
	return nil
}

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	return os.Getenv("USERPROFILE") // Windows
}
