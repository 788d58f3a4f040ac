package appconfig

import (
	"fmt"
	"github.com/i3sv/i3sv/internal/dev"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"os"
	"path/filepath"
)

const fileName = "config.toml"

type Config struct {
	FontSize       int
	HeaderFontSize int
	WrapCommand    bool
}

func Default() Config {
	return Config{
		FontSize:       10,
		HeaderFontSize: 12,
		WrapCommand:    true,
	}
}

// EffectiveHeaderFontSize keeps headers at least 4 points above body text
func (c Config) EffectiveHeaderFontSize() int {
	return max(c.HeaderFontSize, c.FontSize+4)
}

// CandidatePaths lists config locations in priority order. dir may be empty
func CandidatePaths(dir string) []string {
	var paths []string
	if dir != "" {
		paths = append(paths, filepath.Join(dir, fileName))
	}
	return append(paths, filepath.Join(homeDir(), ".config", "i3-shortcut-viewer", fileName))
}

// Load reads the first existing candidate config. Values are never merged across files, and any error reading
// the chosen file yields the defaults
func Load(dir string) Config {
	path := firstExisting(CandidatePaths(dir))
	if path == "" {
		return Default()
	}
	c, err := loadFile(path)
	if err != nil {
		dev.Debug("using default app config", zap.String("path", path), zap.Error(err))
		return Default()
	}
	return c
}

func loadFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading app config %s: %w", path, err)
	}

	c := Default()
	if v.IsSet("font.size") {
		n, err := cast.ToIntE(v.Get("font.size"))
		if err != nil {
			return Config{}, fmt.Errorf("font.size: %w", err)
		}
		c.FontSize = n
	}
	if v.IsSet("font.header_size") {
		n, err := cast.ToIntE(v.Get("font.header_size"))
		if err != nil {
			return Config{}, fmt.Errorf("font.header_size: %w", err)
		}
		c.HeaderFontSize = n
	}
	if v.IsSet("display.wrap_command") {
		b, err := cast.ToBoolE(v.Get("display.wrap_command"))
		if err != nil {
			return Config{}, fmt.Errorf("display.wrap_command: %w", err)
		}
		c.WrapCommand = b
	}
	dev.Debug("loaded app config", zap.String("path", path), zap.Any("config", c))
	return c, nil
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	return os.Getenv("USERPROFILE") // Windows
}
