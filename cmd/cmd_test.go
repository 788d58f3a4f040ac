package cmd

import (
	"bytes"
	"github.com/i3sv/i3sv/internal"
	"github.com/i3sv/i3sv/internal/fixtures"
	"github.com/spf13/pflag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPrintConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configDir := t.TempDir()
	configPath := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[font]\nsize = 12\n\n[display]\nwrap_command = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	printConfig(&buf, internal.Config{
		ShortcutsPath: "/tmp/shortcuts",
		ThemePath:     filepath.Join(t.TempDir(), "alacritty.toml"),
		ConfigDir:     configDir,
	})

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	fixtures.Cmp(t, 7, len(lines))
	fixtures.Cmp(t, "shortcuts: /tmp/shortcuts", lines[0])
	fixtures.Cmp(t, "config candidate: "+configPath+" (found)", lines[2])
	if !strings.HasSuffix(lines[3], "(missing)") {
		t.Errorf("expected home config to be missing, got %q", lines[3])
	}
	fixtures.Cmp(t, "font: Monospace 12, headers 16", lines[4])
	fixtures.Cmp(t, "wrap commands: false", lines[5])
	if !strings.HasPrefix(lines[6], "colors: background ") {
		t.Errorf("unexpected colors line %q", lines[6])
	}
}

func TestPrintConfig_NoWrapOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	var buf bytes.Buffer
	printConfig(&buf, internal.Config{ConfigDir: t.TempDir(), NoWrap: true})
	if !strings.Contains(buf.String(), "wrap commands: false\n") {
		t.Errorf("expected wrapping disabled:\n%s", buf.String())
	}
}

func TestEnvironmentFillsUnsetFlags(t *testing.T) {
	t.Setenv("I3SV_SHORTCUTS", "/env/shortcuts")
	t.Setenv("I3SV_THEME", "/env/alacritty.toml")
	t.Setenv("I3SV_NO_WRAP", "true")
	t.Cleanup(resetFlags)

	if err := rootCmd.ParseFlags([]string{"--theme", "/flag/alacritty.toml", "--config-dir", "/flag/config"}); err != nil {
		t.Fatal(err)
	}
	if err := initConfig(rootCmd, rootNameToArg); err != nil {
		t.Fatal(err)
	}

	c := getConfig(rootCmd)
	fixtures.Cmp(t, "/env/shortcuts", c.ShortcutsPath)
	fixtures.Cmp(t, "/flag/alacritty.toml", c.ThemePath)
	fixtures.Cmp(t, "/flag/config", c.ConfigDir)
	fixtures.Cmp(t, true, c.NoWrap)
	fixtures.Cmp(t, false, getPrintConfig(rootCmd))
}

// resetFlags restores every root flag to its default so later tests see an unparsed command
func resetFlags() {
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func TestResetFlags(t *testing.T) {
	if err := rootCmd.ParseFlags([]string{"--shortcuts", "/flag/shortcuts", "--no-wrap"}); err != nil {
		t.Fatal(err)
	}
	resetFlags()

	for _, name := range []string{"shortcuts", "no-wrap"} {
		f := rootCmd.Flags().Lookup(name)
		fixtures.Cmp(t, f.DefValue, f.Value.String())
		fixtures.Cmp(t, false, f.Changed)
	}
	fixtures.Cmp(t, false, getNoWrap(rootCmd))
}
