package cmd

import (
	"fmt"
	"github.com/carlmjohnson/versioninfo"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/i3sv/i3sv/internal"
	"github.com/i3sv/i3sv/internal/appconfig"
	"github.com/i3sv/i3sv/internal/dev"
	"github.com/i3sv/i3sv/internal/keymap"
	"github.com/i3sv/i3sv/internal/shortcuts"
	"github.com/i3sv/i3sv/internal/theme"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// Version is public so users can optionally specify or override the version
	// at build time by passing in ldflags, e.g.
	//   go build -ldflags "-X github.com/i3sv/i3sv/cmd.Version=vX.Y.Z"
	Version = ""
)

const envPrefix = "I3SV"

type arg struct {
	cliShort, cfgFileEnvVar, description, defaultString string
	isBool, defaultIfBool                               bool
}

var (
	rootNameToArg = map[string]arg{
		"config-dir": {
			cliShort:      "c",
			cfgFileEnvVar: "config-dir",
			description:   `Directory searched first for config.toml. Defaults to the directory of the executable`,
		},
		"help": {
			description: `Print usage`,
		},
		"no-wrap": {
			cliShort:      "",
			cfgFileEnvVar: "no-wrap",
			description:   `If present, never wrap long commands, overriding display.wrap_command`,
			isBool:        true,
		},
		"print-config": {
			cliShort:      "",
			cfgFileEnvVar: "print-config",
			description:   `If present, print the resolved files and settings and exit`,
			isBool:        true,
		},
		"shortcuts": {
			cliShort:      "s",
			cfgFileEnvVar: "shortcuts",
			description:   `Shortcuts file path. Defaults to $HOME/.config/i3/shortcuts`,
		},
		"theme": {
			cliShort:      "t",
			cfgFileEnvVar: "theme",
			description:   `Alacritty config file for colors and font. Defaults to $HOME/.config/alacritty/alacritty.toml`,
		},
	}

	description = fmt.Sprintf(`i3sv %s

i3sv shows the keybindings of an i3 shortcuts file, grouped by their comment headers,
searchable and colored with your alacritty theme

Every flag can also be set with an environment variable, e.g. I3SV_SHORTCUTS or I3SV_NO_WRAP`,
		getVersion(),
	)

	rootCmd = &cobra.Command{
		Use:   "i3sv",
		Short: "i3sv: i3 shortcuts viewer",
		Long:  description,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, rootNameToArg)
		},
		Run:     mainEntrypoint,
		Version: getVersion(),
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

// init is called once when the cmd package is loaded
func init() {
	cliLong := "help"
	rootCmd.PersistentFlags().BoolP(cliLong, rootNameToArg[cliLong].cliShort, rootNameToArg[cliLong].defaultIfBool, rootNameToArg[cliLong].description)

	for _, cliLong = range []string{
		"config-dir",
		"no-wrap",
		"print-config",
		"shortcuts",
		"theme",
	} {
		c := rootNameToArg[cliLong]
		if c.isBool {
			rootCmd.PersistentFlags().BoolP(cliLong, c.cliShort, c.defaultIfBool, c.description)
		} else {
			rootCmd.PersistentFlags().StringP(cliLong, c.cliShort, c.defaultString, c.description)
		}
		_ = viper.BindPFlag(cliLong, rootCmd.PersistentFlags().Lookup(c.cfgFileEnvVar))
	}
	rootCmd.SetVersionTemplate(`{{printf "i3sv %s\n" .Version}}`)
	rootCmd.Flags().BoolP("version", "v", false, "Show i3sv version")
}

func initConfig(cmd *cobra.Command, nameToArg map[string]arg) error {
	// bind viper to env vars, e.g. I3SV_CONFIG_DIR for --config-dir
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	bindFlags(cmd, nameToArg)
	return nil
}

func bindFlags(cmd *cobra.Command, nameToArg map[string]arg) {
	v := viper.GetViper()
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		cliLong := f.Name
		viperName := nameToArg[cliLong].cfgFileEnvVar
		if viperName == "" {
			return
		}

		// Apply the env var value to the flag when the flag is not manually specified
		if !f.Changed && v.IsSet(viperName) {
			val := v.Get(viperName)
			err := cmd.Flags().Set(cliLong, fmt.Sprintf("%v", val))
			if err != nil {
				fmt.Printf("error setting flag %s: %v\n", cliLong, err)
				os.Exit(1)
			}
		}
	})
}

func mainEntrypoint(cmd *cobra.Command, _ []string) {
	config := getConfig(cmd)
	if getPrintConfig(cmd) {
		printConfig(cmd.OutOrStdout(), config)
		return
	}

	initialModel, options := setup(config)
	program := tea.NewProgram(initialModel, options...)

	finalModel, err := program.Run()
	dev.Sync()
	if err != nil {
		fmt.Printf("error on i3sv startup: %v", err)
		os.Exit(1)
	}
	if m, ok := finalModel.(internal.Model); ok && m.Err() != nil {
		os.Exit(1)
	}
}

func getVersion() string {
	if Version != "" {
		return Version
	}
	return versioninfo.Short()
}

func getShortcutsPath(cmd *cobra.Command) string {
	if p := cmd.Flags().Lookup("shortcuts").Value.String(); p != "" {
		return p
	}
	return shortcuts.DefaultPath()
}

func getThemePath(cmd *cobra.Command) string {
	if p := cmd.Flags().Lookup("theme").Value.String(); p != "" {
		return p
	}
	return theme.DefaultPath()
}

func getConfigDir(cmd *cobra.Command) string {
	if d := cmd.Flags().Lookup("config-dir").Value.String(); d != "" {
		return d
	}
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}

func getNoWrap(cmd *cobra.Command) bool {
	return cmd.Flags().Lookup("no-wrap").Value.String() == "true"
}

func getPrintConfig(cmd *cobra.Command) bool {
	return cmd.Flags().Lookup("print-config").Value.String() == "true"
}

func getConfig(cmd *cobra.Command) internal.Config {
	return internal.Config{
		KeyMap:        keymap.DefaultKeyMap(),
		ShortcutsPath: getShortcutsPath(cmd),
		ThemePath:     getThemePath(cmd),
		ConfigDir:     getConfigDir(cmd),
		NoWrap:        getNoWrap(cmd),
		Version:       getVersion(),
	}
}

func printConfig(w io.Writer, c internal.Config) {
	appConfig := appconfig.Load(c.ConfigDir)
	t := theme.Load(c.ThemePath)

	_, _ = fmt.Fprintf(w, "shortcuts: %s\n", c.ShortcutsPath)
	_, _ = fmt.Fprintf(w, "theme: %s\n", c.ThemePath)
	for _, p := range appconfig.CandidatePaths(c.ConfigDir) {
		state := "missing"
		if _, err := os.Stat(p); err == nil {
			state = "found"
		}
		_, _ = fmt.Fprintf(w, "config candidate: %s (%s)\n", p, state)
	}
	_, _ = fmt.Fprintf(w, "font: %s %d, headers %d\n", t.FontFamily, appConfig.FontSize, appConfig.EffectiveHeaderFontSize())
	_, _ = fmt.Fprintf(w, "wrap commands: %t\n", appConfig.WrapCommand && !c.NoWrap)
	_, _ = fmt.Fprintf(w, "colors: background %s, foreground %s\n", t.Background, t.Foreground)
}

func setup(config internal.Config) (internal.Model, []tea.ProgramOption) {
	initialModel := internal.InitialModel(config)
	return initialModel, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}
