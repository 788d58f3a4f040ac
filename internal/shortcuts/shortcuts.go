package shortcuts

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/i3sv/i3sv/internal/dev"
	"go.uber.org/zap"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// DefaultGroupName names the group collecting bindings that appear before the first header
const DefaultGroupName = "General"

const (
	bindsymKeyword = "bindsym"
	execKeyword    = "exec"
	noStartupIDArg = "--no-startup-id"
)

var ErrNotFound = errors.New("shortcuts file not found")

type Shortcut struct {
	Keybinding string
	Command    string
}

// Group is a named section of shortcuts, in file order
type Group struct {
	Name      string
	Shortcuts []Shortcut
}

func DefaultPath() string {
	return filepath.Join(homeDir(), ".config", "i3", "shortcuts")
}

// ParseFile reads and parses the shortcuts file at path, or at DefaultPath if path is empty
func ParseFile(path string) ([]Group, error) {
	if path == "" {
		path = DefaultPath()
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening shortcuts file %s: %w", path, err)
	}
	defer f.Close()

	groups, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading shortcuts file %s: %w", path, err)
	}
	dev.Debug("parsed shortcuts", zap.String("path", path), zap.Int("groups", len(groups)))
	return groups, nil
}

// Parse groups bindsym lines under the most recent non-empty comment header. Groups without shortcuts are dropped
func Parse(r io.Reader) ([]Group, error) {
	var groups []Group
	current := Group{Name: DefaultGroupName}

	reader := bufio.NewReader(r)
	for {
		raw, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if raw == "" && err != nil {
			break
		}

		line := strings.TrimRightFunc(raw, unicode.IsSpace)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			// a bare '#' neither closes nor renames the current group
			if header := strings.TrimSpace(strings.TrimLeft(line, "#")); header != "" {
				if len(current.Shortcuts) > 0 {
					groups = append(groups, current)
				}
				current = Group{Name: header}
			}
			continue
		}

		if strings.HasPrefix(strings.TrimSpace(line), bindsymKeyword) {
			if keybinding, command, ok := ParseBindsymLine(line); ok {
				current.Shortcuts = append(current.Shortcuts, Shortcut{Keybinding: keybinding, Command: command})
			}
		}
	}

	if len(current.Shortcuts) > 0 {
		groups = append(groups, current)
	}
	return groups, nil
}

// ParseBindsymLine extracts the keybinding and display command from a bindsym line.
// ok is false when the line is not a binding or has no command
func ParseBindsymLine(line string) (keybinding, command string, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, bindsymKeyword) {
		return "", "", false
	}
	rest := strings.TrimSpace(line[len(bindsymKeyword):])

	sep := strings.IndexFunc(rest, unicode.IsSpace)
	if sep < 0 {
		return "", "", false
	}
	keybinding = rest[:sep]
	command = normalizeCommand(rest[sep:])
	if keybinding == "" || command == "" {
		return "", "", false
	}
	return keybinding, command, true
}

func normalizeCommand(command string) string {
	command = strings.TrimSpace(command)
	if isToken(command, execKeyword) {
		command = strings.TrimSpace(command[len(execKeyword):])
	}
	command = strings.TrimSpace(strings.ReplaceAll(command, noStartupIDArg, ""))

	// trailing '&' sits outside the quotes in `"cmd" &`, so trim before unquoting
	command = trimTrailingAmpersands(command)
	if len(command) >= 2 && strings.HasPrefix(command, `"`) && strings.HasSuffix(command, `"`) {
		command = command[1 : len(command)-1]
	}
	return strings.TrimSpace(trimTrailingAmpersands(command))
}

func trimTrailingAmpersands(s string) string {
	return strings.TrimRightFunc(s, func(r rune) bool {
		return r == '&' || unicode.IsSpace(r)
	})
}

// isToken reports whether s starts with word followed by whitespace or the end of s
func isToken(s, word string) bool {
	if !strings.HasPrefix(s, word) {
		return false
	}
	rest := s[len(word):]
	return rest == "" || unicode.IsSpace(rune(rest[0]))
}

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	return os.Getenv("USERPROFILE") // Windows
}
