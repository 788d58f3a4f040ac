package fixtures

import (
	"github.com/google/go-cmp/cmp"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func Cmp(t *testing.T, expected, actual interface{}, opts ...cmp.Option) {
	t.Helper()
	_, file, line, _ := runtime.Caller(1)
	if diff := cmp.Diff(expected, actual, opts...); diff != "" {
		t.Errorf("\nTest %q failed at %s:%d\nDiff (-expected +actual):\n%s", t.Name(), file, line, diff)
	}
}

// CmpLines compares multiline strings line by line, ignoring trailing spaces on each line
func CmpLines(t *testing.T, expected, actual string) {
	t.Helper()
	Cmp(t, trimLines(expected), trimLines(actual))
}

// WriteFile writes content to name inside a fresh temp dir and returns the full path
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}

func trimLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return lines
}
