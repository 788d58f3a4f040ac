package document

import (
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/i3sv/i3sv/internal/constants"
	"github.com/i3sv/i3sv/internal/shortcuts"
	"github.com/mattn/go-runewidth"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Kind classifies a run of text so the viewer can style it
type Kind int

const (
	Plain Kind = iota
	Header
	Separator
	Keybinding
	Tab
	Command
	WrapIndicator
)

const emptyText = "No shortcuts found."

var continuationRegex = regexp.MustCompile(`(?:\n|^)[ \t]*` + constants.WrapIndicator + `[ \t]*`)

type Segment struct {
	Text string
	Kind Kind
}

type Line struct {
	Segments []Segment
}

// Text is the plain text of the line, tabs included
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Position locates a rune within the document
type Position struct {
	Line int
	Col  int
}

type Options struct {
	Wrap           bool
	WrapWidth      int
	SeparatorWidth int
}

func DefaultOptions() Options {
	return Options{
		Wrap:           true,
		WrapWidth:      constants.WrapWidth,
		SeparatorWidth: constants.SeparatorWidth,
	}
}

// Document is the rendered form of the parsed shortcut groups
type Document struct {
	Lines          []Line
	keyColumnWidth int
	// sections maps the line index of each header to its group name
	sections *redblacktree.Tree
}

func Build(groups []shortcuts.Group, opts Options) Document {
	d := Document{sections: redblacktree.NewWithIntComparator()}
	if len(groups) == 0 {
		d.Lines = []Line{plainLine(emptyText)}
		return d
	}

	for i, g := range groups {
		if i > 0 {
			d.Lines = append(d.Lines, Line{})
		}

		d.sections.Put(len(d.Lines), g.Name)
		d.Lines = append(d.Lines,
			Line{Segments: []Segment{{Text: g.Name, Kind: Header}}},
			Line{Segments: []Segment{{Text: strings.Repeat("─", opts.SeparatorWidth), Kind: Separator}}},
		)

		for _, sc := range g.Shortcuts {
			d.keyColumnWidth = max(d.keyColumnWidth, runewidth.StringWidth(sc.Keybinding))
			commandLines := WrapCommand(sc.Command, opts.WrapWidth, opts.Wrap)
			d.Lines = append(d.Lines, Line{Segments: []Segment{
				{Text: sc.Keybinding, Kind: Keybinding},
				{Text: "\t", Kind: Tab},
				{Text: commandLines[0], Kind: Command},
			}})
			for _, continuation := range commandLines[1:] {
				d.Lines = append(d.Lines, Line{Segments: []Segment{
					{Text: "\t", Kind: Tab},
					{Text: constants.WrapIndicator + " ", Kind: WrapIndicator},
					{Text: continuation, Kind: Command},
				}})
			}
		}

		d.Lines = append(d.Lines, Line{})
	}
	return d
}

// LineTexts returns the plain text of every line
func (d Document) LineTexts() []string {
	texts := make([]string, len(d.Lines))
	for i := range d.Lines {
		texts[i] = d.Lines[i].Text()
	}
	return texts
}

// Text is the whole document as plain text, lines separated by newlines
func (d Document) Text() string {
	return strings.Join(d.LineTexts(), "\n")
}

// KeyColumnWidth is the display width of the widest keybinding
func (d Document) KeyColumnWidth() int {
	return d.keyColumnWidth
}

// SectionAt returns the name of the group whose header is at or above line, or "" above the first header
func (d Document) SectionAt(line int) string {
	if d.sections == nil {
		return ""
	}
	node, found := d.sections.Floor(line)
	if !found {
		return ""
	}
	return node.Value.(string)
}

// TextBetween returns the plain text of lines from through to inclusive, in either order
func (d Document) TextBetween(from, to int) string {
	if from > to {
		from, to = to, from
	}
	from = max(0, from)
	to = min(len(d.Lines)-1, to)
	if from > to {
		return ""
	}
	return strings.Join(d.LineTexts()[from:to+1], "\n")
}

// WrapCommand greedily packs the words of command into lines of at most width characters.
// Commands that fit, or any command when wrapping is disabled, stay on one line
func WrapCommand(command string, width int, enabled bool) []string {
	if !enabled || utf8.RuneCountInString(command) <= width {
		return []string{command}
	}

	var lines []string
	var current string
	for _, word := range strings.Fields(command) {
		candidate := strings.TrimSpace(current + " " + word)
		if utf8.RuneCountInString(candidate) <= width {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}

	if len(lines) == 0 {
		return []string{command}
	}
	return lines
}

// CleanCopiedText joins wrapped commands back into single lines by replacing each continuation indicator,
// with its surrounding line break and indentation, by one space
func CleanCopiedText(s string) string {
	return continuationRegex.ReplaceAllStringFunc(s, func(match string) string {
		if strings.HasPrefix(match, "\n") {
			return " "
		}
		return ""
	})
}

func plainLine(s string) Line {
	return Line{Segments: []Segment{{Text: s, Kind: Plain}}}
}
