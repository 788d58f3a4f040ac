package viewport

import (
	"fmt"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/i3sv/i3sv/internal/constants"
	"github.com/i3sv/i3sv/internal/dev"
	"github.com/i3sv/i3sv/internal/document"
	"github.com/i3sv/i3sv/internal/style"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"math"
	"strings"
)

// Terminology:
// - line: a document line. Every line takes exactly one row, commands are wrapped when the document is built
// - row: a terminal row of the viewport, counted from its top
// - column: a rune index into a line's plain text, the unit of search positions
// - cell: a terminal cell. A tab spans the cells up to the tab stop and wide runes take two
//
// lines wider than the viewport are truncated with a continuation indicator:
//                                       line index   row
// Mod4+Return    alacritty              0            0
// Mod4+d         rofi -show drun -s...  1            1
//
// panned right, the left edge shows the indicator too:
//                                       line index   row
// ...Return    alacritty                0            0
// ...d         rofi -show drun -show..  1            1

// Model shows a document and tracks the vertical and horizontal scroll position, search highlights and the
// mouse line selection
type Model struct {
	Styles style.Styles

	keyMap KeyMap

	doc document.Document

	// highlights maps a line index to the search matches on it, in column order
	highlights map[int][]span

	// selection is the range of lines selected by dragging the mouse
	selection lineRange

	// continuationIndicator is the string to use to indicate that a line has been truncated from the left or right
	continuationIndicator string

	// width is the width of the entire viewport in terminal columns
	width int

	// height is the height of the entire viewport in lines, footer included
	height int

	// topLine is the index of the topmost visible line
	topLine int

	// xOffset is the number of terminal cells scrolled right
	xOffset int
}

type span struct {
	start, end int
	current    bool
}

type lineRange struct {
	active       bool
	anchor, head int
}

func (r lineRange) bounds() (int, int) {
	return min(r.anchor, r.head), max(r.anchor, r.head)
}

func (r lineRange) contains(line int) bool {
	if !r.active {
		return false
	}
	lo, hi := r.bounds()
	return lo <= line && line <= hi
}

type highlightLevel int

const (
	levelNone highlightLevel = iota
	levelSelected
	levelMatch
	levelCurrentMatch
)

type cell struct {
	text  string
	width int
	col   int
	kind  document.Kind
}

// New creates a new viewport model with reasonable defaults
func New(width, height int, keyMap KeyMap, styles style.Styles) (m Model) {
	m.setWidthHeight(width, height)
	m.keyMap = keyMap
	m.Styles = styles
	m.continuationIndicator = constants.ContinuationIndicator
	return m
}

// Update processes messages and updates the model
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	dev.DebugUpdateMsg("Viewport", msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Left):
			m.viewLeft(max(1, m.width/4))

		case key.Matches(msg, m.keyMap.Right):
			m.viewRight(max(1, m.width/4))

		case key.Matches(msg, m.keyMap.Top):
			m.topLine = 0

		case key.Matches(msg, m.keyMap.Bottom):
			m.topLine = m.maxTopLine()
		}
	}
	return m, nil
}

// View renders the viewport
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	numContentLines := m.getNumContentLines()
	rows := make([]string, 0, m.height)
	for row := 0; row < numContentLines; row++ {
		lineIdx := m.topLine + row
		if lineIdx >= len(m.doc.Lines) {
			rows = append(rows, m.Styles.Regular.Render(strings.Repeat(" ", m.width)))
			continue
		}
		rows = append(rows, m.renderLine(lineIdx))
	}
	if m.showFooter() {
		rows = append(rows, m.getFooterLine())
	}
	return strings.Join(rows, "\n")
}

// SetDocument replaces the content. Highlights and selection are cleared
func (m *Model) SetDocument(doc document.Document) {
	m.doc = doc
	m.highlights = nil
	m.selection = lineRange{}
	m.safelySetTopLine(m.topLine)
	m.safelySetXOffset(m.xOffset)
}

// SetHighlights marks every match, each matchLen runes long. The match at index current gets the current match
// style, none does when current is out of range
func (m *Model) SetHighlights(matches []document.Position, matchLen, current int) {
	m.highlights = nil
	if matchLen <= 0 || len(matches) == 0 {
		return
	}
	m.highlights = make(map[int][]span)
	for i, pos := range matches {
		m.highlights[pos.Line] = append(m.highlights[pos.Line], span{
			start:   pos.Col,
			end:     pos.Col + matchLen,
			current: i == current,
		})
	}
}

func (m *Model) ClearHighlights() {
	m.highlights = nil
}

// SetWidth sets the viewport's width
func (m *Model) SetWidth(width int) {
	m.setWidthHeight(width, m.height)
}

// SetHeight sets the viewport's height, including the footer
func (m *Model) SetHeight(height int) {
	m.setWidthHeight(m.width, height)
}

func (m Model) TopLine() int {
	return m.topLine
}

func (m Model) XOffset() int {
	return m.xOffset
}

// YFraction is the vertical scroll position normalized to [0, 1], 0 at the top and 1 scrolled to the bottom
func (m Model) YFraction() float64 {
	maxTop := m.maxTopLine()
	if maxTop == 0 {
		return 0
	}
	return float64(m.topLine) / float64(maxTop)
}

// SetYFraction scrolls to the normalized position f
func (m *Model) SetYFraction(f float64) {
	m.safelySetTopLine(int(math.Round(f * float64(m.maxTopLine()))))
}

// RevealPosition scrolls the least amount needed to show length runes at pos
func (m *Model) RevealPosition(pos document.Position, length int) {
	if pos.Line < 0 || pos.Line >= len(m.doc.Lines) {
		return
	}
	numContentLines := m.getNumContentLines()
	if pos.Line < m.topLine {
		m.safelySetTopLine(pos.Line)
	} else if pos.Line >= m.topLine+numContentLines {
		m.safelySetTopLine(pos.Line - numContentLines + 1)
	}

	start, end := m.cellRange(pos.Line, pos.Col, pos.Col+length)
	indicatorWidth := runewidth.StringWidth(m.continuationIndicator)
	if start < m.xOffset+indicatorWidth && m.xOffset > 0 {
		m.safelySetXOffset(max(0, start-indicatorWidth))
	} else if end > m.xOffset+m.width-indicatorWidth {
		m.safelySetXOffset(end - m.width + indicatorWidth)
	}
}

// LineAtRow returns the index of the line shown on row, if any
func (m Model) LineAtRow(row int) (int, bool) {
	if row < 0 || row >= m.getNumContentLines() {
		return 0, false
	}
	lineIdx := m.topLine + row
	if lineIdx >= len(m.doc.Lines) {
		return 0, false
	}
	return lineIdx, true
}

// StartSelection selects line alone, anchoring the selection there
func (m *Model) StartSelection(line int) {
	m.selection = lineRange{active: true, anchor: line, head: line}
}

// ExtendSelection moves the end of the selection that is not anchored to line
func (m *Model) ExtendSelection(line int) {
	if !m.selection.active {
		m.StartSelection(line)
		return
	}
	m.selection.head = line
}

func (m *Model) ClearSelection() {
	m.selection = lineRange{}
}

func (m Model) HasSelection() bool {
	return m.selection.active
}

// SelectedText is the plain text of the selected lines
func (m Model) SelectedText() (string, bool) {
	if !m.selection.active {
		return "", false
	}
	lo, hi := m.selection.bounds()
	return m.doc.TextBetween(lo, hi), true
}

func (m *Model) setWidthHeight(width, height int) {
	m.width = max(0, width)
	m.height = max(0, height)
	m.safelySetTopLine(m.topLine)
	m.safelySetXOffset(m.xOffset)
}

func (m *Model) safelySetTopLine(topLine int) {
	m.topLine = clampValMinMax(topLine, 0, m.maxTopLine())
}

func (m *Model) safelySetXOffset(n int) {
	maxXOffset := max(0, m.maxLineWidth()-m.width)
	m.xOffset = clampValMinMax(n, 0, maxXOffset)
}

func (m *Model) viewLeft(n int) {
	m.safelySetXOffset(m.xOffset - n)
}

func (m *Model) viewRight(n int) {
	m.safelySetXOffset(m.xOffset + n)
}

func (m Model) showFooter() bool {
	return len(m.doc.Lines) > m.height
}

func (m Model) getNumContentLines() int {
	if m.showFooter() {
		return max(0, m.height-1)
	}
	return m.height
}

func (m Model) maxTopLine() int {
	return max(0, len(m.doc.Lines)-m.getNumContentLines())
}

// tabStop is the cell column commands start at, one gap past the widest keybinding but no further than half the
// viewport
func (m Model) tabStop() int {
	stop := m.doc.KeyColumnWidth() + constants.TabGap
	if m.width > 0 {
		stop = min(stop, max(1, m.width/2))
	}
	return stop
}

func (m Model) maxLineWidth() int {
	maxWidth := 0
	for i := range m.doc.Lines {
		maxWidth = max(maxWidth, cellsWidth(m.cells(i)))
	}
	return maxWidth
}

func (m Model) cells(lineIdx int) []cell {
	var cells []cell
	col, x := 0, 0
	tabStop := m.tabStop()
	for _, seg := range m.doc.Lines[lineIdx].Segments {
		for _, r := range seg.Text {
			if r == '\t' {
				n := max(1, tabStop-x)
				cells = append(cells, cell{text: strings.Repeat(" ", n), width: n, col: col, kind: seg.Kind})
				x += n
			} else {
				w := runewidth.RuneWidth(r)
				cells = append(cells, cell{text: string(r), width: w, col: col, kind: seg.Kind})
				x += w
			}
			col++
		}
	}
	return cells
}

// cellRange converts the rune columns [from, to) of a line into cells
func (m Model) cellRange(lineIdx, from, to int) (int, int) {
	start, end, x := 0, 0, 0
	for _, c := range m.cells(lineIdx) {
		if c.col == from {
			start = x
		}
		x += c.width
		if c.col == to-1 {
			end = x
		}
	}
	return start, max(start, end)
}

func (m Model) level(lineIdx, col int) highlightLevel {
	for _, s := range m.highlights[lineIdx] {
		if s.start <= col && col < s.end {
			if s.current {
				return levelCurrentMatch
			}
			return levelMatch
		}
	}
	if m.selection.contains(lineIdx) {
		return levelSelected
	}
	return levelNone
}

func (m Model) styleFor(kind document.Kind, level highlightLevel) lipgloss.Style {
	switch level {
	case levelCurrentMatch:
		return m.Styles.CurrentMatch
	case levelMatch:
		return m.Styles.Match
	case levelSelected:
		return m.Styles.Selection
	default:
		return m.Styles.ForKind(kind)
	}
}

func (m Model) renderLine(lineIdx int) string {
	cells := m.cells(lineIdx)
	lineWidth := cellsWidth(cells)
	selected := m.selection.contains(lineIdx)
	fill := m.Styles.Regular
	if selected {
		fill = m.Styles.Selection
	}

	var builder strings.Builder
	if m.xOffset > 0 && lineWidth > 0 {
		// panned right, possibly past where the line ends
		builder.WriteString(fill.Render(m.continuationIndicator))
		cells = dropCells(cells, m.xOffset+runewidth.StringWidth(m.continuationIndicator))
	}

	for i := 0; i < len(cells); {
		kind, level := cells[i].kind, m.level(lineIdx, cells[i].col)
		var run strings.Builder
		j := i
		for ; j < len(cells) && cells[j].kind == kind && m.level(lineIdx, cells[j].col) == level; j++ {
			run.WriteString(cells[j].text)
		}
		builder.WriteString(m.styleFor(kind, level).Render(run.String()))
		i = j
	}

	rendered := builder.String()
	if lipgloss.Width(rendered) > m.width {
		rendered = truncate.StringWithTail(rendered, uint(m.width), fill.Render(m.continuationIndicator))
	}
	if padding := m.width - lipgloss.Width(rendered); padding > 0 {
		rendered += fill.Render(strings.Repeat(" ", padding))
	}
	return rendered
}

func (m Model) getFooterLine() string {
	denominator := len(m.doc.Lines)
	numerator := min(denominator, m.topLine+m.getNumContentLines())
	progress := fmt.Sprintf("%d%% (%d/%d)", percent(numerator, denominator), numerator, denominator)

	section := m.doc.SectionAt(m.topLine)
	room := m.width - runewidth.StringWidth(progress) - 1
	if runewidth.StringWidth(section) > room {
		section = truncate.StringWithTail(section, uint(max(0, room)), m.continuationIndicator)
	}
	gap := max(1, m.width-runewidth.StringWidth(section)-runewidth.StringWidth(progress))
	footer := truncate.String(section+strings.Repeat(" ", gap)+progress, uint(m.width))
	return m.Styles.Footer.Render(footer)
}

func cellsWidth(cells []cell) int {
	w := 0
	for _, c := range cells {
		w += c.width
	}
	return w
}

// dropCells removes n cells from the left. A cell cut in half leaves its visible part as blanks
func dropCells(cells []cell, n int) []cell {
	for len(cells) > 0 && n > 0 {
		c := cells[0]
		if c.width <= n {
			n -= c.width
			cells = cells[1:]
			continue
		}
		c.text = strings.Repeat(" ", c.width-n)
		c.width -= n
		cells[0] = c
		n = 0
	}
	return cells
}
