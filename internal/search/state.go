package search

import (
	"fmt"
	"github.com/i3sv/i3sv/internal/document"
	"unicode"
)

type Phase int

const (
	Closed Phase = iota
	OpenEmpty
	OpenWithMatches
	OpenNoMatches
)

func (p Phase) String() string {
	switch p {
	case Closed:
		return "closed"
	case OpenEmpty:
		return "open-empty"
	case OpenWithMatches:
		return "open-with-matches"
	case OpenNoMatches:
		return "open-no-matches"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

const noMatchesText = "No matches"

// State holds the matches of a query over the rendered text. Current is -1 when no query is active
type State struct {
	Query   string
	Matches []document.Position
	Current int
}

func NewState() State {
	return State{Current: -1}
}

// Run replaces any previous result with the non-overlapping, case-insensitive matches of query in lines,
// in document order. The first match becomes current
func (s *State) Run(lines []string, query string) {
	s.Clear()
	if query == "" {
		return
	}
	s.Query = query

	needle := lowerRunes(query)
	for lineIdx, line := range lines {
		for _, col := range findAll(lowerRunes(line), needle) {
			s.Matches = append(s.Matches, document.Position{Line: lineIdx, Col: col})
		}
	}
	if len(s.Matches) > 0 {
		s.Current = 0
	}
}

func (s *State) Clear() {
	s.Query = ""
	s.Matches = nil
	s.Current = -1
}

// Next moves to the following match, wrapping to the first. It reports whether there was a match to move to
func (s *State) Next() bool {
	return s.move(1)
}

// Prev moves to the preceding match, wrapping to the last
func (s *State) Prev() bool {
	return s.move(-1)
}

func (s *State) move(delta int) bool {
	n := len(s.Matches)
	if n == 0 {
		return false
	}
	s.Current = ((s.Current+delta)%n + n) % n
	return true
}

func (s State) CurrentMatch() (document.Position, bool) {
	if s.Current < 0 || s.Current >= len(s.Matches) {
		return document.Position{}, false
	}
	return s.Matches[s.Current], true
}

// MatchLen is the length of every match in runes
func (s State) MatchLen() int {
	return len([]rune(s.Query))
}

// Info is the text shown next to the search input
func (s State) Info() string {
	if s.Query == "" {
		return ""
	}
	if len(s.Matches) == 0 {
		return noMatchesText
	}
	return fmt.Sprintf("%d/%d", s.Current+1, len(s.Matches))
}

func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// findAll returns the start of each non-overlapping occurrence of needle in haystack, scanning forward and
// resuming just after each match
func findAll(haystack, needle []rune) []int {
	var starts []int
	for i := 0; i+len(needle) <= len(haystack); {
		if runesEqual(haystack[i:i+len(needle)], needle) {
			starts = append(starts, i)
			i += len(needle)
		} else {
			i++
		}
	}
	return starts
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
