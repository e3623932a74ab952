// Package source defines named source texts and a queue of sources.
package source

import (
	"strings"
	"unicode/utf8"
)

// Source is a named text with line start index.
// Source is immutable except for the line lookup cache, so it must not be shared between goroutines
// that call LineCol.
type Source struct {
	name          string
	content       string
	lineStarts    []int
	prevLineIndex int
}

// New creates a source from byte content.
func New(name string, content []byte) *Source {
	return FromString(name, string(content))
}

// FromString creates a source from text.
func FromString(name, content string) *Source {
	s := &Source{name: name, content: content, prevLineIndex: -1}
	lineCnt := strings.Count(content, "\n") + 1
	s.lineStarts = make([]int, lineCnt)
	j := 1
	for i := 0; i < len(content) && j < lineCnt; i++ {
		if content[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}

	return s
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Content() string {
	return s.content
}

func (s *Source) Len() int {
	return len(s.content)
}

// LineCol returns 1-based line and column (in runes) for byte offset pos.
// pos is clamped to [0, Len()].
func (s *Source) LineCol(pos int) (line, col int) {
	var lineIndex int
	if pos <= 0 {
		pos = 0
		lineIndex = 0
	} else if pos >= len(s.content) {
		pos = len(s.content)
		lineIndex = len(s.lineStarts) - 1
	} else {
		lineIndex = s.findLineIndex(pos)
	}

	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCountInString(s.content[lineStart:pos]) + 1
}

// Pos returns byte offset for 1-based line and column (in bytes), clamped to source bounds.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.content)
	if line > len(s.lineStarts) {
		return l
	}

	return min(s.lineStarts[line-1]+col-1, l)
}

func (s *Source) findLineIndex(pos int) int {
	if s.prevLineIndex >= 0 && s.lineStarts[s.prevLineIndex] <= pos {
		lineIndex := s.prevLineIndex
		last := len(s.lineStarts) - 1
		for lineIndex < last && s.lineStarts[lineIndex+1] <= pos {
			lineIndex++
		}
		s.prevLineIndex = lineIndex
		return lineIndex
	}

	leftIndex := 0
	rightIndex := len(s.lineStarts) - 1
	if s.prevLineIndex >= 0 {
		rightIndex = s.prevLineIndex
	}
	for leftIndex < rightIndex {
		index := (leftIndex + rightIndex + 1) >> 1
		if s.lineStarts[index] <= pos {
			leftIndex = index
		} else {
			rightIndex = index - 1
		}
	}
	s.prevLineIndex = leftIndex
	return leftIndex
}

// Pos is a position in source, implements lagrum.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

// NewPos creates position record for byte offset pos in s.
func NewPos(s *Source, pos int) Pos {
	result := Pos{src: s, pos: pos}
	if s != nil {
		result.line, result.col = s.LineCol(pos)
	}
	return result
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.Name()
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
